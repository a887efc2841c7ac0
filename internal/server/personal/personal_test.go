package personal

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewService(t.TempDir(), func() time.Time {
		now = now.Add(time.Minute)
		return now
	}, logging.NewNop())

	created, err := s.Create(ctx, "todo", "milk", "alice")
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt.Time))

	updated, err := s.UpdateContent(ctx, created.ID, "milk, eggs", "alice")
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt.Time))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt.Time))

	got, err := s.GetOwned(ctx, created.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", got.Content)
	assert.Equal(t, "todo", got.Name)
}

func TestUpdateContent_FrozenClockStillAdvances(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewService(t.TempDir(), func() time.Time { return frozen }, logging.NewNop())

	created, err := s.Create(ctx, "n", "v1", "alice")
	require.NoError(t, err)

	first, err := s.UpdateContent(ctx, created.ID, "v2", "alice")
	require.NoError(t, err)
	second, err := s.UpdateContent(ctx, created.ID, "v3", "alice")
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(created.UpdatedAt.Time))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt.Time))
}

func TestPersonal_OnlyCreator(t *testing.T) {
	ctx := context.Background()
	s := NewService(t.TempDir(), nil, logging.NewNop())

	c, err := s.Create(ctx, "secret", "s3cr3t", "alice")
	require.NoError(t, err)

	_, err = s.GetOwned(ctx, c.ID, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.UpdateContent(ctx, c.ID, "hacked", "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.DeleteOwned(ctx, c.ID, "bob"), common.ErrorNotFound)

	got, err := s.GetOwned(ctx, c.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", got.Content)

	require.NoError(t, s.DeleteOwned(ctx, c.ID, "alice"))
	_, err = s.GetOwned(ctx, c.ID, "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByCreator(t *testing.T) {
	ctx := context.Background()
	s := NewService(t.TempDir(), nil, logging.NewNop())

	_, err := s.Create(ctx, "a1", "", "alice")
	require.NoError(t, err)
	_, err = s.Create(ctx, "b1", "", "bob")
	require.NoError(t, err)
	_, err = s.Create(ctx, "a2", "", "alice")
	require.NoError(t, err)

	list, err := s.ListByCreator(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].Name)
	assert.Equal(t, "a2", list[1].Name)

	none, err := s.ListByCreator(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreate_RequiresName(t *testing.T) {
	s := NewService(t.TempDir(), nil, logging.NewNop())
	_, err := s.Create(context.Background(), "  ", "x", "alice")
	assert.ErrorIs(t, err, ErrEmptyName)
}
