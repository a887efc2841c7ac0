// Package personal implements named clipboards that only their creator
// can read, edit or delete.
package personal

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/access"
	"github.com/dmitrijs2005/filekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/timex"
	"github.com/google/uuid"
)

const DocumentName = "personal_clipboard.json"

var ErrEmptyName = errors.New("clipboard name is required")

type document struct {
	Clipboards []models.PersonalClipboard `json:"personal_clipboards"`
}

func emptyDocument() document {
	return document{Clipboards: []models.PersonalClipboard{}}
}

type Service struct {
	doc    *docstore.Document[document]
	policy access.Policy
	now    func() time.Time
	logger logging.Logger
}

func NewService(dataDir string, now func() time.Time, logger logging.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	l := logger.With("module", "personal")
	return &Service{
		doc:    docstore.Open(filepath.Join(dataDir, DocumentName), emptyDocument, l),
		now:    now,
		logger: l,
	}
}

func (s *Service) Create(ctx context.Context, name, content, creator string) (models.PersonalClipboard, error) {
	if strings.TrimSpace(name) == "" {
		return models.PersonalClipboard{}, ErrEmptyName
	}

	now := timex.NewTimestamp(s.now())
	c := models.PersonalClipboard{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		Creator:   creator,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.doc.Update(ctx, func(d *document) error {
		d.Clipboards = append(d.Clipboards, c)
		return nil
	})
	if err != nil {
		return models.PersonalClipboard{}, err
	}

	s.logger.Info(ctx, "personal clipboard created", "id", c.ID, "creator", creator)
	return c, nil
}

// ListByCreator returns creator's clipboards in creation order.
func (s *Service) ListByCreator(ctx context.Context, creator string) ([]models.PersonalClipboard, error) {
	d, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]models.PersonalClipboard, 0)
	for _, c := range d.Clipboards {
		if s.policy.CanModify(creator, c.Creator) {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *Service) GetOwned(ctx context.Context, id, creator string) (models.PersonalClipboard, error) {
	d, err := s.doc.Read(ctx)
	if err != nil {
		return models.PersonalClipboard{}, err
	}
	for _, c := range d.Clipboards {
		if c.ID == id && s.policy.CanModify(creator, c.Creator) {
			return c, nil
		}
	}
	return models.PersonalClipboard{}, common.ErrorNotFound
}

// UpdateContent replaces the content and advances updated_at. The new
// timestamp is always later than the previous one even if the clock is not.
func (s *Service) UpdateContent(ctx context.Context, id, content, creator string) (models.PersonalClipboard, error) {
	var updated models.PersonalClipboard
	err := s.doc.Update(ctx, func(d *document) error {
		idx := s.indexOwned(d, id, creator)
		if idx < 0 {
			return common.ErrorNotFound
		}
		c := &d.Clipboards[idx]
		now := s.now()
		if !now.After(c.UpdatedAt.Time) {
			now = c.UpdatedAt.Add(time.Microsecond)
		}
		c.Content = content
		c.UpdatedAt = timex.NewTimestamp(now)
		updated = *c
		return nil
	})
	if err != nil {
		return models.PersonalClipboard{}, err
	}

	s.logger.Info(ctx, "personal clipboard updated", "id", id, "creator", creator)
	return updated, nil
}

// DeleteOwned removes the clipboard. Requests by anyone but the creator
// change nothing and report common.ErrorNotFound.
func (s *Service) DeleteOwned(ctx context.Context, id, creator string) error {
	err := s.doc.Update(ctx, func(d *document) error {
		idx := s.indexOwned(d, id, creator)
		if idx < 0 {
			return common.ErrorNotFound
		}
		d.Clipboards = slices.Delete(d.Clipboards, idx, idx+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "personal clipboard deleted", "id", id, "creator", creator)
	return nil
}

func (s *Service) indexOwned(d *document, id, creator string) int {
	return slices.IndexFunc(d.Clipboards, func(c models.PersonalClipboard) bool {
		return c.ID == id && s.policy.CanModify(creator, c.Creator)
	})
}
