// Package clipboard implements the shared clipboard: short text items that
// are private to their owner unless marked public.
package clipboard

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/access"
	"github.com/dmitrijs2005/filekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/timex"
	"github.com/google/uuid"
)

const (
	// DocumentName is the file holding the collection inside the data dir.
	DocumentName = "clipboard.json"

	// MaxContentBytes bounds content as submitted, before script removal.
	MaxContentBytes = 1 * common.MiB
)

var scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)

// StripScripts removes <script>...</script> spans, case-insensitively and
// across lines.
func StripScripts(s string) string {
	return scriptRe.ReplaceAllString(s, "")
}

type document struct {
	Items []models.ClipboardItem `json:"clipboard_items"`
}

func emptyDocument() document {
	return document{Items: []models.ClipboardItem{}}
}

type Service struct {
	doc    *docstore.Document[document]
	policy access.Policy
	now    func() time.Time
	logger logging.Logger
}

// NewService stores the collection in dataDir. A nil clock means time.Now.
func NewService(dataDir string, now func() time.Time, logger logging.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	l := logger.With("module", "clipboard")
	return &Service{
		doc:    docstore.Open(filepath.Join(dataDir, DocumentName), emptyDocument, l),
		now:    now,
		logger: l,
	}
}

// Add stores a new item. Content over MaxContentBytes is refused with
// common.ErrContentTooLarge.
func (s *Service) Add(ctx context.Context, content, owner string, isPublic bool) (models.ClipboardItem, error) {
	if int64(len(content)) > MaxContentBytes {
		return models.ClipboardItem{}, fmt.Errorf("%w: clipboard content is %d bytes, limit is %d",
			common.ErrContentTooLarge, len(content), MaxContentBytes)
	}

	item := models.ClipboardItem{
		ID:        uuid.NewString(),
		Content:   StripScripts(content),
		Owner:     owner,
		CreatedAt: timex.NewTimestamp(s.now()),
		IsPublic:  isPublic,
	}
	err := s.doc.Update(ctx, func(d *document) error {
		d.Items = append(d.Items, item)
		return nil
	})
	if err != nil {
		return models.ClipboardItem{}, err
	}

	s.logger.Info(ctx, "clipboard item added", "id", item.ID, "owner", owner, "public", isPublic)
	return item, nil
}

// ListVisibleTo returns the items username may see, newest first.
func (s *Service) ListVisibleTo(ctx context.Context, username string) ([]models.ClipboardItem, error) {
	d, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]models.ClipboardItem, 0, len(d.Items))
	for _, it := range d.Items {
		if s.policy.CanView(username, it.Owner, it.IsPublic) {
			res = append(res, it)
		}
	}
	slices.SortStableFunc(res, func(a, b models.ClipboardItem) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return res, nil
}

// GetVisibleTo returns the item when username may see it. Missing and
// hidden items are both common.ErrorNotFound.
func (s *Service) GetVisibleTo(ctx context.Context, id, username string) (models.ClipboardItem, error) {
	it, err := s.find(ctx, id)
	if err != nil {
		return models.ClipboardItem{}, err
	}
	if !s.policy.CanView(username, it.Owner, it.IsPublic) {
		return models.ClipboardItem{}, common.ErrorNotFound
	}
	return it, nil
}

// GetPublic returns a public item without any caller identity.
func (s *Service) GetPublic(ctx context.Context, id string) (models.ClipboardItem, error) {
	return s.GetVisibleTo(ctx, id, "")
}

// DeleteOwned removes the item if username owns it.
func (s *Service) DeleteOwned(ctx context.Context, id, username string) error {
	err := s.doc.Update(ctx, func(d *document) error {
		idx := slices.IndexFunc(d.Items, func(it models.ClipboardItem) bool {
			return it.ID == id && s.policy.CanModify(username, it.Owner)
		})
		if idx < 0 {
			return common.ErrorNotFound
		}
		d.Items = slices.Delete(d.Items, idx, idx+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "clipboard item deleted", "id", id, "owner", username)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (models.ClipboardItem, error) {
	d, err := s.doc.Read(ctx)
	if err != nil {
		return models.ClipboardItem{}, err
	}
	for _, it := range d.Items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.ClipboardItem{}, common.ErrorNotFound
}
