// Package filestore keeps user files flat in a single storage root and
// enforces the naming, type and quota rules on the way in.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/filepolicy"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/preview"
	"github.com/dmitrijs2005/filekeeper/internal/server/quota"
)

const filePerm = 0o640

// FileUpload is one incoming file. Size is the declared length of Body; a
// body that ends early or runs long aborts the upload.
type FileUpload struct {
	Name string
	Size int64
	Body io.Reader
}

// BatchItem is the outcome for one file of a batch. Exactly one of File and
// Err is set.
type BatchItem struct {
	Name string
	File *models.StoredFile
	Err  error
}

type BatchResult struct {
	Items []BatchItem
	Usage quota.Usage
}

// Succeeded returns the number of files stored.
func (r BatchResult) Succeeded() int {
	n := 0
	for _, it := range r.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

type Store struct {
	root     string
	maxBytes int64
	reserved map[string]struct{}
	preview  *preview.Reader
	logger   logging.Logger
}

// New opens the storage root, creating it if needed. reserved names are
// documents kept in the root by other components; they are never listed
// and cannot be uploaded, downloaded or deleted.
func New(root string, maxBytes int64, reader *preview.Reader, logger logging.Logger, reserved ...string) (*Store, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if reader == nil {
		reader = preview.NewReader(0, 0)
	}
	r := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		r[name] = struct{}{}
	}
	return &Store{
		root:     abs,
		maxBytes: maxBytes,
		reserved: r,
		preview:  reader,
		logger:   logger.With("module", "filestore"),
	}, nil
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) accessible(name string) bool {
	if !filepolicy.IsSafe(name) {
		return false
	}
	_, reserved := s.reserved[name]
	return !reserved
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

// Usage returns the current consumption of the storage root.
func (s *Store) Usage() (quota.Usage, error) {
	return quota.Compute(s.root, s.maxBytes)
}

// List returns the stored files, most recently modified first.
func (s *Store) List(ctx context.Context) ([]models.StoredFile, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", common.ErrStorageIO, s.root, err)
	}

	files := make([]models.StoredFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !s.accessible(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
		}
		files = append(files, toStoredFile(info))
	}

	slices.SortFunc(files, func(a, b models.StoredFile) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}

func toStoredFile(info os.FileInfo) models.StoredFile {
	return models.StoredFile{
		Name:       info.Name(),
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}
}

// Upload validates f and writes it under its own name, replacing any file
// already there. tracker carries the running usage of the current batch; a
// nil tracker is seeded from a fresh usage snapshot.
func (s *Store) Upload(ctx context.Context, f FileUpload, tracker *quota.Tracker) (models.StoredFile, error) {
	if !s.accessible(f.Name) {
		return models.StoredFile{}, unsafeName(f.Name)
	}
	if !filepolicy.IsAllowedExtension(f.Name) {
		return models.StoredFile{}, disallowedType(f.Name)
	}
	if f.Size < 0 {
		return models.StoredFile{}, fmt.Errorf("upload %s: size must be declared", f.Name)
	}

	if tracker == nil {
		u, err := s.Usage()
		if err != nil {
			return models.StoredFile{}, err
		}
		tracker = quota.NewTracker(u)
	}
	if err := tracker.Admit(f.Size); err != nil {
		return models.StoredFile{}, quotaExceeded(f.Name, f.Size, tracker.Usage().Available())
	}

	body := &sizedReader{ctx: ctx, r: f.Body, want: f.Size}
	n, err := filex.CopyAtomic(s.path(f.Name), body, filePerm)
	if err != nil {
		if body.err != nil {
			return models.StoredFile{}, body.err
		}
		return models.StoredFile{}, fmt.Errorf("%w: writing %s: %v", common.ErrStorageIO, f.Name, err)
	}
	tracker.Commit(n)

	info, err := os.Stat(s.path(f.Name))
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}

	s.logger.Info(ctx, "file uploaded", "name", f.Name, "size", n)
	return toStoredFile(info), nil
}

// UploadBatch stores files in order against one quota snapshot. A failing
// file does not stop the rest.
func (s *Store) UploadBatch(ctx context.Context, files []FileUpload) (BatchResult, error) {
	u, err := s.Usage()
	if err != nil {
		return BatchResult{}, err
	}
	tracker := quota.NewTracker(u)

	res := BatchResult{Items: make([]BatchItem, 0, len(files))}
	for _, f := range files {
		item := BatchItem{Name: f.Name}
		stored, err := s.Upload(ctx, f, tracker)
		if err != nil {
			s.logger.Warn(ctx, "file rejected", "name", f.Name, "error", err)
			item.Err = err
		} else {
			item.File = &stored
		}
		res.Items = append(res.Items, item)
	}
	res.Usage = tracker.Usage()
	return res, nil
}

// Stat returns metadata for a downloadable file.
func (s *Store) Stat(name string) (models.StoredFile, error) {
	if !s.accessible(name) {
		return models.StoredFile{}, common.ErrorNotFound
	}
	info, err := os.Stat(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.StoredFile{}, common.ErrorNotFound
		}
		return models.StoredFile{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if !info.Mode().IsRegular() {
		return models.StoredFile{}, common.ErrorNotFound
	}
	return toStoredFile(info), nil
}

// Open returns the file for reading. The caller closes it.
func (s *Store) Open(name string) (*os.File, models.StoredFile, error) {
	if !s.accessible(name) {
		return nil, models.StoredFile{}, common.ErrorNotFound
	}
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.StoredFile{}, common.ErrorNotFound
		}
		return nil, models.StoredFile{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, models.StoredFile{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, models.StoredFile{}, common.ErrorNotFound
	}
	return f, toStoredFile(info), nil
}

// ReadPreviewText decodes a stored text file for display.
func (s *Store) ReadPreviewText(name string) (preview.Text, error) {
	if _, err := s.Stat(name); err != nil {
		return preview.Text{}, err
	}
	return s.preview.ReadFile(s.path(name))
}

// Delete removes name. Invalid and missing names are a no-op reporting
// false.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	if !s.accessible(name) {
		return false, nil
	}
	p := s.path(name)
	info, err := os.Lstat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: deleting %s: %v", common.ErrStorageIO, name, err)
	}

	s.logger.Info(ctx, "file deleted", "name", name)
	return true, nil
}

// DeleteBatch removes every name it can and returns how many files were
// actually removed. Disk errors are joined; the remaining names are still
// attempted.
func (s *Store) DeleteBatch(ctx context.Context, names []string) (int, error) {
	var (
		count int
		errs  []error
	)
	for _, name := range names {
		ok, err := s.Delete(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			count++
		}
	}
	return count, errors.Join(errs...)
}

// sizedReader fails the copy when the context is cancelled or the body
// length differs from the declared size.
type sizedReader struct {
	ctx  context.Context
	r    io.Reader
	want int64
	got  int64
	err  error
}

func (r *sizedReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return 0, err
	}
	n, err := r.r.Read(p)
	r.got += int64(n)
	if r.got > r.want {
		r.err = fmt.Errorf("upload body longer than declared %d bytes: %w", r.want, common.ErrContentTooLarge)
		return n, r.err
	}
	if errors.Is(err, io.EOF) && r.got < r.want {
		r.err = fmt.Errorf("upload body ended after %d of %d bytes: %w", r.got, r.want, io.ErrUnexpectedEOF)
		return n, r.err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		r.err = err
	}
	return n, err
}
