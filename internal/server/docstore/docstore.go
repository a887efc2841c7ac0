// Package docstore persists a single JSON document that is read and
// rewritten in full on every mutation.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
)

const filePerm = 0o640

// Document guards one JSON file. The mutex is held across load, mutate and
// save so concurrent updates in this process never lose writes.
type Document[T any] struct {
	mu     sync.Mutex
	path   string
	empty  func() T
	logger logging.Logger
}

// Open returns a Document stored at path. empty builds the value written
// when the file is missing or unreadable.
func Open[T any](path string, empty func() T, logger logging.Logger) *Document[T] {
	return &Document[T]{
		path:   path,
		empty:  empty,
		logger: logger.With("document", path),
	}
}

func (d *Document[T]) Path() string {
	return d.path
}

// Read returns the current document.
func (d *Document[T]) Read(ctx context.Context) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// Update loads the document, applies fn and writes the result. Nothing is
// written when fn returns an error.
func (d *Document[T]) Update(ctx context.Context, fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return d.save(doc)
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var zero T
			return zero, fmt.Errorf("%w: reading %s: %v", common.ErrStorageIO, d.path, err)
		}
		d.logger.Info(ctx, "document missing, initializing")
		return d.reinit()
	}

	doc := d.empty()
	if err := json.Unmarshal(data, &doc); err != nil {
		d.logger.Warn(ctx, "document unreadable, reinitializing", "error", err)
		return d.reinit()
	}
	return doc, nil
}

func (d *Document[T]) reinit() (T, error) {
	doc := d.empty()
	if err := d.save(doc); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

func (d *Document[T]) save(doc T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", d.path, err)
	}
	if err := filex.WriteFileAtomic(d.path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("%w: writing %s: %v", common.ErrStorageIO, d.path, err)
	}
	return nil
}
