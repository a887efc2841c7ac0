// Package quota accounts for bytes held in the storage root against a
// configured ceiling.
package quota

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// WarningRatio is the usage fraction from which clients are warned.
const WarningRatio = 0.80

// Usage is a snapshot of storage consumption.
type Usage struct {
	UsedBytes int64 `json:"used_bytes"`
	MaxBytes  int64 `json:"max_bytes"`
}

// Percentage returns used/max as a percentage rounded to two decimals, or 0
// when no ceiling is configured.
func (u Usage) Percentage() float64 {
	if u.MaxBytes <= 0 {
		return 0
	}
	p := float64(u.UsedBytes) / float64(u.MaxBytes) * 100
	return math.Round(p*100) / 100
}

// IsFull reports whether usage reached the ceiling. A full store admits no
// uploads at all, whatever their size.
func (u Usage) IsFull() bool {
	return u.UsedBytes >= u.MaxBytes
}

// IsWarning is informational only; it never blocks an upload.
func (u Usage) IsWarning() bool {
	return u.Percentage() >= WarningRatio*100
}

// Available returns the bytes left before the ceiling, never negative.
func (u Usage) Available() int64 {
	return max(u.MaxBytes-u.UsedBytes, 0)
}

// Compute walks root and sums the sizes of all regular files under it.
func Compute(root string, maxBytes int64) (Usage, error) {
	var used int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// Removed between listing and stat.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		used += info.Size()
		return nil
	})
	if err != nil {
		return Usage{}, fmt.Errorf("%w: computing usage of %s: %v", common.ErrStorageIO, root, err)
	}
	return Usage{UsedBytes: used, MaxBytes: maxBytes}, nil
}
