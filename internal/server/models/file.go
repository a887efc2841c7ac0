// Package models defines the records the server stores and returns.
package models

import "time"

// StoredFile describes a file in the storage root. It is always derived from
// the filesystem, never persisted separately.
type StoredFile struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}
