package models

import "github.com/dmitrijs2005/filekeeper/internal/timex"

// ClipboardItem is an entry of the shared clipboard. Items are immutable once
// written.
type ClipboardItem struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	Owner     string          `json:"owner"`
	CreatedAt timex.Timestamp `json:"created_at"`
	IsPublic  bool            `json:"is_public"`
}

// PersonalClipboard is a named clipboard readable and writable only by its
// creator.
type PersonalClipboard struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	Creator   string          `json:"creator"`
	CreatedAt timex.Timestamp `json:"created_at"`
	UpdatedAt timex.Timestamp `json:"updated_at"`
}
