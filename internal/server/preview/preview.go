// Package preview renders stored text files for in-browser display with a
// size cap, encoding fallback and character truncation.
package preview

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

const (
	DefaultMaxBytes = 1 * common.MiB
	DefaultMaxChars = 10000
)

// Named pairs an encoding with the label reported to clients.
type Named struct {
	Name     string
	Encoding encoding.Encoding
}

// DefaultEncodings is the fallback order used when none is configured.
// ISO-8859-1 maps every byte, so it always succeeds last.
var DefaultEncodings = []Named{
	{Name: "utf-8", Encoding: unicode.UTF8},
	{Name: "gbk", Encoding: simplifiedchinese.GBK},
	{Name: "gb18030", Encoding: simplifiedchinese.GB18030},
	{Name: "iso-8859-1", Encoding: charmap.ISO8859_1},
}

const (
	ReasonTooLarge            = "too_large"
	ReasonUnsupportedEncoding = "unsupported_encoding"
)

// Error explains why a preview could not be produced. It unwraps to
// common.ErrPreviewUnavailable.
type Error struct {
	Reason string
	Size   int64
	Limit  int64
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonTooLarge:
		return fmt.Sprintf("file too large to preview (file size %s, max %s)",
			common.FormatFileSize(e.Size), common.FormatFileSize(e.Limit))
	case ReasonUnsupportedEncoding:
		return "unsupported encoding"
	}
	return "preview unavailable: " + e.Reason
}

func (e *Error) Unwrap() error {
	return common.ErrPreviewUnavailable
}

// Text is a decoded, possibly truncated preview.
type Text struct {
	Content   string `json:"content"`
	Encoding  string `json:"encoding"`
	Truncated bool   `json:"truncated"`
}

type Reader struct {
	MaxBytes  int64
	MaxChars  int
	Encodings []Named
}

// NewReader returns a Reader with the default limits and encodings. Zero
// arguments fall back to the defaults.
func NewReader(maxBytes int64, maxChars int) *Reader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Reader{MaxBytes: maxBytes, MaxChars: maxChars, Encodings: DefaultEncodings}
}

// TruncationMarker is appended to content cut at maxChars.
func TruncationMarker(maxChars int) string {
	return fmt.Sprintf("\n\n... (content truncated, showing first %d characters)", maxChars)
}

// ReadFile decodes the file at path.
func (r *Reader) ReadFile(path string) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Text{}, common.ErrorNotFound
		}
		return Text{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Text{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if info.Size() > r.MaxBytes {
		return Text{}, &Error{Reason: ReasonTooLarge, Size: info.Size(), Limit: r.MaxBytes}
	}

	// The file may grow after Stat; never read past the limit.
	data, err := io.ReadAll(io.LimitReader(f, r.MaxBytes+1))
	if err != nil {
		return Text{}, fmt.Errorf("%w: %v", common.ErrStorageIO, err)
	}
	if int64(len(data)) > r.MaxBytes {
		return Text{}, &Error{Reason: ReasonTooLarge, Size: int64(len(data)), Limit: r.MaxBytes}
	}

	return r.Decode(data)
}

// Decode tries each configured encoding in order and truncates the result.
func (r *Reader) Decode(data []byte) (Text, error) {
	for _, enc := range r.Encodings {
		s, ok := decodeStrict(enc.Encoding, data)
		if !ok {
			continue
		}
		s = normalizeNewlines(s)
		t := Text{Content: s, Encoding: enc.Name}
		if r.MaxChars > 0 && utf8.RuneCountInString(s) > r.MaxChars {
			t.Content = string([]rune(s)[:r.MaxChars]) + TruncationMarker(r.MaxChars)
			t.Truncated = true
		}
		return t, nil
	}
	return Text{}, &Error{Reason: ReasonUnsupportedEncoding}
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines turns CRLF and lone CR into LF before characters are
// counted.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return newlines.Replace(s)
}

// decodeStrict fails instead of substituting U+FFFD for invalid input.
func decodeStrict(enc encoding.Encoding, data []byte) (string, bool) {
	if enc == unicode.UTF8 {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}
