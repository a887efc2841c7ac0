package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestReadFile_UTF8(t *testing.T) {
	r := NewReader(0, 0)

	got, err := r.ReadFile(writeTemp(t, []byte("hello, 世界\n")))
	require.NoError(t, err)

	assert.Equal(t, "hello, 世界\n", got.Content)
	assert.Equal(t, "utf-8", got.Encoding)
	assert.False(t, got.Truncated)
}

func TestReadFile_FallsBackToGBK(t *testing.T) {
	r := NewReader(0, 0)

	// "中文" encoded as GBK.
	got, err := r.ReadFile(writeTemp(t, []byte{0xD6, 0xD0, 0xCE, 0xC4}))
	require.NoError(t, err)

	assert.Equal(t, "中文", got.Content)
	assert.Equal(t, "gbk", got.Encoding)
}

func TestReadFile_LatinOneAlwaysDecodes(t *testing.T) {
	r := NewReader(0, 0)

	got, err := r.ReadFile(writeTemp(t, []byte{'a', 0xFF, 0xFF}))
	require.NoError(t, err)

	assert.Equal(t, "aÿÿ", got.Content)
	assert.Equal(t, "iso-8859-1", got.Encoding)
}

func TestReadFile_UnsupportedEncoding(t *testing.T) {
	r := NewReader(0, 0)
	r.Encodings = DefaultEncodings[:2]

	_, err := r.ReadFile(writeTemp(t, []byte{'a', 0xFF, 0xFF}))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPreviewUnavailable)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonUnsupportedEncoding, perr.Reason)
}

func TestReadFile_TooLarge(t *testing.T) {
	r := NewReader(16, 0)

	_, err := r.ReadFile(writeTemp(t, make([]byte, 17)))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPreviewUnavailable)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonTooLarge, perr.Reason)
	assert.Equal(t, int64(17), perr.Size)
	assert.Equal(t, int64(16), perr.Limit)
	assert.Equal(t, "file too large to preview (file size 17.0 B, max 16.0 B)", err.Error())
}

func TestDecode_NormalizesLineEndings(t *testing.T) {
	got, err := NewReader(0, 0).Decode([]byte("a\r\nb\rc\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", got.Content)
	assert.False(t, got.Truncated)

	got, err = NewReader(0, 4).Decode([]byte("ab\r\ncd"))
	require.NoError(t, err)
	assert.Equal(t, "ab\nc"+TruncationMarker(4), got.Content)
	assert.True(t, got.Truncated)
}

func TestReadFile_AtSizeLimit(t *testing.T) {
	r := NewReader(16, 0)

	got, err := r.ReadFile(writeTemp(t, []byte(strings.Repeat("x", 16))))
	require.NoError(t, err)
	assert.Len(t, got.Content, 16)
}

func TestReadFile_Truncates(t *testing.T) {
	r := NewReader(0, 0)
	content := strings.Repeat("a", 25000)

	got, err := r.ReadFile(writeTemp(t, []byte(content)))
	require.NoError(t, err)

	assert.True(t, got.Truncated)
	assert.True(t, strings.HasPrefix(got.Content, strings.Repeat("a", DefaultMaxChars)))
	assert.True(t, strings.HasSuffix(got.Content, TruncationMarker(DefaultMaxChars)))
	assert.Equal(t, DefaultMaxChars+utf8.RuneCountInString(TruncationMarker(DefaultMaxChars)),
		utf8.RuneCountInString(got.Content))
}

func TestDecode_TruncatesByRunes(t *testing.T) {
	r := NewReader(0, 3)

	got, err := r.Decode([]byte("文件管理器"))
	require.NoError(t, err)

	assert.Equal(t, "文件管"+TruncationMarker(3), got.Content)
	assert.True(t, got.Truncated)
}

func TestDecode_ExactlyMaxCharsNotTruncated(t *testing.T) {
	r := NewReader(0, 5)

	got, err := r.Decode([]byte("abcde"))
	require.NoError(t, err)
	assert.Equal(t, "abcde", got.Content)
	assert.False(t, got.Truncated)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewReader(0, 0).ReadFile(filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
