// Package filepolicy decides which file names may live in the storage root
// and how their types are described and previewed.
package filepolicy

import (
	"path"
	"strings"
)

const maxNameBytes = 255

// PreviewKind classifies how a stored file can be previewed.
type PreviewKind string

const (
	PreviewText    PreviewKind = "text"
	PreviewImage   PreviewKind = "image"
	PreviewPDF     PreviewKind = "pdf"
	PreviewArchive PreviewKind = "archive"
	PreviewUnknown PreviewKind = "unknown"
)

var allowedExtensions = toSet(
	"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx", "xls", "xlsx",
	"ppt", "pptx", "zip", "rar", "7z", "tar", "gz", "mp3", "mp4", "avi", "mov",
	"mpg", "mpeg", "wmv", "flv", "webm", "mkv", "wav", "ogg", "ogv", "m4a",
	"py", "js", "java", "c", "cpp", "html", "css", "php", "go", "rb", "pl",
	"sh", "sql", "md", "yaml", "yml", "json", "xml", "conf", "config", "ini",
	"cfg", "env",
)

var previewKinds = func() map[string]PreviewKind {
	m := make(map[string]PreviewKind)
	for _, ext := range []string{
		"txt", "md", "log", "csv", "json", "xml", "html", "css", "js", "py",
		"java", "c", "cpp", "sql", "yaml", "yml", "ini", "cfg", "conf", "env",
		"sh", "pl", "rb", "go", "php",
	} {
		m[ext] = PreviewText
	}
	for _, ext := range []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"} {
		m[ext] = PreviewImage
	}
	for _, ext := range []string{"zip", "rar", "7z", "tar", "gz"} {
		m[ext] = PreviewArchive
	}
	m["pdf"] = PreviewPDF
	return m
}()

var typeDescriptions = map[string]string{
	"php":  "PHP script",
	"jsp":  "JSP page",
	"asp":  "ASP page",
	"aspx": "ASP.NET page",
	"sh":   "shell script",
	"exe":  "executable",
	"bat":  "batch file",
	"cmd":  "command script",
	"js":   "JavaScript file",
	"jar":  "Java archive",
	"war":  "web archive",
	"py":   "Python script",
	"pl":   "Perl script",
	"rb":   "Ruby script",
}

func toSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

// IsSafe reports whether name can be used as a flat file name in the
// storage root.
func IsSafe(name string) bool {
	if name == "" || len(name) > maxNameBytes {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, `/\<>:"|?*`) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 {
			return false
		}
	}
	return true
}

// Extension returns the lowercase suffix after the last '.', or "" when
// name has none.
func Extension(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsAllowedExtension reports whether name carries an allow-listed extension.
func IsAllowedExtension(name string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// DescribeType returns a human label for the type of name.
func DescribeType(name string) string {
	ext := Extension(name)
	if ext == "" {
		return "file of unknown type"
	}
	if d, ok := typeDescriptions[ext]; ok {
		return d
	}
	return strings.ToUpper(ext) + " file"
}

func PreviewKindOf(name string) PreviewKind {
	if k, ok := previewKinds[Extension(name)]; ok {
		return k
	}
	return PreviewUnknown
}
