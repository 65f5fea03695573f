package constants

import "strings"

// AllowedExtensions holds the file extensions accepted by the upload form.
// Loading plans only ever arrive as PDFs.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt checks a (possibly dotted, mixed-case) extension against the allow list.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
