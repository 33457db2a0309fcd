package filemgr

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// EnsureSafeFilename lowercases, underscores spaces and strips anything
// outside [a-zA-Z0-9_-] from the base name, then reattaches the extension.
func EnsureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return name + ext
}
