// Package extx holds the extension helpers shared by search, sort and delete.
//
// An extension is the file-type suffix without its leading dot, as typed by
// the user or as found on disk. Case is left untouched here; callers that want
// case-insensitive input lower-case it before calling.
package extx

import (
	"path/filepath"
	"strings"
)

// SplitExtensions splits a comma-separated list and removes every space from
// each token. Empty segments are kept, so "" yields []string{""} and
// "txt," yields []string{"txt", ""}. An empty token means "no extension filter".
func SplitExtensions(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ReplaceAll(p, " ", ""))
	}
	return out
}

// IsUnfiltered reports whether exts carries no real extension, i.e. it is the
// result of splitting an empty string.
func IsUnfiltered(exts []string) bool {
	return len(exts) == 0 || (len(exts) == 1 && exts[0] == "")
}

// Of returns the extension of name without the leading dot ("" if none).
// Leading dots of the base name never start an extension, so ".env" has
// none while ".tar.gz" has "gz".
func Of(name string) string {
	return strings.TrimPrefix(dotExt(name), ".")
}

// Stem returns name with its extension removed. A dotfile is its own stem.
func Stem(name string) string {
	return strings.TrimSuffix(name, dotExt(name))
}

// dotExt is filepath.Ext with dotfile names treated as having no extension.
func dotExt(name string) string {
	base := name[strings.LastIndexAny(name, "/"+string(filepath.Separator))+1:]
	i := strings.LastIndexByte(base, '.')
	if i < 0 || strings.TrimLeft(base[:i], ".") == "" {
		return ""
	}
	return base[i:]
}

// Grouped maps an extension to the extension-less names found for it.
// Order lists the keys in first-encounter order.
type Grouped struct {
	Order []string
	Files map[string][]string
}

// Len returns the number of distinct extensions.
func (g Grouped) Len() int { return len(g.Order) }

// GroupByExtension buckets each path's extension-less path under its
// extension, preserving encounter order within each bucket and across keys.
func GroupByExtension(paths []string) Grouped {
	g := Grouped{Files: make(map[string][]string)}
	for _, p := range paths {
		ext := Of(p)
		if _, ok := g.Files[ext]; !ok {
			g.Order = append(g.Order, ext)
		}
		g.Files[ext] = append(g.Files[ext], Stem(p))
	}
	return g
}
