// Package search finds files in a single directory (non-recursive) by name
// and/or extension.
package search

import (
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/extx"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

// Search accumulates matches for one target directory. Matching is done on
// raw entry names; callers lower-case the extension beforehand if they want.
type Search struct {
	dir        string
	filesFound []string
}

func New(dir string) *Search {
	return &Search{dir: dir}
}

// FilesFound returns the full paths matched so far, in listing order.
func (s *Search) FilesFound() []string {
	return s.filesFound
}

// ByName matches entries whose extension-less name contains name (equality
// included) and, when extension is not empty, whose name ends with
// "."+extension.
func (s *Search) ByName(name, extension string) error {
	entries, err := filex.ListEntries(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !strings.Contains(extx.Stem(e), name) {
			continue
		}
		if extension != "" && !strings.HasSuffix(e, "."+extension) {
			continue
		}
		s.filesFound = append(s.filesFound, filepath.Join(s.dir, e))
	}
	return nil
}

// ByExtension matches every entry ending with "."+extension.
func (s *Search) ByExtension(extension string) error {
	entries, err := filex.ListEntries(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if strings.HasSuffix(e, "."+extension) {
			s.filesFound = append(s.filesFound, filepath.Join(s.dir, e))
		}
	}
	return nil
}

// Found reports whether anything matched.
func (s *Search) Found() bool {
	return len(s.filesFound) > 0
}
