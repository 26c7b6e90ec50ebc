// Package deleter removes files from a single directory by extension or by
// keyword. Like sorter, extension matching in the by-extension modes is a raw
// suffix test on the file name.
package deleter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/extx"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

type Deleter struct {
	dir          string
	filesDeleted []string
}

func New(dir string) *Deleter {
	return &Deleter{dir: dir}
}

// FilesDeleted returns the full path of each removed file, once per file.
func (d *Deleter) FilesDeleted() []string {
	return d.filesDeleted
}

// DeleteBySingleExtension removes every file whose name ends with extension.
// An empty extension is a no-op rather than "delete everything".
func (d *Deleter) DeleteBySingleExtension(extension string) error {
	if extension == "" {
		return nil
	}
	return d.deleteWhere(func(name string) bool {
		return strings.HasSuffix(name, extension)
	})
}

// DeleteByMultipleExtensions splits csv and deletes by each extension.
func (d *Deleter) DeleteByMultipleExtensions(csv string) error {
	var errs []error
	for _, ext := range extx.SplitExtensions(csv) {
		if err := d.DeleteBySingleExtension(ext); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteByKeyword removes files whose extension-less name contains keyword.
// When csv names extensions, the file's extension (without dot) must also be
// one of them; an empty csv means any extension. An empty keyword matches
// nothing.
func (d *Deleter) DeleteByKeyword(keyword, csv string) error {
	if keyword == "" {
		return nil
	}
	exts := extx.SplitExtensions(csv)
	filtered := !extx.IsUnfiltered(exts)

	return d.deleteWhere(func(name string) bool {
		if !strings.Contains(extx.Stem(name), keyword) {
			return false
		}
		return !filtered || slices.Contains(exts, extx.Of(name))
	})
}

func (d *Deleter) deleteWhere(match func(name string) bool) error {
	files, err := filex.ListFiles(d.dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, f := range files {
		if !match(f) {
			continue
		}
		p := filepath.Join(d.dir, f)
		if err := os.Remove(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: remove %s: %v", common.ErrIOFailure, p, err))
			continue
		}
		d.filesDeleted = append(d.filesDeleted, p)
	}
	return errors.Join(errs...)
}
