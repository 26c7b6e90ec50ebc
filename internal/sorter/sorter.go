// Package sorter moves files of a directory into sub-folders, either by
// extension or by keyword with sequential renaming.
//
// Extension matching is a raw suffix test on the file name: "g" matches
// "photo.png" and "log". Only entries that already carry an extension are
// moved by the extension modes.
package sorter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/extx"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

type Sorter struct {
	dir        string
	filesMoved []string
}

func New(dir string) *Sorter {
	return &Sorter{dir: dir}
}

// FilesMoved returns the original full paths of every moved file.
func (s *Sorter) FilesMoved() []string {
	return s.filesMoved
}

// CheckFolderExistence creates the sub-folder name under the target
// directory if it is missing and returns its path.
func (s *Sorter) CheckFolderExistence(name string) (string, error) {
	return filex.EnsureDir(filepath.Join(s.dir, name))
}

// IndexBySingleExtension moves every file with an extension whose name ends
// with extension into the sub-folder named extension. An empty extension is
// a no-op.
func (s *Sorter) IndexBySingleExtension(extension string) error {
	if extension == "" {
		return nil
	}
	files, err := filex.ListFiles(s.dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, f := range files {
		if extx.Of(f) == "" || !strings.HasSuffix(f, extension) {
			continue
		}
		dest, err := s.CheckFolderExistence(extension)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrIOFailure, err)
		}
		src := filepath.Join(s.dir, f)
		if err := moveNoClobber(src, filepath.Join(dest, f)); err != nil {
			errs = append(errs, err)
			continue
		}
		s.filesMoved = append(s.filesMoved, src)
	}
	return errors.Join(errs...)
}

// IndexByMultipleExtensions splits csv and sorts by each extension in turn.
func (s *Sorter) IndexByMultipleExtensions(csv string) error {
	var errs []error
	for _, ext := range extx.SplitExtensions(csv) {
		if err := s.IndexBySingleExtension(ext); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SortAndIndexByKeyword renames every file whose extension-less name contains
// keyword and whose name ends with extension to "{newName}_{i}{ext}" inside
// the sub-folder newName. i starts at 1 and advances only on a successful
// move, so the produced names are gap-free in listing order.
func (s *Sorter) SortAndIndexByKeyword(keyword, extension, newName string) error {
	if newName == "" {
		return errors.New("sort by keyword: new name is required")
	}
	files, err := filex.ListFiles(s.dir)
	if err != nil {
		return err
	}
	dest, err := s.CheckFolderExistence(newName)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	var errs []error
	index := 1
	for _, f := range files {
		if !strings.Contains(extx.Stem(f), keyword) || !strings.HasSuffix(f, extension) {
			continue
		}
		src := filepath.Join(s.dir, f)
		target := filepath.Join(dest, fmt.Sprintf("%s_%d%s", newName, index, filepath.Ext(f)))
		if err := moveNoClobber(src, target); err != nil {
			errs = append(errs, err)
			continue
		}
		s.filesMoved = append(s.filesMoved, src)
		index++
	}
	return errors.Join(errs...)
}

func moveNoClobber(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: move %s: destination %s exists", common.ErrIOFailure, src, dst)
	}
	if err := filex.MoveFile(src, dst); err != nil {
		return fmt.Errorf("%w: move %s: %v", common.ErrIOFailure, src, err)
	}
	return nil
}
