package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

// StageToTemporaryFolder copies every file into the flat staging folder
// {dest}/archives and returns that folder. Two inputs sharing a basename
// would overwrite each other, so that is rejected before anything is copied.
// When a copy fails, the copies made so far are cleaned before returning.
func (a *Archiver) StageToTemporaryFolder(files []string, dest string) (string, error) {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		if prev, ok := seen[base]; ok {
			return "", fmt.Errorf("stage: %s and %s share the name %q", prev, f, base)
		}
		seen[base] = f
	}

	dir, err := filex.EnsureDir(a.StagingDir(dest))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	for i, f := range files {
		target := filepath.Join(dir, filepath.Base(f))
		if samePath(f, target) {
			continue
		}
		if err := filex.CopyFile(f, target); err != nil {
			err = fmt.Errorf("%w: stage %s: %v", common.ErrIOFailure, f, err)
			if cerr := a.CleanStagedFiles(files[:i], dest); cerr != nil {
				err = errors.Join(err, cerr)
			}
			return dir, err
		}
	}
	return dir, nil
}

// CleanStagedFiles removes the staged copies (by basename) from
// {target}/archives and removes the folder when it ends up empty. Missing
// files are reported in the returned error but do not stop the loop.
func (a *Archiver) CleanStagedFiles(files []string, target string) error {
	dir := a.StagingDir(target)

	var errs []error
	for _, f := range files {
		p := filepath.Join(dir, filepath.Base(f))
		if samePath(f, p) {
			continue
		}
		if err := os.Remove(p); err != nil {
			errs = append(errs, fmt.Errorf("%w: clean %s: %v", common.ErrIOFailure, p, err))
		}
	}

	left, err := filex.ListEntries(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		errs = append(errs, fmt.Errorf("%w: clean: %v", common.ErrIOFailure, err))
	case err != nil:
		errs = append(errs, err)
	case len(left) == 0:
		if err := os.Remove(dir); err != nil {
			errs = append(errs, fmt.Errorf("%w: clean: %v", common.ErrIOFailure, err))
		}
	}
	return errors.Join(errs...)
}

// samePath reports whether a and b name the same file, so a file that already
// sits in the staging folder is neither copied onto itself nor removed.
func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
