package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

// CompressZip writes {dest}/archives/{name}.zip holding the staged copy of
// every file under its basename. Files must have been staged first.
func (a *Archiver) CompressZip(name string, files []string, dest string) (string, error) {
	dir := a.StagingDir(dest)
	out := filepath.Join(dir, name+".zip")

	fh, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", common.ErrIOFailure, out, err)
	}

	zw := zip.NewWriter(fh)
	for _, base := range basenames(files) {
		if err := addToZip(zw, filepath.Join(dir, base), base); err != nil {
			_ = zw.Close()
			_ = fh.Close()
			_ = os.Remove(out)
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		_ = fh.Close()
		_ = os.Remove(out)
		return "", fmt.Errorf("%w: finish %s: %v", common.ErrIOFailure, out, err)
	}
	if err := fh.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", common.ErrIOFailure, out, err)
	}
	return out, nil
}

func addToZip(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", common.ErrIOFailure, path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", common.ErrIOFailure, path, err)
	}
	hdr, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrIOFailure, name, err)
	}
	return nil
}

// DecompressZip extracts every entry of archivePath into dest (DefaultDir
// when empty) and returns the resolved destination.
func (a *Archiver) DecompressZip(archivePath, dest string) (string, error) {
	dest = a.Resolve(dest)
	if _, err := filex.EnsureDir(dest); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", common.ErrArchiveTool, archivePath, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if _, err := filex.EnsureDir(target); err != nil {
				return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
			}
			continue
		}
		if err := extractZipEntry(f, target); err != nil {
			return "", err
		}
	}
	return dest, nil
}

func extractZipEntry(f *zip.File, target string) error {
	if _, err := filex.EnsureDir(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", common.ErrArchiveTool, f.Name, err)
	}
	defer rc.Close()

	return writeEntry(rc, target, f.Mode().Perm())
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", common.ErrIOFailure, target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: extract %s: %v", common.ErrArchiveTool, target, err)
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto dest and rejects names that
// would land outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: entry %q escapes destination", common.ErrUnsupportedFormat, name)
	}
	return target, nil
}
