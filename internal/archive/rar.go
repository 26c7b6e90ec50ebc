package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
	"github.com/nwaples/rardecode/v2"
)

// CompressRar builds {dest}/archives/{name}.rar from the staged copies using
// the external rar tool. Files must have been staged first.
func (a *Archiver) CompressRar(ctx context.Context, name string, files []string, dest string) (string, error) {
	dir := a.StagingDir(dest)
	out := name + ".rar"

	args := []string{"a", "-ep", "-y", "-idq", "--", out}
	args = append(args, basenames(files)...)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	output, err := a.Runner.Run(ctx, dir, a.RarBinary, args...)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", fmt.Errorf("%w: %s: %w: %s", common.ErrArchiveTool, a.RarBinary, err, strings.TrimSpace(string(output)))
	}
	return filepath.Join(dir, out), nil
}

// DecompressRar extracts archivePath into dest (DefaultDir when empty).
// Extraction is done in-process; password-protected or multi-volume archives
// that need more input fail with common.ErrArchiveTool.
func (a *Archiver) DecompressRar(ctx context.Context, archivePath, dest string) (string, error) {
	dest = a.Resolve(dest)
	if _, err := filex.EnsureDir(dest); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	rc, err := rardecode.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", common.ErrArchiveTool, archivePath, err)
	}
	defer rc.Close()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", common.ErrArchiveTool, err)
		}

		hdr, err := rc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %v", common.ErrArchiveTool, archivePath, err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		if hdr.IsDir {
			if _, err := filex.EnsureDir(target); err != nil {
				return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
			}
			continue
		}
		if _, err := filex.EnsureDir(filepath.Dir(target)); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrIOFailure, err)
		}
		if err := writeEntry(rc, target, hdr.Mode().Perm()); err != nil {
			return "", err
		}
	}
	return dest, nil
}
