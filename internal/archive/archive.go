// Package archive compresses selected files into zip or rar archives and
// extracts them again.
//
// Compression goes through a flat staging folder, {dest}/archives, so that
// archives hold plain basenames whatever the source layout was. The archive
// itself is written into that same folder. The full sequence is
// stage -> compress -> clean; Compress runs it in one call.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/common"
)

// StagingFolder is the name of the folder archives are built in.
const StagingFolder = "archives"

type Format string

const (
	FormatZip Format = "zip"
	FormatRar Format = "rar"
)

// ParseFormat accepts "zip" or "rar" (case-insensitive, optional dot).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case FormatZip:
		return FormatZip, nil
	case FormatRar:
		return FormatRar, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, s)
	}
}

// DetectFormat infers the format of an existing archive from its extension.
func DetectFormat(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Archiver holds the defaults shared by every archive call.
type Archiver struct {
	// DefaultDir is used whenever a destination path is left empty.
	DefaultDir string
	// RarBinary is the external tool used to create rar archives.
	RarBinary string
	// Timeout bounds a single external tool invocation. Zero means none.
	Timeout time.Duration
	Runner  Runner
}

func New(defaultDir, rarBinary string, timeout time.Duration) *Archiver {
	if rarBinary == "" {
		rarBinary = "rar"
	}
	return &Archiver{
		DefaultDir: defaultDir,
		RarBinary:  rarBinary,
		Timeout:    timeout,
		Runner:     ExecRunner{},
	}
}

// Resolve returns dest, or DefaultDir when dest is empty.
func (a *Archiver) Resolve(dest string) string {
	if dest == "" {
		return a.DefaultDir
	}
	return dest
}

// StagingDir is {dest}/archives for the resolved dest.
func (a *Archiver) StagingDir(dest string) string {
	return filepath.Join(a.Resolve(dest), StagingFolder)
}

// Compress stages files, builds {dest}/archives/{name}.{format} and removes
// the staged copies. It returns the archive path. Staged copies are cleaned
// even when compression fails.
func (a *Archiver) Compress(ctx context.Context, format Format, name string, files []string, dest string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("compress: archive name is required")
	}
	if _, err := a.StageToTemporaryFolder(files, dest); err != nil {
		return "", err
	}

	var (
		path string
		err  error
	)
	switch format {
	case FormatZip:
		path, err = a.CompressZip(name, files, dest)
	case FormatRar:
		path, err = a.CompressRar(ctx, name, files, dest)
	default:
		err = fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}

	if cerr := a.CleanStagedFiles(files, dest); cerr != nil && err == nil {
		err = cerr
	}
	return path, err
}

// Decompress extracts archivePath into dest, picking the format from the
// file extension.
func (a *Archiver) Decompress(ctx context.Context, archivePath, dest string) (string, error) {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatRar:
		return a.DecompressRar(ctx, archivePath, dest)
	default:
		return a.DecompressZip(archivePath, dest)
	}
}

func (a *Archiver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Timeout)
}

// basenames maps each path to its base name, preserving order.
func basenames(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, filepath.Base(f))
	}
	return out
}
