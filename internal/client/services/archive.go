package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/utilitybox/internal/archive"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
)

var errNoArchiver = errors.New("archiving is not configured")

// Compress archives files into {dest}/archives/{name}.{format}, then uploads
// the archive when an Uploader is set. A failed upload is logged and leaves
// the local archive and the 200 status in place.
func (s *operationService) Compress(ctx context.Context, format archive.Format, name string, files []string, dest string) Outcome {
	r := s.begin(ctx, oplog.Compress, dest)
	if !r.validate(ctx, files...) {
		return r.out
	}
	if s.Archiver == nil {
		return r.fail(ctx, errNoArchiver)
	}
	r.target = s.Archiver.Resolve(dest)

	path, err := s.Archiver.Compress(ctx, format, name, files, dest)
	if err != nil {
		return r.fail(ctx, err)
	}
	r.out.Status = oplog.StatusOK
	r.out.Files = files
	r.out.Destination = path

	if s.Uploader != nil {
		uri, err := s.Uploader.Upload(ctx, path)
		if err != nil {
			r.log.Error(ctx, "archive upload failed", "archive", path, "error", err)
		} else {
			r.out.Remote = uri
			r.log.Info(ctx, "archive uploaded", "archive", path, "uri", uri)
		}
	}
	return r.finish(ctx, oplog.Compressed(r.out.Status, r.target))
}

func (s *operationService) Decompress(ctx context.Context, archivePath, dest string) Outcome {
	r := s.begin(ctx, oplog.Decompress, archivePath)
	if !r.validate(ctx, archivePath) {
		return r.out
	}
	if s.Archiver == nil {
		return r.fail(ctx, errNoArchiver)
	}

	out, err := s.Archiver.Decompress(ctx, archivePath, dest)
	if err != nil {
		return r.fail(ctx, err)
	}
	r.out.Status = oplog.StatusOK
	r.out.Files = []string{archivePath}
	r.out.Destination = out
	return r.finish(ctx, oplog.Decompressed(r.out.Status, out))
}
