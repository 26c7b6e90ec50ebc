package services

import (
	"context"

	"github.com/dmitrijs2005/utilitybox/internal/deleter"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
	"github.com/dmitrijs2005/utilitybox/internal/search"
	"github.com/dmitrijs2005/utilitybox/internal/sorter"
)

func (s *operationService) Search(ctx context.Context, dir, name, extension string) Outcome {
	r := s.begin(ctx, oplog.Search, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}

	sr := search.New(dir)
	var err error
	if name != "" {
		err = sr.ByName(name, lower(extension))
	} else {
		err = sr.ByExtension(lower(extension))
	}
	return r.batch(ctx, sr.FilesFound(), err)
}

func (s *operationService) SortByExtension(ctx context.Context, dir, extension string) Outcome {
	r := s.begin(ctx, oplog.Sort, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	so := sorter.New(dir)
	err := so.IndexBySingleExtension(lower(extension))
	return r.batch(ctx, so.FilesMoved(), err)
}

func (s *operationService) SortByExtensions(ctx context.Context, dir, csv string) Outcome {
	r := s.begin(ctx, oplog.Sort, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	so := sorter.New(dir)
	err := so.IndexByMultipleExtensions(lower(csv))
	return r.batch(ctx, so.FilesMoved(), err)
}

func (s *operationService) SortByKeyword(ctx context.Context, dir, keyword, extension, newName string) Outcome {
	r := s.begin(ctx, oplog.Sort, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	so := sorter.New(dir)
	err := so.SortAndIndexByKeyword(keyword, lower(extension), newName)
	return r.batch(ctx, so.FilesMoved(), err)
}

func (s *operationService) DeleteByExtension(ctx context.Context, dir, extension string) Outcome {
	r := s.begin(ctx, oplog.Delete, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	d := deleter.New(dir)
	err := d.DeleteBySingleExtension(lower(extension))
	return r.batch(ctx, d.FilesDeleted(), err)
}

func (s *operationService) DeleteByExtensions(ctx context.Context, dir, csv string) Outcome {
	r := s.begin(ctx, oplog.Delete, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	d := deleter.New(dir)
	err := d.DeleteByMultipleExtensions(lower(csv))
	return r.batch(ctx, d.FilesDeleted(), err)
}

func (s *operationService) DeleteByKeyword(ctx context.Context, dir, keyword, csv string) Outcome {
	r := s.begin(ctx, oplog.Delete, dir)
	if !r.validate(ctx, dir) {
		return r.out
	}
	d := deleter.New(dir)
	err := d.DeleteByKeyword(keyword, lower(csv))
	return r.batch(ctx, d.FilesDeleted(), err)
}
