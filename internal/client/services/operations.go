package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/archive"
	"github.com/dmitrijs2005/utilitybox/internal/archive/remote"
	"github.com/dmitrijs2005/utilitybox/internal/client/models"
	"github.com/dmitrijs2005/utilitybox/internal/client/repositories/history"
	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/cryptox"
	"github.com/dmitrijs2005/utilitybox/internal/extx"
	"github.com/dmitrijs2005/utilitybox/internal/logging"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
	"github.com/google/uuid"
)

// ErrHistoryDisabled is returned by History when no journal is configured.
var ErrHistoryDisabled = errors.New("history journal is disabled")

// OperationService runs one user action per call. All methods honor ctx for
// external tool and network calls.
type OperationService interface {
	// Search matches by name (and optionally extension) when name is given,
	// by extension only otherwise.
	Search(ctx context.Context, dir, name, extension string) Outcome

	SortByExtension(ctx context.Context, dir, extension string) Outcome
	SortByExtensions(ctx context.Context, dir, csv string) Outcome
	SortByKeyword(ctx context.Context, dir, keyword, extension, newName string) Outcome

	DeleteByExtension(ctx context.Context, dir, extension string) Outcome
	DeleteByExtensions(ctx context.Context, dir, csv string) Outcome
	DeleteByKeyword(ctx context.Context, dir, keyword, csv string) Outcome

	Compress(ctx context.Context, format archive.Format, name string, files []string, dest string) Outcome
	Decompress(ctx context.Context, archivePath, dest string) Outcome

	Encrypt(ctx context.Context, filePath string) Outcome
	Decrypt(ctx context.Context, filePath string) Outcome

	// History lists the latest journaled operations, newest first.
	History(ctx context.Context, limit int) ([]models.Operation, error)
}

// Deps wires an OperationService. Uploader and Journal are optional.
type Deps struct {
	Logger   logging.Logger
	FileLog  *oplog.FileLog
	Sink     ResultSink
	Archiver *archive.Archiver
	Uploader remote.Uploader
	Journal  history.Repository
	KeysDir  string
	Suite    cryptox.Suite

	// NewID and Now are seams for tests.
	NewID func() string
	Now   func() time.Time
}

type operationService struct {
	Deps
}

func NewOperationService(d Deps) OperationService {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Sink == nil {
		d.Sink = SinkFunc(func(oplog.Status, string) {})
	}
	if d.Suite == "" {
		d.Suite = cryptox.SuiteAESGCM
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &operationService{Deps: d}
}

// run carries one operation from validation to journaling.
type run struct {
	svc    *operationService
	log    logging.Logger
	out    Outcome
	target string
}

func (s *operationService) begin(ctx context.Context, c oplog.Category, target string) *run {
	id := s.NewID()
	r := &run{
		svc:    s,
		log:    s.Logger.With("operation", string(c), "op_id", id),
		out:    Outcome{Id: id, Operation: c},
		target: target,
	}
	r.log.Debug(ctx, "operation started", "target", target)
	return r
}

// validate fails the run with 404 unless every path exists.
func (r *run) validate(ctx context.Context, paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{""}
	}
	for _, p := range paths {
		if p != "" {
			if _, err := os.Stat(p); err == nil {
				continue
			}
		}
		r.out.Status = oplog.StatusBadPath
		r.out.Err = fmt.Errorf("%w: %q", common.ErrPathNotFound, p)
		r.finish(ctx, oplog.PathInvalid(r.out.Operation, p))
		return false
	}
	return true
}

// fail ends the run with 500.
func (r *run) fail(ctx context.Context, err error) Outcome {
	r.out.Status = oplog.StatusFailed
	r.out.Err = err
	return r.finish(ctx, oplog.Failed(r.out.Operation, r.target, err))
}

func (r *run) finish(ctx context.Context, message string) Outcome {
	s := r.svc
	c, st := r.out.Operation, r.out.Status

	if s.FileLog != nil {
		if err := s.FileLog.Append(c, message); err != nil {
			r.log.Error(ctx, "operation log write failed", "error", err)
		}
	}

	s.Sink.Report(st, oplog.Short(c, st))

	if s.Journal != nil {
		err := s.Journal.Add(ctx, &models.Operation{
			Id:        r.out.Id,
			Operation: string(c),
			Status:    int(st),
			Affected:  len(r.out.Files),
			Target:    r.target,
			CreatedAt: s.Now(),
		})
		if err != nil {
			r.log.Warn(ctx, "history journal write failed", "error", err)
		}
	}

	args := []any{"status", int(st), "affected", len(r.out.Files)}
	switch {
	case st.Success() && r.out.Err != nil:
		r.log.Warn(ctx, "operation finished with errors", append(args, "error", r.out.Err)...)
	case st.Success():
		r.log.Info(ctx, "operation finished", args...)
	default:
		r.log.Error(ctx, "operation failed", append(args, "error", r.out.Err)...)
	}
	return r.out
}

// batch finishes search/sort/delete runs. Files affected before an error are
// still reported; an error with nothing affected is a failure.
func (r *run) batch(ctx context.Context, files []string, err error) Outcome {
	r.out.Files = files
	if err != nil && len(files) == 0 {
		return r.fail(ctx, err)
	}
	r.out.Err = err
	r.out.Status = oplog.StatusFor(len(files))
	for _, f := range files {
		r.log.Debug(ctx, "file affected", "path", f)
	}
	return r.finish(ctx, oplog.BasicResults(r.out.Operation, r.out.Status, extx.GroupByExtension(files)))
}

func (s *operationService) History(ctx context.Context, limit int) ([]models.Operation, error) {
	if s.Journal == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Journal.List(ctx, limit)
}

// lower normalizes user-typed extensions and extension lists. Keywords and
// names are matched as typed.
func lower(ext string) string {
	return strings.ToLower(strings.TrimSpace(ext))
}
