package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/archive"
	"github.com/dmitrijs2005/utilitybox/internal/client/models"
	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/cryptox"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	status oplog.Status
	line   string
}

type recordingSink struct {
	reports []report
}

func (s *recordingSink) Report(status oplog.Status, line string) {
	s.reports = append(s.reports, report{status, line})
}

type fakeJournal struct {
	ops    []models.Operation
	addErr error
}

func (f *fakeJournal) Add(_ context.Context, op *models.Operation) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.ops = append(f.ops, *op)
	return nil
}

func (f *fakeJournal) List(_ context.Context, limit int) ([]models.Operation, error) {
	if limit <= 0 || limit > len(f.ops) {
		limit = len(f.ops)
	}
	return f.ops[len(f.ops)-limit:], nil
}

type fakeUploader struct {
	path string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, path string) (string, error) {
	f.path = path
	if f.err != nil {
		return "", f.err
	}
	return "s3://bucket/" + filepath.Base(path), nil
}

var fixedNow = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     OperationService
	sink    *recordingSink
	journal *fakeJournal
	logs    *oplog.FileLog
	root    string
	work    string
	keys    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		sink:    &recordingSink{},
		journal: &fakeJournal{},
		root:    root,
		work:    filepath.Join(root, "work"),
		keys:    filepath.Join(root, "keys"),
	}
	require.NoError(t, os.MkdirAll(f.work, 0o755))

	f.logs = oplog.NewFileLog(filepath.Join(root, "logs"))
	f.logs.Now = func() time.Time { return fixedNow }

	ids := 0
	f.svc = NewOperationService(Deps{
		FileLog:  f.logs,
		Sink:     f.sink,
		Archiver: archive.New(filepath.Join(root, "desktop"), "rar", time.Minute),
		Journal:  f.journal,
		KeysDir:  f.keys,
		Suite:    cryptox.SuiteXChaCha20Poly1305,
		NewID: func() string {
			ids++
			return "op-" + string(rune('0'+ids))
		},
		Now: func() time.Time { return fixedNow },
	})
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(f.work, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (f *fixture) logText(t *testing.T, c oplog.Category) string {
	t.Helper()
	data, err := os.ReadFile(f.logs.Path(c))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) assertOneEntry(t *testing.T, c oplog.Category) string {
	t.Helper()
	text := f.logText(t, c)
	assert.Equal(t, 1, strings.Count(text, " INFO: ["), "exactly one log record")
	return text
}

func TestMissingPath_Returns404WithoutSideEffects(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.root, "nope")

	out := f.svc.DeleteByExtension(context.Background(), missing, "txt")

	assert.Equal(t, oplog.StatusBadPath, out.Status)
	require.ErrorIs(t, out.Err, common.ErrPathNotFound)
	text := f.assertOneEntry(t, oplog.Delete)
	assert.Contains(t, text, "[DELETE: 404]:\n\tInvalid path:\n\t\t"+missing)
	assert.Equal(t, []report{{oplog.StatusBadPath, "[DELETE: 404]: Failure: Invalid path"}}, f.sink.reports)
	require.Len(t, f.journal.ops, 1)
	assert.Equal(t, models.Operation{Id: "op-1", Operation: "Delete", Status: 404, Target: missing, CreatedAt: fixedNow}, f.journal.ops[0])
	assert.NoDirExists(t, missing)
}

func TestEmptyPath_LogsEmptyPath(t *testing.T) {
	f := newFixture(t)
	out := f.svc.Search(context.Background(), "", "x", "")
	assert.Equal(t, oplog.StatusBadPath, out.Status)
	assert.Contains(t, f.logText(t, oplog.Search), "\t\tEmpty path")
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.write(t, "report.txt", "a")
	f.write(t, "report.pdf", "b")
	f.write(t, "notes.txt", "c")
	ctx := context.Background()

	t.Run("by name and extension", func(t *testing.T) {
		out := f.svc.Search(ctx, f.work, "rep", "TXT")
		assert.Equal(t, oplog.StatusOK, out.Status)
		assert.Equal(t, []string{filepath.Join(f.work, "report.txt")}, out.Files)
	})

	t.Run("by extension", func(t *testing.T) {
		out := f.svc.Search(ctx, f.work, "", "txt")
		assert.Equal(t, []string{filepath.Join(f.work, "notes.txt"), filepath.Join(f.work, "report.txt")}, out.Files)
	})

	t.Run("nothing found", func(t *testing.T) {
		out := f.svc.Search(ctx, f.work, "zzz", "")
		assert.Equal(t, oplog.StatusNoContent, out.Status)
		assert.Empty(t, out.Files)
	})

	assert.Contains(t, f.logText(t, oplog.Search), "Found the following files:\n\t\tFiles of type: txt\n\t\t\treport")
	assert.Equal(t, "[SEARCH 204]: Success: no changes performed", f.sink.reports[len(f.sink.reports)-1].line)
}

func TestSortByExtension(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "a")
	f.write(t, "b.pdf", "b")

	out := f.svc.SortByExtension(context.Background(), f.work, "TXT")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.FileExists(t, filepath.Join(f.work, "txt", "a.txt"))
	assert.FileExists(t, filepath.Join(f.work, "b.pdf"))

	text := f.assertOneEntry(t, oplog.Sort)
	assert.Contains(t, text, "[SORT: 200]:\n\tSorted the following files:\n\t\tFiles of type: txt\n\t\t\ta")
	assert.Equal(t, 1, f.journal.ops[0].Affected)
}

func TestSortByExtensions_AndByKeyword(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "a")
	f.write(t, "b.pdf", "b")
	f.write(t, "trip_1.jpg", "c")
	f.write(t, "trip_2.jpg", "d")
	ctx := context.Background()

	out := f.svc.SortByExtensions(ctx, f.work, "txt, pdf")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.Len(t, out.Files, 2)

	out = f.svc.SortByKeyword(ctx, f.work, "trip", "jpg", "holiday")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.FileExists(t, filepath.Join(f.work, "holiday", "holiday_1.jpg"))
	assert.FileExists(t, filepath.Join(f.work, "holiday", "holiday_2.jpg"))

	out = f.svc.SortByKeyword(ctx, f.work, "trip", "jpg", "")
	assert.Equal(t, oplog.StatusFailed, out.Status)
	require.Error(t, out.Err)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.log", "a")
	f.write(t, "b.tmp", "b")
	f.write(t, "draft_1.txt", "c")
	f.write(t, "draft_2.md", "d")
	ctx := context.Background()

	out := f.svc.DeleteByExtensions(ctx, f.work, "log,tmp")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.Len(t, out.Files, 2)

	out = f.svc.DeleteByKeyword(ctx, f.work, "draft", "txt")
	assert.Equal(t, []string{filepath.Join(f.work, "draft_1.txt")}, out.Files)
	assert.FileExists(t, filepath.Join(f.work, "draft_2.md"))

	out = f.svc.DeleteByExtension(ctx, f.work, "")
	assert.Equal(t, oplog.StatusNoContent, out.Status)
	assert.FileExists(t, filepath.Join(f.work, "draft_2.md"))

	assert.Contains(t, f.logText(t, oplog.Delete), "Deleted the following files:\n\t\tNone")
}

func TestExtensionInputIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.txt", "a")
	f.write(t, "b.pdf", "b")
	f.write(t, "trip_1.jpg", "c")
	f.write(t, "draft.md", "d")
	f.write(t, "x.log", "e")
	f.write(t, "y.tmp", "f")
	ctx := context.Background()

	out := f.svc.SortByExtensions(ctx, f.work, "TXT, Pdf")
	assert.Len(t, out.Files, 2)
	assert.FileExists(t, filepath.Join(f.work, "txt", "a.txt"))
	assert.FileExists(t, filepath.Join(f.work, "pdf", "b.pdf"))

	out = f.svc.SortByKeyword(ctx, f.work, "trip", "JPG", "holiday")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.FileExists(t, filepath.Join(f.work, "holiday", "holiday_1.jpg"))

	out = f.svc.DeleteByKeyword(ctx, f.work, "draft", "MD")
	assert.Equal(t, []string{filepath.Join(f.work, "draft.md")}, out.Files)

	out = f.svc.DeleteByExtensions(ctx, f.work, "LOG,Tmp")
	assert.Len(t, out.Files, 2)
	assert.NoFileExists(t, filepath.Join(f.work, "x.log"))
	assert.NoFileExists(t, filepath.Join(f.work, "y.tmp"))
}

func TestCompressAndDecompress_Zip(t *testing.T) {
	f := newFixture(t)
	a := f.write(t, "x/one.txt", "1")
	b := f.write(t, "y/z/two.txt", "2")
	dest := filepath.Join(f.root, "out")
	up := &fakeUploader{}
	f.svc.(*operationService).Uploader = up
	ctx := context.Background()

	out := f.svc.Compress(ctx, archive.FormatZip, "bundle", []string{a, b}, dest)
	require.NoError(t, out.Err)
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.Equal(t, filepath.Join(dest, "archives", "bundle.zip"), out.Destination)
	assert.Equal(t, "s3://bucket/bundle.zip", out.Remote)
	assert.Equal(t, out.Destination, up.path)
	assert.Contains(t, f.assertOneEntry(t, oplog.Compress), "Archive created at the following location:\n\t\t"+dest)

	extract := filepath.Join(f.root, "extract")
	out = f.svc.Decompress(ctx, filepath.Join(dest, "archives", "bundle.zip"), extract)
	require.NoError(t, out.Err)
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.FileExists(t, filepath.Join(extract, "one.txt"))
	assert.FileExists(t, filepath.Join(extract, "two.txt"))
	assert.Contains(t, f.assertOneEntry(t, oplog.Decompress), "Decompressed the files in following location:\n\t\t"+extract)
}

func TestCompress_UploadFailureKeepsSuccess(t *testing.T) {
	f := newFixture(t)
	a := f.write(t, "one.txt", "1")
	f.svc.(*operationService).Uploader = &fakeUploader{err: errors.New("denied")}

	out := f.svc.Compress(context.Background(), archive.FormatZip, "b", []string{a}, filepath.Join(f.root, "out"))
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.Empty(t, out.Remote)
	assert.FileExists(t, out.Destination)
}

func TestCompress_MissingFileIs404(t *testing.T) {
	f := newFixture(t)
	a := f.write(t, "one.txt", "1")
	missing := filepath.Join(f.work, "gone.txt")

	out := f.svc.Compress(context.Background(), archive.FormatZip, "b", []string{a, missing}, "")
	assert.Equal(t, oplog.StatusBadPath, out.Status)
	assert.Contains(t, f.logText(t, oplog.Compress), missing)
	assert.NoDirExists(t, filepath.Join(f.root, "desktop", "archives"))
}

func TestDecompress_NotAnArchiveIs500(t *testing.T) {
	f := newFixture(t)
	bogus := f.write(t, "bogus.zip", "not a zip")

	out := f.svc.Decompress(context.Background(), bogus, filepath.Join(f.root, "x"))
	assert.Equal(t, oplog.StatusFailed, out.Status)
	require.ErrorIs(t, out.Err, common.ErrArchiveTool)
	assert.Contains(t, f.logText(t, oplog.Decompress), "[DECOMPRESS: 500]:")
	assert.Equal(t, "[DECOMPRESS: 500]: Failure: operation failed", f.sink.reports[0].line)
}

func TestEncryptDecrypt(t *testing.T) {
	f := newFixture(t)
	file := f.write(t, "secret.txt", "top secret")
	keyPath := filepath.Join(f.keys, "secret.key")
	ctx := context.Background()

	out := f.svc.Encrypt(ctx, file)
	require.NoError(t, out.Err)
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.Equal(t, map[string]string{"secret": keyPath}, out.Pairs)
	assert.Contains(t, f.assertOneEntry(t, oplog.Encryption),
		"Encrypted the following file:\n\t\tsecret\n\tKey saved in the following location:\n\t\t"+keyPath)

	again := f.svc.Encrypt(ctx, file)
	assert.Equal(t, oplog.StatusFailed, again.Status)
	require.ErrorIs(t, again.Err, common.ErrKeyExists)
	assert.FileExists(t, keyPath, "existing key survives a refused encryption")

	out = f.svc.Decrypt(ctx, file)
	require.NoError(t, out.Err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "top secret", string(data))
	assert.NoFileExists(t, keyPath)
	assert.Contains(t, f.assertOneEntry(t, oplog.Decryption), "Key from the following location deleted:\n\t\t"+keyPath)
}

func TestDecrypt_MissingKeyIs500(t *testing.T) {
	f := newFixture(t)
	file := f.write(t, "plain.txt", "hello")

	out := f.svc.Decrypt(context.Background(), file)
	assert.Equal(t, oplog.StatusFailed, out.Status)
	require.ErrorIs(t, out.Err, common.ErrKeyNotFound)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestJournalFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.journal.addErr = errors.New("disk full")
	f.write(t, "a.txt", "a")

	out := f.svc.Search(context.Background(), f.work, "", "txt")
	assert.Equal(t, oplog.StatusOK, out.Status)
	assert.NoError(t, out.Err)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	f.svc.Search(context.Background(), f.work, "", "txt")
	f.svc.Search(context.Background(), f.work, "", "md")

	ops, err := f.svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "op-2", ops[0].Id)

	_, err = NewOperationService(Deps{}).History(context.Background(), 10)
	require.ErrorIs(t, err, ErrHistoryDisabled)
}
