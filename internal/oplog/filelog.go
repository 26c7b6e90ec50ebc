package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

const lineTimeLayout = "02/01/2006 15:04:05"

// FileLog appends messages to {Root}/{year}/{Month}/{category}/{day}_ublog.txt.
type FileLog struct {
	Root string
	Now  func() time.Time

	mu sync.Mutex
}

func NewFileLog(root string) *FileLog {
	return &FileLog{Root: root, Now: time.Now}
}

func (l *FileLog) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// Path is the file today's messages for c go to.
func (l *FileLog) Path(c Category) string {
	return l.pathAt(c, l.now())
}

func (l *FileLog) pathAt(c Category, t time.Time) string {
	return filepath.Join(l.Root,
		strconv.Itoa(t.Year()),
		t.Month().String(),
		string(c),
		strconv.Itoa(t.Day())+"_ublog.txt")
}

// Append writes one "dd/mm/yyyy HH:MM:SS INFO: message" record. Multi-line
// messages are written as-is after the prefix.
func (l *FileLog) Append(c Category, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now()
	path := l.pathAt(c, t)
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("%w: open log %s: %v", common.ErrIOFailure, path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s INFO: %s\n", t.Format(lineTimeLayout), message); err != nil {
		return fmt.Errorf("%w: write log %s: %v", common.ErrIOFailure, path, err)
	}
	return nil
}
