package report

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"assetmirror/internal/changeflag"
	"assetmirror/internal/services"
)

// Report names.
const (
	FileTransferName = "FileTransferReport"
	AssetCountName   = "AssetCountReport"
	ChangeLogName    = "AssetCategoryChangeLog"
	RequestListName  = "Result"
)

// Section is a counted block of lines. An empty Title renders the lines only.
type Section struct {
	Title string
	Lines []string
}

// Writer creates timestamped report files in one directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter builds a writer for dir. A nil now uses the local clock.
func NewWriter(dir string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, now: now}
}

// PathFor returns the file name a report called name would get now.
func (w *Writer) PathFor(name string) string {
	return filepath.Join(w.dir, name+"_"+w.now().Format(changeflag.ArchiveLayout)+".txt")
}

// maxCollisions bounds the numeric suffixes tried for one timestamp.
const maxCollisions = 100

// Write renders sections into a new report file and returns its path. A
// report already written under the same name and second gets a numeric
// suffix: Name_YYYYMMDD-HHMMSS_2.txt.
func (w *Writer) Write(name string, sections ...Section) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrFilesystem, "report", "create report dir", w.dir, err)
	}
	f, path, err := w.create(name)
	if err != nil {
		return "", services.Wrap(services.ErrFilesystem, "report", "create report", path, err)
	}
	buf := bufio.NewWriter(f)
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(buf)
		}
		if s.Title != "" {
			fmt.Fprintf(buf, "%s(%d):\n\n", s.Title, len(s.Lines))
		}
		for _, line := range s.Lines {
			fmt.Fprintln(buf, line)
		}
	}
	if err := buf.Flush(); err != nil {
		_ = f.Close()
		return "", services.Wrap(services.ErrFilesystem, "report", "write report", path, err)
	}
	if err := f.Close(); err != nil {
		return "", services.Wrap(services.ErrFilesystem, "report", "close report", path, err)
	}
	return path, nil
}

func (w *Writer) create(name string) (*os.File, string, error) {
	base := w.PathFor(name)
	stem := base[:len(base)-len(filepath.Ext(base))]
	path := base
	for n := 2; ; n++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil || !errors.Is(err, fs.ErrExist) || n > maxCollisions {
			return f, path, err
		}
		path = fmt.Sprintf("%s_%d.txt", stem, n)
	}
}
