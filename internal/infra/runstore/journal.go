package runstore

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/ports"
)

const journalFile = "journal.jsonl"

// JSONLJournal appends one JSON line per applied file operation to
// <root>/.wgflip/journal.jsonl.
type JSONLJournal struct {
	rootDir string
	dirName string
	now     func() time.Time
}

type Option func(*JSONLJournal)

// WithDir overrides the workspace-relative directory holding the journal.
func WithDir(dir string) Option {
	return func(j *JSONLJournal) { j.dirName = dir }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(j *JSONLJournal) { j.now = now }
}

func NewJSONLJournal(root string, opts ...Option) *JSONLJournal {
	j := &JSONLJournal{
		rootDir: root,
		dirName: ".wgflip",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

var _ ports.Journal = (*JSONLJournal)(nil)

// entry paths are relative to the workspace root, or absolute when the file
// lies outside it.
type entry struct {
	At      time.Time      `json:"at"`
	Mode    domain.Mode    `json:"mode"`
	Path    string         `json:"path"`
	NewPath string         `json:"new_path,omitempty"`
	Lines   int            `json:"lines_changed"`
	Rules   map[string]int `json:"rules,omitempty"`
}

// Record appends the written files of run. Dry runs and untouched files are skipped.
func (j *JSONLJournal) Record(run domain.RunResult) error {
	if run.DryRun {
		return nil
	}

	var buf []byte
	ts := j.now().UTC()
	for _, f := range run.Files {
		if !f.Written {
			continue
		}
		e := entry{
			At:    ts,
			Mode:  f.Mode,
			Path:  j.relPath(f.Path),
			Lines: len(f.Changes),
			Rules: f.RuleCounts(),
		}
		if f.Renamed {
			e.NewPath = j.relPath(f.NewPath)
		}
		line, err := json.Marshal(e)
		if err != nil {
			return &domain.OpError{
				Op:   "runstore.marshal",
				Kind: domain.KindExecution,
				Path: f.Path,
				Err:  err,
			}
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	if len(buf) == 0 {
		return nil
	}

	dir := filepath.Join(j.rootDir, j.dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	path := filepath.Join(dir, journalFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return &domain.OpError{
			Op:   "runstore.open",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func (j *JSONLJournal) relPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	root, err := filepath.Abs(j.rootDir)
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.ToSlash(rel)
}
