package usecase

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/netdebug/wgflip/internal/domain"
)

type memStore struct {
	files     map[string][]string
	writeErr  map[string]error
	removeErr map[string]error
	ops       []string
}

func newMemStore(files map[string][]string) *memStore {
	return &memStore{files: files, writeErr: map[string]error{}, removeErr: map[string]error{}}
}

func (m *memStore) Read(path string) (domain.Document, error) {
	m.ops = append(m.ops, "read "+path)
	lines, ok := m.files[path]
	if !ok {
		return domain.Document{}, &domain.OpError{Op: "mem.read", Kind: domain.KindNotFound, Path: path, Err: fs.ErrNotExist}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return domain.Document{Path: path, Lines: cp, Perm: 0o644}, nil
}

func (m *memStore) Write(doc domain.Document) error {
	m.ops = append(m.ops, "write "+doc.Path)
	if err := m.writeErr[doc.Path]; err != nil {
		return err
	}
	m.files[doc.Path] = doc.Lines
	return nil
}

func (m *memStore) Remove(path string) error {
	m.ops = append(m.ops, "remove "+path)
	if err := m.removeErr[path]; err != nil {
		return err
	}
	if _, ok := m.files[path]; !ok {
		return errors.New("no such file")
	}
	delete(m.files, path)
	return nil
}

func (m *memStore) paths() []string {
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

type fakeJournal struct {
	runs []domain.RunResult
	err  error
}

func (j *fakeJournal) Record(run domain.RunResult) error {
	j.runs = append(j.runs, run)
	return j.err
}
