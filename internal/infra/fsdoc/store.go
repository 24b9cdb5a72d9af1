package fsdoc

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/ports"
)

const defaultPerm fs.FileMode = 0o644

// Store reads and writes source files on the local filesystem.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

var _ ports.DocumentStore = (*Store)(nil)

// Read loads path as a list of lines, each keeping its "\n" terminator.
func (s *Store) Read(path string) (domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Document{}, readError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.Document{}, readError(path, err)
	}
	if info.IsDir() {
		return domain.Document{}, &domain.OpError{
			Op:   "fsdoc.read",
			Kind: domain.KindIO,
			Path: path,
			Err:  errors.New("is a directory"),
		}
	}

	lines, err := readLines(f)
	if err != nil {
		return domain.Document{}, readError(path, err)
	}

	return domain.Document{Path: path, Lines: lines, Perm: info.Mode().Perm()}, nil
}

func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func readError(path string, err error) error {
	kind := domain.KindIO
	if errors.Is(err, fs.ErrNotExist) {
		kind = domain.KindNotFound
	}
	return &domain.OpError{Op: "fsdoc.read", Kind: kind, Path: path, Err: err}
}

// Write replaces doc.Path with the document content. The content goes to a
// temporary sibling first and is renamed into place. An existing symlink is
// written through: its target is replaced and the link stays.
func (s *Store) Write(doc domain.Document) error {
	perm := doc.Perm
	if perm == 0 {
		perm = defaultPerm
	}

	target := writeTarget(doc.Path)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, doc.Bytes(), perm); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "fsdoc.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	// WriteFile honours umask; restore the original bits.
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "fsdoc.chmod",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "fsdoc.rename",
			Kind: domain.KindIO,
			Path: doc.Path,
			Err:  err,
		}
	}
	return nil
}

// writeTarget resolves path through symlinks when it already exists.
func writeTarget(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return &domain.OpError{
			Op:   "fsdoc.remove",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
