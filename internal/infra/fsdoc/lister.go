package fsdoc

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/ports"
)

// Lister expands path arguments into source files.
type Lister struct{}

func NewLister() *Lister {
	return &Lister{}
}

var _ ports.SourceLister = (*Lister)(nil)

// ListSources keeps file arguments in the given order. A directory argument is
// replaced by the files under it whose extension matches, sorted by path.
// Missing paths are passed through so the read reports them.
func (l *Lister) ListSources(args []string, extensions []string) ([]string, error) {
	cfg := domain.Config{Extensions: extensions}

	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}

		var found []string
		walkErr := filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != arg && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && cfg.HasExtension(d.Name()) {
				found = append(found, p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, &domain.OpError{
				Op:   "fsdoc.list",
				Kind: domain.KindIO,
				Path: arg,
				Err:  walkErr,
			}
		}

		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
