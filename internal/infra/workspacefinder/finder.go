package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/ports"
)

// ConfigFile is the workspace marker and configuration file name.
const ConfigFile = ".wgflip.yaml"

const opFindRoot = "workspacefinder.findroot"

// Finder walks up from a directory (or a file's directory) to the nearest
// one holding a .wgflip.yaml.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{Op: opFindRoot, Kind: domain.KindInvalidConfig, Err: errors.New("startDir is empty")}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: opFindRoot, Kind: domain.KindExecution, Path: startDir, Err: err}
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for dir = filepath.Clean(dir); ; dir = filepath.Dir(dir) {
		if f.hasConfig(dir) {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", &domain.OpError{Op: opFindRoot, Kind: domain.KindNotFound, Path: startDir, Err: domain.ErrNotFound}
		}
	}
}

func (f *Finder) hasConfig(dir string) bool {
	name := f.ConfigFile
	if name == "" {
		name = ConfigFile
	}
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
