package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/infra/workspacefinder"
	"github.com/netdebug/wgflip/internal/ports"
)

type workspaceCtx struct {
	// root is empty when no .wgflip.yaml was found.
	root string
	cfg  domain.Config
}

// loadWorkspace resolves the workspace config. A missing workspace is not an
// error: the defaults apply and root stays empty.
func loadWorkspace(workspaceFlag string, loc ports.WorkspaceLocator) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag, loc)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return &workspaceCtx{cfg: domain.DefaultConfig()}, nil
		}
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{root: root, cfg: cfg}, nil
}

func resolveWorkspaceRoot(workspaceFlag string, loc ports.WorkspaceLocator) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return loc.FindRoot(wd)
}
