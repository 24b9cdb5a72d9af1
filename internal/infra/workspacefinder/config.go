package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/netdebug/wgflip/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads .wgflip.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.WGFlip.Mode != "" {
		mode, err := domain.ParseMode(y.WGFlip.Mode)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Mode = mode
	}
	if len(y.WGFlip.Extensions) > 0 {
		cfg.Extensions = y.WGFlip.Extensions
	}
	if y.WGFlip.Journal != nil {
		cfg.Journal = *y.WGFlip.Journal
	}

	return cfg, nil
}

type yamlConfig struct {
	WGFlip struct {
		Mode       string   `yaml:"mode"`
		Extensions []string `yaml:"extensions"`
		Journal    *bool    `yaml:"journal"`
	} `yaml:"wgflip"`
}
