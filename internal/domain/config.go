package domain

import (
	"fmt"
	"strings"
)

// Mode selects what happens to a file after its lines are flipped.
type Mode string

const (
	// ModeInPlace overwrites the file at its original path.
	ModeInPlace Mode = "inplace"
	// ModeRename writes to the flipped file name and removes the original.
	ModeRename Mode = "rename"
)

// ParseMode accepts the config/flag spellings of a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeInPlace, "in-place", "includes":
		return ModeInPlace, nil
	case ModeRename, "files":
		return ModeRename, nil
	default:
		return "", fmt.Errorf("unsupported mode %q (expected inplace|rename)", s)
	}
}

// Config represents the wgflip configuration loaded from .wgflip.yaml.
type Config struct {
	Mode       Mode
	Extensions []string
	Journal    bool
}

// DefaultConfig provides defaults for a missing or partial .wgflip.yaml.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeInPlace,
		Extensions: []string{".h", ".hpp", ".c", ".cpp", ".cc"},
		Journal:    false,
	}
}

// HasExtension reports whether name ends in one of the configured extensions.
func (c Config) HasExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.Extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// WorkspaceSpec describes where `wgflip init` writes its files.
type WorkspaceSpec struct {
	Root string
}
