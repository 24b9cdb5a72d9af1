package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Dir is the per-workspace directory holding logs and the journal.
const Dir = ".wgflip"

const fileName = "wgflip.log"

type Config struct {
	Root  string
	Debug bool
}

// sink is the open log file behind the global logger.
type sink struct {
	file *os.File
	path string
}

var (
	mu     sync.RWMutex
	global = discard()
	active *sink
)

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Setup routes the global logger to <root>/.wgflip/logs/wgflip.log. On error
// the logger stays on discard and no cleanup is returned.
func Setup(cfg Config) (func() error, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	path := filepath.Join(filepath.Clean(root), Dir, "logs", fileName)

	f, err := openLog(path)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: utcTime}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	l := slog.New(slog.NewJSONHandler(f, opts))

	mu.Lock()
	global = l
	active = &sink{file: f, path: path}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return closeActive, nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func closeActive() error {
	mu.Lock()
	defer mu.Unlock()

	var err error
	if active != nil {
		err = active.file.Close()
	}
	active = nil
	global = discard()
	return err
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	active = nil
	global = discard()
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path returns the active log file, or an error when logging is discarded.
func Path() (string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return "", errors.New("logger not initialized")
	}
	return active.path, nil
}
