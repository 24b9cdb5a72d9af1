package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/flip"
	"github.com/netdebug/wgflip/internal/ports"
)

type FlipFiles struct {
	docs     ports.DocumentStore
	journal  ports.Journal
	progress io.Writer
	logger   *slog.Logger
	now      func() time.Time
}

type FlipOption func(*FlipFiles)

// WithJournal records applied operations after a successful run.
func WithJournal(j ports.Journal) FlipOption {
	return func(uc *FlipFiles) { uc.journal = j }
}

// WithProgress receives the "Flipping includes: <path>" lines of in-place mode.
func WithProgress(w io.Writer) FlipOption {
	return func(uc *FlipFiles) { uc.progress = w }
}

func WithLogger(l *slog.Logger) FlipOption {
	return func(uc *FlipFiles) {
		if l != nil {
			uc.logger = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) FlipOption {
	return func(uc *FlipFiles) { uc.now = now }
}

func NewFlipFiles(docs ports.DocumentStore, opts ...FlipOption) *FlipFiles {
	uc := &FlipFiles{
		docs:     docs,
		progress: io.Discard,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type FlipRequest struct {
	Paths  []string
	Mode   domain.Mode
	DryRun bool
}

// Execute flips each path in order. Processing stops at the first failure; the
// returned result holds every file handled before it.
func (uc *FlipFiles) Execute(ctx context.Context, req FlipRequest) (domain.RunResult, error) {
	run := domain.RunResult{
		Mode:      req.Mode,
		DryRun:    req.DryRun,
		StartedAt: uc.now(),
		Files:     make([]domain.FileResult, 0, len(req.Paths)),
	}

	for _, path := range req.Paths {
		if err := ctx.Err(); err != nil {
			return uc.finish(run), err
		}

		res, err := uc.flipOne(path, req)
		if err != nil {
			uc.logger.Error("flip.error", "path", path, "mode", string(req.Mode), "err", err.Error())
			// A rename whose removal failed has still written its new file.
			if res.Written {
				run.Files = append(run.Files, res)
			}
			return uc.finish(run), err
		}
		run.Files = append(run.Files, res)
	}

	return uc.finish(run), nil
}

// finish stamps the end time and journals whatever was written, including
// the files handled before a failure.
func (uc *FlipFiles) finish(run domain.RunResult) domain.RunResult {
	run.EndedAt = uc.now()
	if uc.journal != nil {
		if err := uc.journal.Record(run); err != nil {
			uc.logger.Warn("journal.record_failed", "err", err.Error())
		}
	}
	return run
}

func (uc *FlipFiles) flipOne(path string, req FlipRequest) (domain.FileResult, error) {
	if req.Mode == domain.ModeInPlace && !req.DryRun {
		fmt.Fprintf(uc.progress, "Flipping includes: %s\n", path)
	}

	doc, err := uc.docs.Read(path)
	if err != nil {
		return domain.FileResult{}, err
	}

	flipped := flip.Apply(doc.Lines)

	res := domain.FileResult{
		Path:    path,
		NewPath: path,
		Mode:    req.Mode,
		Changes: flipped.Changes,
		Before:  doc.Lines,
		After:   flipped.Lines,
	}
	if req.Mode == domain.ModeRename {
		res.NewPath = flip.FileName(path)
	}

	uc.logger.Debug("flip.file",
		"path", path,
		"new_path", res.NewPath,
		"lines", len(doc.Lines),
		"changed", len(flipped.Changes),
		"dry_run", req.DryRun,
	)

	if req.DryRun {
		return res, nil
	}

	out := domain.Document{Path: res.NewPath, Lines: flipped.Lines, Perm: doc.Perm}
	if err := uc.docs.Write(out); err != nil {
		return res, err
	}
	res.Written = true

	// The original goes only once its replacement is on disk.
	if res.NewPath != path {
		if err := uc.docs.Remove(path); err != nil {
			return res, err
		}
		res.Renamed = true
		uc.logger.Info("flip.rename", "from", path, "to", res.NewPath)
	}

	return res, nil
}
