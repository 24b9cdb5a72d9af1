package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/netdebug/wgflip/internal/domain"
	"github.com/netdebug/wgflip/internal/infra/logger"
	"github.com/netdebug/wgflip/internal/infra/runstore"
	"github.com/netdebug/wgflip/internal/usecase"
)

type flipOptions struct {
	workspace string
	debug     bool
	dryRun    bool
	verbose   bool
	format    string
}

func (o *flipOptions) bind(c *cobra.Command) {
	c.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "Print a unified diff of the changes without writing")
	c.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Print a summary line per file")
	c.Flags().StringVar(&o.format, "format", "pretty", "Output format: pretty|json")
}

// runFlip processes args. An empty mode means "use the workspace default".
func runFlip(cmd *cobra.Command, args []string, mode domain.Mode, opts flipOptions, a adapters) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprint(out, usageText)
		return nil
	}
	if opts.format != "pretty" && opts.format != "json" && opts.format != "" {
		return fmt.Errorf("unsupported format %q (expected pretty|json)", opts.format)
	}

	ws, err := loadWorkspace(opts.workspace, a.locator)
	if err != nil {
		return err
	}
	if mode == "" {
		mode = ws.cfg.Mode
	}

	cleanup := setupLogging(ws.root, opts.debug)
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}
	log := logger.L()

	paths, err := a.lister.ListSources(args, ws.cfg.Extensions)
	if err != nil {
		return err
	}
	log.Debug("flip.start", "mode", string(mode), "files", len(paths), "dry_run", opts.dryRun, "workspace", ws.root)

	// JSON output owns stdout; progress goes to stderr there.
	progress := out
	if opts.format == "json" {
		progress = cmd.ErrOrStderr()
	}

	ucOpts := []usecase.FlipOption{
		usecase.WithProgress(progress),
		usecase.WithLogger(log),
	}
	if ws.root != "" && ws.cfg.Journal {
		ucOpts = append(ucOpts, usecase.WithJournal(runstore.NewJSONLJournal(ws.root)))
	}

	uc := usecase.NewFlipFiles(a.store, ucOpts...)
	run, runErr := uc.Execute(cmd.Context(), usecase.FlipRequest{
		Paths:  paths,
		Mode:   mode,
		DryRun: opts.dryRun,
	})

	if runErr != nil {
		log.Error("flip.failed", "path", domain.PathOf(runErr), "err", runErr.Error())
	}
	if err := printRun(out, run, opts); err != nil {
		return err
	}
	return runErr
}

// setupLogging logs under the workspace root, or under the working directory
// with --debug. Otherwise the logger stays on its discard default.
func setupLogging(root string, debug bool) func() error {
	if root == "" {
		if !debug {
			return nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		root = wd
	}

	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err != nil {
		return nil
	}
	return cleanup
}

func printRun(w io.Writer, run domain.RunResult, opts flipOptions) error {
	switch opts.format {
	case "json":
		return printJSONRun(w, run)
	case "pretty", "":
		if run.DryRun {
			return printDryRun(w, run)
		}
		if opts.verbose {
			printSummary(w, run)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", opts.format)
	}
}
