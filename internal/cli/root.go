package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/netdebug/wgflip/internal/buildinfo"
	"github.com/netdebug/wgflip/internal/domain"
)

const usageText = "usage: flip_includes file1 [file2 [...]]\n\n"

// Execute runs the wgflip command with both modes and its subcommands.
func Execute() {
	execute(newRootCmd())
}

// ExecuteMode runs a single-purpose command bound to one mode, as used by the
// flip_includes and flip_files binaries.
func ExecuteMode(name string, mode domain.Mode) {
	execute(newModeCmd(name, mode))
}

func execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		reportError(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", userMessage(err))
}

func newRootCmd() *cobra.Command {
	var opts flipOptions
	var rename bool

	cmd := &cobra.Command{
		Use:           "wgflip [flags] [--] [path...]",
		Example:       "  wgflip src/wg_base.h\n  wgflip --rename include/\n  wgflip -- files init   # paths named like a subcommand",
		Short:         "Toggle wg_/wg3_ includes, header guards and file names",
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode domain.Mode
			if rename {
				mode = domain.ModeRename
			}
			return runFlip(cmd, args, mode, opts, defaultAdapters())
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .wgflip/logs/wgflip.log")
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().BoolVarP(&rename, "rename", "r", false, "Also flip wg_/wg3_ in file names (default mode comes from .wgflip.yaml)")
	opts.bind(cmd)

	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	cmd.AddCommand(
		modeSubcommand("includes", "Flip includes and header guards in place", domain.ModeInPlace, &opts),
		modeSubcommand("files", "Flip includes and header guards, and rename the files", domain.ModeRename, &opts),
		initCmd(&opts),
		versionCmd(),
	)
	return cmd
}

func modeSubcommand(use, short string, mode domain.Mode, parent *flipOptions) *cobra.Command {
	var opts flipOptions

	c := &cobra.Command{
		Use:   use + " [path...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.debug = parent.debug
			opts.workspace = parent.workspace
			return runFlip(cmd, args, mode, opts, defaultAdapters())
		},
	}
	opts.bind(c)
	return c
}

func newModeCmd(name string, mode domain.Mode) *cobra.Command {
	var opts flipOptions

	cmd := &cobra.Command{
		Use:           name + " file1 [file2 [...]]",
		Short:         "Flip wg_/wg3_ includes and header guards",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlip(cmd, args, mode, opts, defaultAdapters())
		},
	}
	if mode == domain.ModeRename {
		cmd.Short = "Flip wg_/wg3_ includes and header guards, and rename the files"
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .wgflip/logs/wgflip.log")
	cmd.Flags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	opts.bind(cmd)
	cmd.SetVersionTemplate(buildinfo.String() + "\n")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
