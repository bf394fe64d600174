package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/fsman/internal/cli"
	"github.com/GriffinCanCode/fsman/internal/config"
	"github.com/GriffinCanCode/fsman/internal/filesystem"
	"github.com/GriffinCanCode/fsman/internal/logging"
)

var rootFlags struct {
	logFile      string
	logLevel     string
	consoleLevel string
	noColor      bool
	workdir      string
}

var rootCmd = &cobra.Command{
	Use:   "fsman",
	Short: "Interactive file system maintenance shell",
	Long: `Fsman - an interactive shell for file system maintenance.

Commands cover everyday file chores (copy, move, rename, delete,
extension changes) plus directory work (listing, trees, sizes, bulk
cleanup), metadata inspection (stat, checksums, MIME types), glob
search, and zip/tar archiving.

Run without arguments to start the shell, then type 'help' at the
prompt for the full command list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fsman %s\n  commit: %s\n  built:  %s\n", version, commit, buildDate)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.logFile, "log-file", "", "log file path (empty disables the file sink)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "file sink log level (debug, info, warn, error)")
	f.StringVar(&rootFlags.consoleLevel, "console-level", "", "console log level (debug, info, warn, error)")
	f.BoolVar(&rootFlags.noColor, "no-color", false, "disable colored output")
	f.StringVar(&rootFlags.workdir, "workdir", "", "change to this directory before starting")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if cfg.Workdir != "" {
		if err := os.Chdir(cfg.Workdir); err != nil {
			return fmt.Errorf("change workdir: %w", err)
		}
	}

	logger, err := logging.New(logging.Config{
		ConsoleLevel: cfg.Logging.ConsoleLevel,
		FileLevel:    cfg.Logging.FileLevel,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Unblock the pending stdin read when a signal arrives so the shell can
	// print its cancellation message instead of hanging until the next line.
	go func() {
		<-ctx.Done()
		_ = os.Stdin.SetReadDeadline(time.Now())
	}()

	shell := cli.New(filesystem.NewManager(logger), logger, cli.Options{
		Input:  os.Stdin,
		Output: os.Stdout,
		Color:  !cfg.UI.NoColor,
	})
	return shell.Run(ctx)
}

// applyFlags overlays explicitly set command-line flags onto the
// environment-derived configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("log-file") {
		cfg.Logging.File = rootFlags.logFile
	}
	if f.Changed("log-level") {
		cfg.Logging.FileLevel = rootFlags.logLevel
	}
	if f.Changed("console-level") {
		cfg.Logging.ConsoleLevel = rootFlags.consoleLevel
	}
	if f.Changed("no-color") {
		cfg.UI.NoColor = rootFlags.noColor
	}
	if f.Changed("workdir") {
		cfg.Workdir = rootFlags.workdir
	}
}
