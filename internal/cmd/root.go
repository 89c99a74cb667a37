package cmd

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/harrison/utf8check/internal/config"
	"github.com/harrison/utf8check/internal/display"
	"github.com/harrison/utf8check/internal/filelock"
	"github.com/harrison/utf8check/internal/logger"
	"github.com/harrison/utf8check/internal/scanner"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ErrInvalidFiles is returned when the scan found at least one file that is
// not valid UTF-8. The report has already been printed when it is returned.
var ErrInvalidFiles = errors.New("found files with invalid UTF-8 encoding")

// NewRootCommand creates and returns the root cobra command for utf8check
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utf8check [directory]",
		Short: "Report files that are not valid UTF-8 text",
		Long: `utf8check walks a directory tree and tries to decode every file as UTF-8.
Files that fail to decode, or cannot be read at all, are listed with the
reason. Directories named node_modules or .git are never entered.

Without an argument the directory holding the utf8check binary is scanned.

Exit code: 0 if every file is valid UTF-8, 1 otherwise`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runScan,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors itself
		SilenceErrors: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: <directory>/"+config.FileName+")")
	cmd.Flags().String("log-level", "", "Log verbosity on stderr: trace, debug, info, warn, error")
	cmd.Flags().String("color", "", "Color the report: auto, always, never")
	cmd.Flags().String("report", "", "Also write the plain-text report to this file")

	return cmd
}

// runScan implements the scan: resolve root, load config, walk, report
func runScan(cmd *cobra.Command, args []string) error {
	var rootArg string
	if len(args) == 1 {
		rootArg = args[0]
	}
	root, err := config.ResolveRoot(rootArg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	fmt.Fprint(out, display.ScanHeader(root))

	result, err := scanner.New(osfs.New(root), root, log).Scan()
	if err != nil {
		return err
	}
	log.LogScanSummary(result)

	report := display.NewReport(root, result)
	report.Display(out, display.ColorEnabled(cfg.Color, out))

	if cfg.ReportFile != "" {
		if err := filelock.WriteReport(cfg.ReportFile, []byte(report.Text())); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.LogDebug(fmt.Sprintf("Report written to %s", cfg.ReportFile))
	}

	if !result.Valid() {
		return ErrInvalidFiles
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var logLevelPtr, colorPtr, reportPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetString("color")
		colorPtr = &v
	}
	if cmd.Flags().Changed("report") {
		v, _ := cmd.Flags().GetString("report")
		reportPtr = &v
	}

	cfg.MergeWithFlags(logLevelPtr, colorPtr, reportPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
