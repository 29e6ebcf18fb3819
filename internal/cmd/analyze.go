package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pthm/ccqe/internal/analyzer"
	"github.com/pthm/ccqe/internal/config"
	"github.com/pthm/ccqe/internal/profile"
	"github.com/pthm/ccqe/internal/reporter"
	"github.com/pthm/ccqe/internal/ui"
)

// ErrLowQuality is returned by analyze --fail-on-low when a Low finding is reported
var ErrLowQuality = errors.New("low quality comments found")

var pathFlag string

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path]",
	Aliases: []string{"lint"},
	Short:   "Score the comments of Python files",
	Long: `Analyze every Python file under a path and score its comments.

Examples:
  ccqe analyze .
  ccqe analyze --only low src/
  ccqe analyze --format json . > report.json
  ccqe analyze --fail-on-low --exclude 'migrations/*' .`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	flags := analyzeCmd.Flags()
	flags.StringVar(&pathFlag, "path", "", "File or directory to analyze (same as the positional argument)")
	flags.Bool("fail-on-low", false, "Exit with an error when any comment is rated Low")
	flags.Int("workers", 0, "Number of files analyzed in parallel (default: number of CPUs)")
	flags.StringSlice("exclude", nil, "Glob patterns of files or directories to skip")
	flags.StringSlice("only", nil, "Only report these labels (high, medium, low)")
	flags.String("profile", "", "Language profile name or YAML file")
	flags.Duration("file-timeout", 0, "Limit on the syntax tree parse of each file (0 = none)")

	_ = viper.BindPFlag(config.KeyFailOnLow, flags.Lookup("fail-on-low"))
	_ = viper.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))
	_ = viper.BindPFlag(config.KeyExclude, flags.Lookup("exclude"))
	_ = viper.BindPFlag(config.KeyOnly, flags.Lookup("only"))
	_ = viper.BindPFlag(config.KeyProfile, flags.Lookup("profile"))
	_ = viper.BindPFlag(config.KeyFileTimeout, flags.Lookup("file-timeout"))

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := "."
	switch {
	case len(args) > 0 && pathFlag != "" && args[0] != pathFlag:
		return fmt.Errorf("conflicting paths %q and %q", args[0], pathFlag)
	case len(args) > 0:
		path = args[0]
	case pathFlag != "":
		path = pathFlag
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	labels, err := cfg.Labels()
	if err != nil {
		return err
	}
	prof, err := profile.Resolve(cfg.Profile)
	if err != nil {
		return err
	}

	u := ui.New(os.Stdout, os.Stderr, cfg.Format)

	// Start progress tracking if in interactive mode
	progress := u.StartProgress()
	defer func() {
		progress.Done(nil)
	}()

	// Stage 1: collect files
	progress.SetStage(ui.StageDiscover)
	progress.SetOperation(absPath)

	paths, err := analyzer.Discover(absPath, prof, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s with profile %s (%s files)\n", absPath, prof.Name, humanize.Comma(int64(len(paths))))
	}

	// Stage 2: score comments
	progress.SetStage(ui.StageAnalyze)
	progress.SetFileCount(len(paths))

	a := analyzer.New(analyzer.Options{
		Workers:     cfg.Workers,
		FileTimeout: cfg.FileTimeout,
		OnFileDone: func(res analyzer.FileResult) {
			progress.FileDone(filepath.Base(res.Path))
		},
	})

	results, err := a.AnalyzeFiles(cmd.Context(), paths)

	// Stop progress before reporting
	progress.Done(err)
	progress = nil // Prevent double-done in defer

	if err != nil {
		return err
	}

	// Stage 3: report
	shown := reporter.Filter(results, labels)
	rep, err := reporter.New(cfg.Format, os.Stdout, u)
	if err != nil {
		return err
	}
	if err := rep.Report(shown); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.FailOnLow && reporter.HasLow(shown) {
		return ErrLowQuality
	}
	return nil
}
