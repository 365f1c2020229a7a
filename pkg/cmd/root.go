package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/go-import-sort/pkg/config"
	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/formatter"
	"github.com/siyuan-infoblox/go-import-sort/pkg/logging"
	"github.com/siyuan-infoblox/go-import-sort/pkg/version"
)

const (
	UseDescription   = "importsort [flags] PATH"
	ShortDescription = "Import sorter - A tool to group and sort JavaScript and TypeScript imports"
	LongDescription  = `importsort is a command-line tool that groups and sorts the import
statements at the top of JavaScript and TypeScript files.

Statements are classified into ordered buckets by a style: the first rule whose
predicate matches a statement takes it. Buckets are sorted on their own and
separated by blank lines where the style asks for it.

Built-in styles:
  styles-last  side effects, packages, relative paths, stylesheets (default)
  module       side effects, node builtins, packages, relative paths, stylesheets

More styles can be declared under "styles" in .importsort.yaml.

PATH can be either a single source file or a directory. When a directory is
specified, all source files in the directory and subdirectories are processed
recursively; node_modules, vendor and hidden directories are skipped.`
)

// RootOptions holds the command line flags
type RootOptions struct {
	ConfigFile  string
	Style       string
	Unmatched   string
	Workers     int
	InPlace     bool
	Check       bool
	ListStyles  bool
	LogLevel    string
	LogFile     string
	ShowVersion bool

	fs afero.Fs
}

// NewRootCommand creates the importsort command on the OS filesystem
func NewRootCommand() *cobra.Command {
	return newRootCommand(afero.NewOsFs())
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	opts := &RootOptions{fs: fs}

	cmd := &cobra.Command{
		Use:   UseDescription,
		Short: ShortDescription,
		Long:  LongDescription,
		Args: func(cmd *cobra.Command, args []string) error {
			// version and style listing don't need a path
			if opts.ShowVersion || opts.ListStyles {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a config file (default: nearest .importsort.yaml, then $XDG_CONFIG_HOME/importsort/config.yaml)")
	flags.StringVarP(&opts.Style, "style", "s", "", "Name of the style to apply (e.g., styles-last, module)")
	flags.StringVar(&opts.Unmatched, "unmatched", "", "What to do with imports no rule matches: first, last, drop or error")
	flags.IntVar(&opts.Workers, "workers", 0, "Number of files processed concurrently (default: number of CPUs)")
	flags.BoolVar(&opts.InPlace, "in-place", false, "Modify the file in place instead of printing to stdout")
	flags.BoolVar(&opts.Check, "check", false, "Report files whose imports are not sorted and exit non-zero")
	flags.BoolVar(&opts.ListStyles, "list-styles", false, "List the available styles")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: error, warn, info, debug or trace")
	flags.StringVar(&opts.LogFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	flags.BoolVarP(&opts.ShowVersion, "version", "v", false, "Show version information")
	cmd.MarkFlagsMutuallyExclusive("in-place", "check")

	return cmd
}

func run(cmd *cobra.Command, opts *RootOptions, args []string) error {
	// Handle version flag
	if opts.ShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		return nil
	}

	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := loadConfig(cmd, opts, target)
	if err != nil {
		return err
	}

	if opts.ListStyles {
		registry, err := cfg.Registry()
		if err != nil {
			return err
		}
		for _, name := range registry.Names() {
			marker := " "
			if name == cfg.Style {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	}

	ctx, err := newLoggerContext(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	logging.Get(ctx).Debug().
		Str("config", cfg.Path).
		Str("style", cfg.Style).
		Str("unmatched", cfg.Unmatched).
		Msg("resolved configuration")

	def, err := cfg.Definition()
	if err != nil {
		return err
	}
	policy, err := cfg.UnmatchedPolicy()
	if err != nil {
		return err
	}
	quote, err := cfg.QuoteChar()
	if err != nil {
		return err
	}

	g, err := formatter.New(formatter.FormatterConfig{
		Definition:           def,
		Unmatched:            policy,
		Quote:                quote,
		InPlace:              opts.InPlace,
		Check:                opts.Check,
		Workers:              cfg.Workers,
		Extensions:           cfg.Extensions,
		StylesheetExtensions: cfg.StylesheetExtensions,
		Fs:                   opts.fs,
		Out:                  cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	return g.ProcessPath(ctx, target)
}

// loadConfig reads the explicit or discovered config file and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *RootOptions, target string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigFile != "" {
		cfg, err = config.Load(opts.fs, opts.ConfigFile)
	} else {
		cfg, err = config.LoadFor(opts.fs, absPath(target))
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("style") {
		cfg.Style = opts.Style
	}
	if flags.Changed("unmatched") {
		cfg.Unmatched = opts.Unmatched
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgInvalidConfig, err)
	}
	return cfg, nil
}

func newLoggerContext(ctx context.Context, cfg *config.Config) (context.Context, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.New(ctx, logging.Config{File: cfg.Log.File, Level: level}), nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Execute runs the root command
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil && !stderrors.Is(err, errors.ErrNeedsFormatting) {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
