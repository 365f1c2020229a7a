package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/go-import-sort/pkg/engine"
	"github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/logging"
	"github.com/siyuan-infoblox/go-import-sort/pkg/source"
	"github.com/siyuan-infoblox/go-import-sort/pkg/style"
	"github.com/siyuan-infoblox/go-import-sort/pkg/utils"
)

type FormatterConfig struct {
	Definition           style.Definition       // style applied to every file
	Unmatched            engine.UnmatchedPolicy // what happens to statements no rule matches
	Quote                byte                   // quote used when rendering; 0 keeps each file's own
	InPlace              bool                   // whether to modify files in place
	Check                bool                   // report files that would change without writing them
	Workers              int                    // files processed concurrently; 0 means GOMAXPROCS
	Extensions           []string               // source file extensions searched in directories
	StylesheetExtensions []string               // module reference extensions that mark stylesheets
	Fs                   afero.Fs               // defaults to the OS filesystem
	Out                  io.Writer              // defaults to stdout
}

// formatter applies a style to the import run of source files
type formatter struct {
	config FormatterConfig
	engine *engine.Engine
}

// fileResult is the outcome of one file in a batch
type fileResult struct {
	path    string
	changed bool
	err     error
}

var (
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// New creates a new formatter for the given style and options
func New(config FormatterConfig) (*formatter, error) {
	e, err := engine.New(config.Definition, engine.Options{Unmatched: config.Unmatched})
	if err != nil {
		return nil, err
	}
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if len(config.Extensions) == 0 {
		config.Extensions = source.DefaultExtensions
	}
	if config.StylesheetExtensions == nil {
		config.StylesheetExtensions = source.DefaultStylesheetExtensions
	}
	return &formatter{config: config, engine: e}, nil
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getCheck() bool {
	return g.config.Check
}

// FormatSource lays out the leading import run of src. path selects the
// grammar; nothing is read from or written to disk.
func (g *formatter) FormatSource(ctx context.Context, path string, src []byte) ([]byte, bool, error) {
	lang, ok := source.LanguageFromPath(path)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, path)
	}

	file, err := source.NewParser(g.config.StylesheetExtensions).Parse(ctx, src, lang)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}
	if len(file.Statements) == 0 {
		logging.Get(ctx).Debug().Str("path", path).Msg("no import statements")
		return src, false, nil
	}

	segments, err := g.engine.Layout(file.Statements)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLayout, err)
	}

	opts := file.RenderOptions()
	if g.config.Quote != 0 {
		opts.Quote = g.config.Quote
	}
	output := source.Splice(src, file, source.Render(segments, opts))
	changed := !bytes.Equal(output, src)

	logging.Get(ctx).Debug().
		Str("path", path).
		Int("statements", len(file.Statements)).
		Int("segments", len(segments)).
		Bool("changed", changed).
		Msg("laid out imports")
	return output, changed, nil
}

// processFileWithOutput processes a source file; emit prints the result to Out
// when the file is neither checked nor rewritten
func (g *formatter) processFileWithOutput(ctx context.Context, path string, emit bool) (bool, error) {
	src, err := afero.ReadFile(g.config.Fs, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	output, changed, err := g.FormatSource(ctx, path, src)
	if err != nil {
		return false, err
	}

	switch {
	case g.getCheck():
		return changed, nil
	case g.getInPlace():
		if !changed {
			return false, nil
		}
		info, err := g.config.Fs.Stat(path)
		if err != nil {
			return false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		if err := afero.WriteFile(g.config.Fs, path, output, info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		logging.Get(ctx).Info().Str("path", path).Msg("rewrote imports")
		return true, nil
	case emit:
		if _, err := g.config.Out.Write(output); err != nil {
			return false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}
	return changed, nil
}

// ProcessFile processes a single source file. Without --in-place or --check the
// formatted file is printed to Out.
func (g *formatter) ProcessFile(ctx context.Context, path string) error {
	changed, err := g.processFileWithOutput(ctx, path, true)
	if err != nil {
		return err
	}
	if g.getCheck() && changed {
		warnColor.Fprintf(g.config.Out, errors.InfoMsgWouldReformat+"\n", path)
		return errors.ErrNeedsFormatting
	}
	return nil
}

// ProcessFiles processes multiple source files concurrently. Every file is an
// independent layout; a failing file does not stop the others.
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	results := make([]fileResult, len(filePaths))

	var group errgroup.Group
	group.SetLimit(g.config.Workers)
	for i, filePath := range filePaths {
		i, filePath := i, filePath
		group.Go(func() error {
			results[i].path = filePath
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].changed, results[i].err = g.processFileWithOutput(ctx, filePath, false)
			return nil
		})
	}
	_ = group.Wait()

	processedCount := 0
	errorCount := 0
	changedCount := 0
	for _, result := range results {
		switch {
		case result.err != nil:
			errorColor.Fprintf(g.config.Out, errors.InfoMsgErrorProcessing+"\n", result.path, result.err)
			logging.Get(ctx).Error().Err(result.err).Str("path", result.path).Msg("failed to process file")
			errorCount++
		case g.getCheck() && result.changed:
			warnColor.Fprintf(g.config.Out, errors.InfoMsgWouldReformat+"\n", result.path)
			changedCount++
			processedCount++
		default:
			processedCount++
			if g.getInPlace() && result.changed {
				fmt.Fprintf(g.config.Out, errors.InfoMsgProcessedFiles+"\n", result.path)
			}
		}
	}

	successColor.Fprintf(g.config.Out, errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		errorColor.Fprintf(g.config.Out, errors.InfoMsgErrorCount, errorCount)
	}
	fmt.Fprintln(g.config.Out)

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedProcess, errorCount)
	}
	if changedCount > 0 {
		return fmt.Errorf("%w: "+errors.ErrMsgFilesNeedFormat, errors.ErrNeedsFormatting, changedCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(g.config.Fs, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return g.ProcessFile(ctx, path)
	}

	// When processing directories, in-place or check mode is expected
	if !g.getInPlace() && !g.getCheck() {
		warnColor.Fprintln(g.config.Out, errors.WarnMsgProcessingDirWithoutInPlace)
		fmt.Fprintf(g.config.Out, errors.InfoMsgUseInPlaceFlag+"\n\n")
	}

	sourceFiles, err := utils.FindSourceFiles(g.config.Fs, path, g.config.Extensions)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindFiles, err)
	}

	if len(sourceFiles) == 0 {
		fmt.Fprintf(g.config.Out, errors.InfoMsgNoSourceFilesFound+"\n", path)
		return nil
	}

	fmt.Fprintf(g.config.Out, errors.InfoMsgFoundSourceFiles+"\n\n", len(sourceFiles), path)
	logging.Get(ctx).Debug().Int("files", len(sourceFiles)).Int("workers", g.config.Workers).Msg("processing directory")

	return g.ProcessFiles(ctx, sourceFiles)
}
