// Package app wires configuration, traversal and output together for one run
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/gitree/internal/archive"
	"github.com/bethropolis/gitree/internal/config"
	"github.com/bethropolis/gitree/internal/logger"
	"github.com/bethropolis/gitree/internal/picker"
	"github.com/bethropolis/gitree/internal/printer"
	"github.com/bethropolis/gitree/internal/selection"
	"github.com/bethropolis/gitree/internal/setup"
	"github.com/bethropolis/gitree/internal/summary"
	"github.com/bethropolis/gitree/internal/walker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	Output  io.Writer
	stderr  io.Writer
	picker  selection.Picker
	copyFn  func(string) error
	closers []io.Closer
}

// Option customizes an App, mainly for tests
type Option func(*App)

// WithOutput replaces stdout as the tree destination
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.Output = w }
}

// WithStderr replaces stderr for logs and the skipped-items report
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// WithPicker replaces the terminal picker used by --interactive
func WithPicker(p selection.Picker) Option {
	return func(a *App) { a.picker = p }
}

// WithClipboard replaces the system clipboard used by --copy
func WithClipboard(fn func(string) error) Option {
	return func(a *App) { a.copyFn = fn }
}

// New creates a new App instance. The output file, if configured, is
// created here and released by Close.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	// Configure color globally
	color.NoColor = !cfg.UseColors && !cfg.LogColors

	a := &App{
		cfg:    cfg,
		Output: os.Stdout,
		stderr: os.Stderr,
		picker: picker.New(tea.WithOutput(os.Stderr)), // stdout belongs to the tree
		copyFn: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		a.Output = file
		a.closers = append(a.closers, file)
	}

	// Set up logger
	a.log = logger.New(a.stderr, cfg.Verbose, cfg.LogColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		a.log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		a.log.WithLevel(logger.LevelWarn)
	}

	return a, nil
}

// Close releases the output file, if one was opened
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Run executes one traversal and renders, archives or copies the result
func (a *App) Run() error {
	startTime := time.Now()

	// Helper for info messages, suppressed by quiet flag
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	// --- Directory validation ---
	absRootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		return fmt.Errorf("invalid root directory path '%s': %w", a.cfg.RootDir, err)
	}
	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s': %w", absRootDir, walker.ErrRootNotFound)
		}
		return fmt.Errorf("could not access root directory '%s': %w", absRootDir, err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("'%s': %w", absRootDir, walker.ErrNotDirectory)
	}

	if a.log.VerboseMode {
		a.log.Debug("Verbose mode enabled")
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Directory: %s", absRootDir)
		a.log.Debug("Depth: display=%d gitignore=%d", a.cfg.MaxDepth, a.cfg.GitignoreDepth)
		if a.cfg.ConfigFile != "" {
			a.log.Debug("Config file: %s", a.cfg.ConfigFile)
		}
	}

	wcfg := setup.WalkerConfig{
		RootDir:        absRootDir,
		MaxDepth:       a.cfg.MaxDepth,
		ShowAll:        a.cfg.ShowAll,
		ExtraIgnores:   a.cfg.ExtraIgnores,
		NoGitignore:    a.cfg.NoGitignore,
		GitignoreDepth: a.cfg.GitignoreDepth,
		MaxItems:       a.cfg.MaxItems,
		NoFiles:        a.cfg.NoFiles,
		SkipGit:        a.cfg.SkipGit,
		Include:        a.cfg.Include,
		Exclude:        a.cfg.Exclude,
		Logger:         a.log,
	}
	matcher, walkOptions, err := setup.ConfigureWalker(wcfg, infoLog)
	if err != nil {
		return err
	}

	// --- Interactive selection ---
	if a.cfg.Interactive {
		// The picker owns the terminal until it returns
		a.log.Buffer()
		wl, err := selection.Select(absRootDir, matcher, setup.SelectionOptions(wcfg), a.picker)
		a.log.Flush()
		if err != nil {
			return err
		}
		if wl.Len() == 0 {
			infoLog("No files selected.")
			return nil
		}
		infoLog("%d file(s) selected.", wl.Len())
		walkOptions = append(walkOptions, walker.WithWhitelist(wl))
	}

	// --- Walk ---
	tree, skippedItems, err := walker.Walk(absRootDir, matcher, walkOptions...)
	if err != nil {
		return fmt.Errorf("critical error during directory walk: %w", err)
	}

	if a.cfg.ZipStem != "" {
		if err := a.writeZip(absRootDir, tree, infoLog); err != nil {
			return err
		}
	} else if err := a.printTree(tree); err != nil {
		return err
	}

	if a.cfg.Copy {
		if err := a.copyFn(printer.Render(tree)); err != nil {
			a.log.Warn("Could not copy tree to clipboard: %v", err)
		} else {
			infoLog("Tree copied to clipboard.")
		}
	}

	// --- Show results summary ---
	dirs, files := tree.Counts()
	summary.DisplayResults(a.log, dirs, files, time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.stderr, a.cfg.Quiet)
	}
	return nil
}

func (a *App) printTree(tree *walker.Node) error {
	p := printer.New().WithOutput(a.Output).WithColors(a.cfg.UseColors)

	if a.cfg.JSONOutput {
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true)
		// Disable colors in JSON mode regardless of other settings
		p.WithColors(false)
	} else if a.cfg.MarkdownOutput {
		a.log.Debug("Markdown output mode enabled")
		p.WithMarkdown(true)
		p.WithColors(false)
	}

	if err := p.PrintTree(tree); err != nil {
		return fmt.Errorf("failed to print tree: %w", err)
	}
	return nil
}

func (a *App) writeZip(root string, tree *walker.Node, infoLog setup.InfoLogger) error {
	files := tree.Files()
	if !a.cfg.Interactive {
		filter := selection.NewFilter(root, a.cfg.Include, a.cfg.Exclude)
		kept := files[:0]
		for _, f := range files {
			if filter.Keep(f.RelPath) {
				kept = append(kept, f)
			}
		}
		files = kept
	}
	if len(files) == 0 {
		infoLog("No files to archive.")
		return nil
	}

	path, err := archive.CreateZip(a.cfg.ZipStem, files)
	if err != nil {
		return err
	}
	infoLog("Wrote %d file(s) to %s", len(files), path)
	return nil
}
