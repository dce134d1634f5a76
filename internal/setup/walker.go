// Package setup provides initialization and configuration functions
package setup

import (
	"fmt"
	"strings"

	"github.com/bethropolis/gitree/internal/ignore"
	"github.com/bethropolis/gitree/internal/selection"
	"github.com/bethropolis/gitree/internal/utils"
	"github.com/bethropolis/gitree/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir        string
	MaxDepth       int
	ShowAll        bool
	ExtraIgnores   []string
	NoGitignore    bool
	GitignoreDepth int
	MaxItems       int
	NoFiles        bool
	SkipGit        bool
	Include        []string
	Exclude        []string
	Logger         utils.Logger
}

// ConfigureWalker sets up an ignore matcher and walker options based on the config
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (
	*ignore.IgnoreMatcher,
	[]walker.Option,
	error,
) {
	logger := utils.OrNoop(cfg.Logger)

	extra := cleanPatterns(cfg.ExtraIgnores)
	if len(extra) > 0 {
		infoLog("Using extra ignore patterns: %v", extra)
	}

	// Print effective settings
	if cfg.ShowAll {
		infoLog("Including hidden files/directories.")
	} else {
		logger.Debug("Ignoring hidden files/directories (starting with '.').")
	}
	if cfg.NoGitignore {
		infoLog("Not reading .gitignore files.")
	}

	// --- Initialize ignore matcher ---
	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:   cfg.RootDir,
		Depth:     cfg.GitignoreDepth,
		IgnoreGit: cfg.SkipGit,
		Logger:    logger,
		Disabled:  cfg.NoGitignore,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	// --- Set up walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(logger),
		walker.WithMaxDepth(cfg.MaxDepth),
		walker.WithShowAll(cfg.ShowAll),
		walker.WithExtraIgnores(extra),
		walker.WithMaxItems(cfg.MaxItems),
		walker.WithNoFiles(cfg.NoFiles),
	}
	if cfg.MaxItems > 0 {
		infoLog("Listing at most %d entries per directory.", cfg.MaxItems)
	}

	return matcher, walkOptions, nil
}

// SelectionOptions derives the candidate-collection options for the same
// configuration
func SelectionOptions(cfg WalkerConfig) selection.Options {
	return selection.Options{
		ShowAll:      cfg.ShowAll,
		ExtraIgnores: cleanPatterns(cfg.ExtraIgnores),
		Include:      cleanPatterns(cfg.Include),
		Exclude:      cleanPatterns(cfg.Exclude),
		Logger:       cfg.Logger,
	}
}

func cleanPatterns(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
