package walker

import (
	"github.com/bethropolis/gitree/internal/utils"
	"github.com/go-git/go-billy/v5"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger       utils.Logger
	MaxDepth     int // Negative means unlimited
	ShowAll      bool
	ExtraIgnores []string
	MaxItems     int // Zero or negative means unlimited
	NoFiles      bool
	Whitelist    *Whitelist
	Filesystem   billy.Filesystem
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:   &utils.NoopLogger{},
		MaxDepth: -1,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		opts.Logger = utils.OrNoop(logger)
	}
}

// WithMaxDepth limits how deep directories are expanded. Directories at
// the limit are still shown. A negative depth means no limit.
func WithMaxDepth(depth int) Option {
	return func(opts *WalkOptions) {
		opts.MaxDepth = depth
	}
}

// WithShowAll includes entries whose name starts with a dot
func WithShowAll(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.ShowAll = enabled
	}
}

// WithExtraIgnores adds glob patterns matched against both the relative path
// and the bare name of every entry
func WithExtraIgnores(patterns []string) Option {
	return func(opts *WalkOptions) {
		cleaned := make([]string, 0, len(patterns))
		for _, p := range patterns {
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		opts.ExtraIgnores = cleaned
	}
}

// WithMaxItems caps the number of entries listed per directory
func WithMaxItems(n int) Option {
	return func(opts *WalkOptions) {
		opts.MaxItems = n
	}
}

// WithNoFiles lists directories only
func WithNoFiles(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.NoFiles = enabled
	}
}

// WithWhitelist restricts the walk to the given files and their ancestors
func WithWhitelist(wl *Whitelist) Option {
	return func(opts *WalkOptions) {
		opts.Whitelist = wl
	}
}

// WithFilesystem lists directories through fs instead of the OS filesystem.
// Paths given to fs are root-relative.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(opts *WalkOptions) {
		opts.Filesystem = fs
	}
}
