// Package config defines gitree's flags and layers them with environment
// variables and an optional config file
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GITREE_MAX_DEPTH
const EnvPrefix = "GITREE"

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Traversal settings
	MaxDepth       int
	ShowAll        bool
	ExtraIgnores   []string
	NoGitignore    bool
	GitignoreDepth int
	MaxItems       int
	NoFiles        bool
	SkipGit        bool

	// Selection settings
	Include     []string
	Exclude     []string
	Interactive bool

	// Output settings
	ZipStem        string
	Copy           bool
	JSONOutput     bool
	MarkdownOutput bool
	OutputFile     string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool // Tree output colors, stdout only
	LogColors   bool // Log prefix colors, stderr
	ShowSkipped bool

	ConfigFile string
}

// BindFlags registers every gitree flag on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.Int("max-depth", -1, "Maximum display depth (-1 = unlimited)")
	fs.BoolP("all", "a", false, "Include hidden files and directories")
	fs.StringSlice("ignore", nil, "Extra ignore globs (repeatable)")
	fs.Bool("no-gitignore", false, "Do not read .gitignore files")
	fs.Int("gitignore-depth", -1, "How deep to look for .gitignore files (-1 = unlimited)")
	fs.Int("max-items", 0, "Maximum entries listed per directory (0 = unlimited)")
	fs.Bool("no-files", false, "List directories only")
	fs.Bool("skip-git", false, "Always hide .git directories, even with --all")

	fs.StringSlice("include", nil, "Only offer or archive files matching these globs")
	fs.StringSlice("exclude", nil, "Never offer or archive files matching these globs")
	fs.BoolP("interactive", "i", false, "Pick files interactively before printing")

	fs.StringP("zip", "z", "", "Write the selected files to STEM.zip instead of printing")
	fs.BoolP("copy", "c", false, "Copy the rendered tree to the clipboard")
	fs.Bool("json", false, "Output the tree as JSON")
	fs.Bool("markdown", false, "Output the tree inside a Markdown code block")
	fs.StringP("output", "o", "", "Write the tree to a file instead of stdout")

	fs.BoolP("verbose", "v", false, "Enable verbose logging")
	fs.BoolP("quiet", "q", false, "Suppress INFO messages")
	fs.String("log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	fs.Bool("no-color", false, "Disable color output")
	fs.Bool("show-skipped", false, "Show a list of skipped entries and reasons at the end")
	fs.String("config", "", "Path to a YAML config file")
}

// Load merges defaults, the config file, GITREE_* environment variables and
// explicitly set flags, in increasing priority. args are the positional
// arguments; the first one, if any, is the root directory.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: error reading config file '%s': %w", path, err)
		}
	}

	c := &Config{
		RootDir:        ".",
		MaxDepth:       v.GetInt("max-depth"),
		ShowAll:        v.GetBool("all"),
		ExtraIgnores:   v.GetStringSlice("ignore"),
		NoGitignore:    v.GetBool("no-gitignore"),
		GitignoreDepth: v.GetInt("gitignore-depth"),
		MaxItems:       v.GetInt("max-items"),
		NoFiles:        v.GetBool("no-files"),
		SkipGit:        v.GetBool("skip-git"),
		Include:        v.GetStringSlice("include"),
		Exclude:        v.GetStringSlice("exclude"),
		Interactive:    v.GetBool("interactive"),
		ZipStem:        v.GetString("zip"),
		Copy:           v.GetBool("copy"),
		JSONOutput:     v.GetBool("json"),
		MarkdownOutput: v.GetBool("markdown"),
		OutputFile:     v.GetString("output"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		LogLevel:       v.GetString("log-level"),
		NoColor:        v.GetBool("no-color"),
		ShowSkipped:    v.GetBool("show-skipped"),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if len(args) > 0 && args[0] != "" {
		c.RootDir = args[0]
	}

	if c.JSONOutput && c.MarkdownOutput {
		return nil, fmt.Errorf("config: --json and --markdown are mutually exclusive")
	}

	// Determine if colors should be used
	c.UseColors = !c.NoColor && c.OutputFile == "" && isTerminal(os.Stdout)
	c.LogColors = !c.NoColor && isTerminal(os.Stderr)

	return c, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
