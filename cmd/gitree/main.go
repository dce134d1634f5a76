package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/gitree/internal/app"
	"github.com/bethropolis/gitree/internal/config"
	"github.com/spf13/cobra"
)

// Set during build time using -ldflags
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitree [path]",
		Short: "Print a directory tree that respects .gitignore files",
		Long: `gitree prints the directory tree rooted at path (default ".") while
honoring nested .gitignore files, hidden-file policy and depth limits.

Files can be picked interactively, archived to a zip file or copied to the
clipboard. Every flag can also be set through a GITREE_<FLAG> environment
variable or a YAML file passed with --config.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				return err
			}

			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Run()
		},
	}

	config.BindFlags(cmd.Flags())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
