// Package cli implements hfqrctl, a terminal front-end over the classifier,
// the profile resolver and the QR renderer.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/hfqr/internal/config"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/version"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	baseURL   string
	timeout   time.Duration
	themeFile string
	debug     bool
}

// NewRootCommand builds the hfqrctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "hfqrctl",
		Short:         "Hugging Face profile links, cards and QR codes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "profile pages origin (default HFQR_HUB_BASE_URL or https://huggingface.co)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "profile fetch timeout (default HFQR_PROFILE_TIMEOUT)")
	root.PersistentFlags().StringVar(&opts.themeFile, "theme-file", "", "themes YAML file (default HFQR_THEME_FILE or builtin presets)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logs on stderr")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hfqrctl %s\n", version.String())
		},
	})

	root.AddCommand(newClassifyCommand())
	root.AddCommand(newProfileCommand(opts))
	root.AddCommand(newQRCommand(opts))
	root.AddCommand(newThemesCommand(opts))

	return root
}

// Execute runs hfqrctl with a fresh context.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// settings merges the command line over the HFQR_* environment.
func (o *globalOptions) settings() *config.Config {
	cfg := config.Load()
	if o.baseURL != "" {
		cfg.HubBaseURL = o.baseURL
	}
	if o.timeout > 0 {
		cfg.ProfileTimeout = o.timeout
	}
	if o.themeFile != "" {
		cfg.ThemeFile = o.themeFile
	}
	return cfg
}

func (o *globalOptions) logger() logger.Logger {
	if o.debug {
		return logger.New("debug", true)
	}
	return logger.NewNop()
}

// themeIndex returns an index holding the configured themes, or the builtin
// presets when no file is set.
func (o *globalOptions) themeIndex(ctx context.Context, cfg *config.Config) (*index.MemoryIndex, error) {
	idx := index.NewMemoryIndex()
	if cfg.ThemeFile == "" {
		return idx, nil
	}
	if err := loadThemes(ctx, cfg.ThemeFile, idx, o.logger()); err != nil {
		return nil, err
	}
	return idx, nil
}
