package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/scheduler"
)

func loadThemes(ctx context.Context, path string, idx *index.MemoryIndex, log logger.Logger) error {
	// One-shot reload; the reloader is never started.
	return scheduler.NewThemeReloader(path, idx, log, nil, 0, nil).Reload(ctx)
}

func newThemesCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the card themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := opts.themeIndex(cmd.Context(), opts.settings())
			if err != nil {
				return err
			}
			themes := idx.GetAllThemes()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(themes)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"ID", "Name", "Gradient", "QR"})
			for _, t := range themes {
				tw.AppendRow(table.Row{
					t.ID,
					t.Name,
					fmt.Sprintf("%s -> %s", t.GradientFrom, t.GradientTo),
					fmt.Sprintf("%s on %s", t.Foreground, t.Background),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
