package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/qr"
)

func newQRCommand(opts *globalOptions) *cobra.Command {
	var (
		pngPath string
		size    int
		themeID string
		invert  bool
	)

	cmd := &cobra.Command{
		Use:   "qr <username-or-url>",
		Short: "Render the QR code of a profile URL",
		Long: `Render the QR code of the profile behind a username or link.
Without --png the code is drawn in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := domain.Classify(args[0])
			if err != nil {
				return err
			}

			if pngPath == "" {
				text, err := qr.Terminal(link.ProfileURL, invert)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				fmt.Fprintln(cmd.OutOrStdout(), link.ProfileURL)
				return nil
			}

			cfg := opts.settings()
			idx, err := opts.themeIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if size <= 0 {
				size = cfg.QRDefaultSize
			}

			png, err := qr.PNG(link.ProfileURL, size, idx.ThemeOrDefault(themeID))
			if err != nil {
				return err
			}
			if err := os.WriteFile(pngPath, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", pngPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes) for %s\n", pngPath, len(png), link.ProfileURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG to this file instead of drawing in the terminal")
	cmd.Flags().IntVar(&size, "size", 0, "PNG edge in pixels, clamped to [128, 1024] (default HFQR_QR_SIZE)")
	cmd.Flags().StringVar(&themeID, "theme", "", "theme id for the PNG colours")
	cmd.Flags().BoolVar(&invert, "invert", false, "invert terminal colours (for light backgrounds)")
	return cmd
}
