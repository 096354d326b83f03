package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/resolver"
	"github.com/MrSnakeDoc/hfqr/internal/sources/huggingface"
)

func newProfileCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile <username-or-url>",
		Short: "Resolve the display name and avatar behind a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := domain.Classify(args[0])
			if err != nil {
				return err
			}

			cfg := opts.settings()
			client := huggingface.NewClient(huggingface.Options{
				BaseURL:        cfg.HubBaseURL,
				UserAgent:      cfg.UserAgent,
				ProfileTimeout: cfg.ProfileTimeout,
			})
			res := resolver.New(client, nil, index.NewMemoryIndex(), cfg.ProfileTTL, opts.logger(), nil)

			p := res.Resolve(cmd.Context(), link.Username).
				WithResource(link.ResourceType(), link.ResourceName)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Fprintf(out, "name:    %s\n", p.FullName)
			fmt.Fprintf(out, "avatar:  %s\n", p.AvatarURL)
			fmt.Fprintf(out, "profile: %s\n", p.ProfileURL)
			if p.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: profile page unavailable, showing defaults")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
