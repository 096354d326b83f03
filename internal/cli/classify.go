package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
)

func newClassifyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <username-or-url>",
		Short: "Tell what kind of Hugging Face identity a link names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := domain.Classify(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(link)
			}

			fmt.Fprintf(out, "kind:     %s\n", link.Kind)
			fmt.Fprintf(out, "username: %s\n", link.Username)
			if link.HasResource() {
				fmt.Fprintf(out, "resource: %s\n", link.ResourceName)
			}
			fmt.Fprintf(out, "profile:  %s\n", link.ProfileURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
