package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"authorlink/internal/authority"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var titles []string

	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Search the authority service for a contributor name",
		Long: "Search the authority service for a contributor name and print the\n" +
			"ranked candidates. A name containing a comma is treated as a sort name\n" +
			"(\"Austen, Jane\"), otherwise as a display name (\"Jane Austen\").\n" +
			"Known titles sharpen the match.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("name cannot be empty")
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			var sortName, displayName string
			if strings.Contains(name, ",") {
				sortName = name
			} else {
				displayName = name
			}

			candidates, err := client.Search(cmd.Context(), sortName, displayName, titles)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No candidates found for %q\n", name)
				return nil
			}

			printCandidates(out, candidates)

			best := candidates[0]
			if best.Evidence.Total < authority.AcceptThreshold {
				fmt.Fprintf(out, "No candidate is confident enough (best total %s, need %s)\n",
					formatScore(best.Evidence.Total), formatScore(authority.AcceptThreshold))
				return nil
			}
			fmt.Fprintf(out, "Selected %s (%s), total %s\n",
				best.Candidate.DisplayName, best.Candidate.AuthorityID,
				formatScore(best.Evidence.Total))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&titles, "title", "t", nil, "A title known to be by this contributor (repeatable)")
	return cmd
}
