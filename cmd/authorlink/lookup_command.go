package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var sortName string
	var displayName string
	var nameTitles bool

	cmd := &cobra.Command{
		Use:   "lookup <authority-id>",
		Short: "Fetch a single authority record by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authorityID := strings.TrimSpace(args[0])

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if nameTitles {
				titles, err := client.LookupNameTitles(cmd.Context(), authorityID)
				if err != nil {
					return err
				}
				if len(titles) == 0 {
					fmt.Fprintln(out, "No name titles recorded")
					return nil
				}
				for _, title := range titles {
					fmt.Fprintln(out, title)
				}
				return nil
			}

			triple, err := client.LookupByID(cmd.Context(), authorityID, sortName, displayName)
			if err != nil {
				return err
			}

			cand := triple.Candidate
			fmt.Fprintf(out, "Authority ID:   %s\n", cand.AuthorityID)
			fmt.Fprintf(out, "Sort name:      %s\n", cand.SortName)
			fmt.Fprintf(out, "Display name:   %s\n", cand.DisplayName)
			fmt.Fprintf(out, "Family name:    %s\n", cand.FamilyName)
			fmt.Fprintf(out, "Wikipedia name: %s\n", cand.WikipediaName)
			if len(triple.Titles) > 0 {
				fmt.Fprintln(out, "Titles:")
				for _, title := range triple.Titles {
					fmt.Fprintf(out, "  %s\n", title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortName, "sort-name", "", "Known sort name to match evidence against")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Known display name to match evidence against")
	cmd.Flags().BoolVar(&nameTitles, "name-titles", false, "Print the record's name-title qualifiers instead")
	return cmd
}
