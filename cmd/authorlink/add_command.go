package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"authorlink/internal/contributors"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var titles []string
	var role string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contributor to the local database",
		Long: "Add a contributor to the local database. A name containing a comma is\n" +
			"stored as the sort name, otherwise as the display name. Titles become\n" +
			"contributions and later serve as matching evidence.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("name cannot be empty")
			}

			contributor := &contributors.Contributor{}
			if strings.Contains(name, ",") {
				contributor.SortName = name
			} else {
				contributor.DisplayName = name
			}

			return ctx.withStore(func(store *contributors.Store) error {
				added, err := store.Add(cmd.Context(), contributor)
				if err != nil {
					return err
				}
				for _, title := range titles {
					if _, err := store.AddContribution(cmd.Context(), added.ID, title, role); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added contributor %d: %s\n", added.ID, name)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&titles, "title", "t", nil, "A title this contributor worked on (repeatable)")
	cmd.Flags().StringVar(&role, "role", "author", "Contribution role for the given titles")
	return cmd
}
