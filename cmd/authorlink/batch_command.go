package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"authorlink/internal/contributors"
	"authorlink/internal/logging"
	"authorlink/internal/viaf"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve every unresolved contributor in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "batch.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire batch lock: %w", err)
			}
			if !ok {
				return errors.New("another batch resolution is already running")
			}
			defer func() { _ = lock.Unlock() }()

			return ctx.withStore(func(store *contributors.Store) error {
				resolver := viaf.NewResolver(store, client, logger)

				unresolved, err := store.ListUnresolved(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(unresolved) == 0 {
					fmt.Fprintln(out, "No unresolved contributors")
					return nil
				}

				progressEvery := cfg.Batch.ProgressEvery
				if progressEvery <= 0 {
					progressEvery = 100
				}

				var resolved, failed, unmatched int
				for i, contributor := range unresolved {
					if err := cmd.Context().Err(); err != nil {
						return err
					}

					triple, err := resolver.ResolveContributor(cmd.Context(), contributor)
					switch {
					case err != nil:
						failed++
						logger.Error("failed to resolve contributor",
							logging.Int64("contributor_id", contributor.ID),
							logging.String("sort_name", contributor.SortName),
							logging.Error(err))
					case triple == nil:
						unmatched++
					default:
						resolved++
					}

					if (i+1)%progressEvery == 0 {
						logger.Info("batch progress",
							logging.Int("processed", i+1),
							logging.Int("total", len(unresolved)),
							logging.Int("resolved", resolved),
							logging.Int("unmatched", unmatched),
							logging.Int("failed", failed))
					}
				}

				fmt.Fprintf(out, "Processed %d contributors: %d resolved, %d unmatched, %d failed\n",
					len(unresolved), resolved, unmatched, failed)
				return nil
			})
		},
	}
	return cmd
}
