package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/rebuild"
	"github.com/leafdex/leafdex-server/internal/search"
	"github.com/leafdex/leafdex-server/internal/store"
)

func newRebuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-index",
		Short: "Rebuild the search index and swap it live",
		Long: `Rebuild the full-text/autocomplete search index from the dataset.

A brand-new physical index is provisioned and populated while the current
one keeps serving; once fully populated, the live-index pointer is
repointed in a single write and the superseded index is deleted. On any
failure the pointer is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store.New(a.cfg.Store.Path, a.log)
			if err != nil {
				return err
			}
			defer st.Close()

			source := dataset.New(a.cfg.Dataset.Path)
			engine := search.NewEngine(a.cfg.Search.DataPath, a.log)

			fmt.Println("Rebuilding search index...")
			result, err := rebuild.New(source, st, engine, a.cfg.Site.BaseURL, a.log).Run(cmd.Context())
			if err != nil {
				fmt.Println("Rebuild aborted.")
				return err
			}

			fmt.Printf("Search index %s is live (%d villagers, %d items)\n",
				result.Index, result.Villagers, result.Items)
			return nil
		},
	}
}
