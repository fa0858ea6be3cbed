package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/domain"
	"github.com/leafdex/leafdex-server/internal/store"
)

func newPopulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "populate-cache <enrichment-file>",
		Short: "Populate the enrichment cache from a seed file",
		Long: `Load per-entity enrichment data (image references, variation lists)
into the key-value cache. The index rebuild reads this cache and aborts on
any entity that has no entry, so run this before the first rebuild and
after any dataset additions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := dataset.LoadEnrichmentFile(args[0])
			if err != nil {
				return err
			}

			st, err := store.New(a.cfg.Store.Path, a.log)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			for id, enrichment := range seed.Villagers {
				if err := st.PutEnrichment(ctx, domain.KindVillager, id, enrichment); err != nil {
					return err
				}
			}
			for id, enrichment := range seed.Items {
				if err := st.PutEnrichment(ctx, domain.KindItem, id, enrichment); err != nil {
					return err
				}
			}

			fmt.Printf("Cached enrichment for %d villagers and %d items\n",
				len(seed.Villagers), len(seed.Items))
			return nil
		},
	}
}
