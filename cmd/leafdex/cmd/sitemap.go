package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/sitemap"
)

func newSitemapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml from the dataset",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := os.Create(a.cfg.Site.SitemapPath)
			if err != nil {
				return fmt.Errorf("create sitemap file: %w", err)
			}
			defer out.Close()

			count, err := sitemap.Generate(dataset.New(a.cfg.Dataset.Path), a.cfg.Site.BaseURL, out)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %d URLs to %s\n", count, a.cfg.Site.SitemapPath)
			return nil
		},
	}
}
