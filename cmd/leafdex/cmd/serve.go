package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdex/leafdex-server/internal/api"
	"github.com/leafdex/leafdex-server/internal/search"
	"github.com/leafdex/leafdex-server/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API",
		Long: `Serve the read-side search API. The live physical index is resolved
through the pointer store on every request, so an index rebuilt by a
separate deployment step is picked up without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := store.New(a.cfg.Store.Path, a.log)
			if err != nil {
				return err
			}
			defer st.Close()

			engine := search.NewEngine(a.cfg.Search.DataPath, a.log)
			resolver := search.NewResolver(engine, st, a.log)
			defer resolver.Close()

			server := &http.Server{
				Addr:         ":" + a.cfg.Server.Port,
				Handler:      api.NewServer(resolver, a.log).Routes(),
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				IdleTimeout:  a.cfg.Server.IdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				fmt.Printf("Search API listening on :%s\n", a.cfg.Server.Port)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}
}
