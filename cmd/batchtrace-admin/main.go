// Command batchtrace-admin inspects the catalog feed and manages stored
// submissions from the command line
package main

import (
	"context"
	"fmt"
	"os"

	"batchtrace/internal/modkit"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/platform/logger"
	"batchtrace/internal/platform/store"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFiles []string
	cmd := &cobra.Command{
		Use:           "batchtrace-admin",
		Short:         "Batch catalog and submission admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if _, err := config.LoadEnvFiles(envFiles...); err != nil {
				return err
			}
			opts := logger.FromEnv()
			opts.Service = "batchtrace-admin"
			opts.Component = "admin"
			logger.Init(opts)
			return nil
		},
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env", []string{".env"}, "dotenv files to load")

	cmd.AddCommand(catalogCmd())
	cmd.AddCommand(submissionsCmd())
	return cmd
}

// openDeps opens the configured store and returns module deps over it.
// The returned func closes the store
func openDeps(ctx context.Context) (modkit.Deps, func(), error) {
	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(root), store.WithLogger(*l))
	if err != nil {
		return modkit.Deps{}, nil, err
	}
	closeFn := func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}
	return modkit.Deps{
		Log:     *l,
		Cfg:     root,
		DB:      st.DB,
		Dialect: st.Driver,
	}, closeFn, nil
}
