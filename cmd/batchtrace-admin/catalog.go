package main

import (
	"fmt"
	"strings"

	"batchtrace/internal/modkit"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/platform/logger"
	catalogmod "batchtrace/internal/services/catalog/module"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the batch catalog feed",
	}
	cmd.AddCommand(catalogCheckCmd())
	return cmd
}

func catalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fetch the catalog once and print what it maps to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := config.New()
			deps := modkit.Deps{Log: *logger.Get(), Cfg: root}
			snap := catalogmod.New(deps, catalogmod.FromConfig(root)).Loader().Load(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:  %s\n", snap.Source)
			fmt.Fprintf(out, "outcome: %s\n", snap.Outcome)
			fmt.Fprintf(out, "rows:    %d\n", snap.Stats.Rows)
			fmt.Fprintf(out, "entries: %d\n", snap.Stats.Entries)
			fmt.Fprintf(out, "dropped: %d\n", snap.Stats.Dropped)
			if len(snap.Sample) > 0 {
				fmt.Fprintf(out, "first:   %s\n", strings.Join(snap.Sample, ", "))
			}
			if snap.Empty() {
				return fmt.Errorf("catalog is empty (%s)", snap.Outcome)
			}
			return nil
		},
	}
}
