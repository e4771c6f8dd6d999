package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"batchtrace/internal/services/submissions/domain"
	submod "batchtrace/internal/services/submissions/module"
	subsvc "batchtrace/internal/services/submissions/service"

	"github.com/spf13/cobra"
)

func submissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List, export and clear stored submissions",
	}
	cmd.AddCommand(submissionsListCmd())
	cmd.AddCommand(submissionsExportCmd())
	cmd.AddCommand(submissionsClearCmd())
	return cmd
}

func filterFlags(cmd *cobra.Command, in *domain.ListInput) {
	cmd.Flags().StringVar(&in.Range, "range", "all", "all, today, week, month, last_month, quarter, last_quarter or custom")
	cmd.Flags().StringVar(&in.Start, "start", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.End, "end", "", "custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Q, "q", "", "case-insensitive search over name, mobile and batch code")
}

// withService opens the store, ensures the schema and runs fn
func withService(cmd *cobra.Command, fn func(svc *subsvc.Svc) error) error {
	deps, closeFn, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	svc := submod.New(deps, submod.FromConfig(deps.Cfg)).Service()
	if err := svc.EnsureSchema(cmd.Context()); err != nil {
		return err
	}
	return fn(svc)
}

func submissionsListCmd() *cobra.Command {
	var (
		in     domain.ListInput
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, func(svc *subsvc.Svc) error {
				res := svc.List(cmd.Context(), in)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}
				return printTable(cmd.OutOrStdout(), res)
			})
		},
	}
	filterFlags(cmd, &in)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printTable(w io.Writer, res domain.ListResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tNAME\tMOBILE\tBATCH\tSTATUS\tDEVICE")
	for _, s := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.Timestamp, s.FullName, s.Mobile, s.BatchCode, s.Status, s.DeviceType)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d of %d matched (range %s): %d success, %d failure\n",
		res.Matched, res.Total, res.Range, res.Success, res.Failure)
	if res.Degraded {
		fmt.Fprintf(w, "warning: %s\n", res.Reason)
	}
	return nil
}

func submissionsExportCmd() *cobra.Command {
	var (
		in  domain.ListInput
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write matching submissions to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, func(svc *subsvc.Svc) error {
				exp, err := svc.Export(cmd.Context(), in)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = exp.Filename
				}
				if path == "-" {
					_, err := cmd.OutOrStdout().Write(exp.Data)
					return err
				}
				if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", exp.Rows, path)
				return nil
			})
		},
	}
	filterFlags(cmd, &in)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default the generated export name)")
	return cmd
}

var errNeedConfirm = errors.New("refusing to clear submissions without --yes")

func submissionsClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored submission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNeedConfirm
			}
			return withService(cmd, func(svc *subsvc.Svc) error {
				if err := svc.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "submissions cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
