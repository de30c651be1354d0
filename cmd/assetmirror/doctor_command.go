package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"assetmirror/internal/preflight"
	"assetmirror/internal/session"
	"assetmirror/internal/textutil"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var checkSite bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the catalog database and the remote listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(runCtx context.Context, s *session.Session) error {
				results := preflight.RunAll(runCtx, s.Config, s.Store, checkSite)
				out := cmd.OutOrStdout()

				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, textutil.Ternary(r.Passed, "ok", "FAIL"), r.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

				health, healthErr := s.Store.CheckHealth(runCtx)
				fmt.Fprintln(out, renderTable([]string{"Database", ""}, [][]string{
					{"path", health.DBPath},
					{"schema version", strconv.Itoa(health.SchemaVersion)},
					{"integrity ok", textutil.Ternary(health.IntegrityCheck, "yes", "no")},
					{"asset types", strconv.Itoa(health.AssetTypes)},
					{"categories", strconv.Itoa(health.Categories)},
					{"assets", strconv.Itoa(health.Assets)},
					{"awaiting detail scan", strconv.Itoa(health.PendingDetail)},
					{"awaiting image fetch", strconv.Itoa(health.PendingFetch)},
				}, []columnAlignment{alignLeft, alignRight}))
				if len(health.MissingColumns) > 0 {
					fmt.Fprintf(out, "Missing columns: %v\n", health.MissingColumns)
				}

				if healthErr != nil {
					return healthErr
				}
				if failed := preflight.Failed(results); len(failed) > 0 {
					return fmt.Errorf("%d preflight check(s) failed", len(failed))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&checkSite, "site", false, "Also check that the remote listing is reachable")
	return cmd
}
