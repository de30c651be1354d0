package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"assetmirror/internal/catalog"
	"assetmirror/internal/config"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/reconcile"
	"assetmirror/internal/report"
	"assetmirror/internal/session"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Write text reports about the local library",
	}
	reportCmd.AddCommand(newReportCompletenessCommand(ctx))
	reportCmd.AddCommand(newReportRequestsCommand(ctx))
	return reportCmd
}

func newReportCompletenessCommand(ctx *commandContext) *cobra.Command {
	var mirroredOnly bool
	cmd := &cobra.Command{
		Use:   "completeness",
		Short: "Bucket assets by how many offered formats are held",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(_ context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				var include func(catalog.Placement) bool
				if mirroredOnly {
					layout := reconcile.NewLayout(s.Config)
					include = func(p catalog.Placement) bool {
						return fileutil.IsDir(layout.PlacementDir(p))
					}
				}
				completeness := report.BuildCompleteness(tax, include)
				path, err := report.NewWriter(s.Config.Paths.ReportDir, nil).Write(report.AssetCountName, completeness.Sections()...)

				out := cmd.OutOrStdout()
				printSummary(out, "Asset completeness", []summaryRow{
					countRow("have", len(completeness.Have)),
					countRow("missing formats", len(completeness.Missing)),
					countRow("needed", len(completeness.Need)),
				}, err)
				if err == nil {
					fmt.Fprintf(out, "Report: %s\n", path)
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&mirroredOnly, "mirrored-only", false, "Only include assets that have a local folder")
	return cmd
}

func newReportRequestsCommand(ctx *commandContext) *cobra.Command {
	var requestsPath string
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Resolve requested asset names to formats and catalog links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(runCtx context.Context, s *session.Session) error {
				path := strings.TrimSpace(requestsPath)
				if path == "" {
					path = s.Config.Paths.RequestsFile
				} else {
					expanded, err := config.ExpandPath(path)
					if err != nil {
						return fmt.Errorf("resolve requests path: %w", err)
					}
					path = expanded
				}

				matched, unknown, err := report.RequestList(runCtx, path, s.Store)
				out := cmd.OutOrStdout()
				printSummary(out, "Request list", []summaryRow{
					countRow("matched", len(matched)),
					countRow("unknown", len(unknown)),
				}, err)
				if err != nil {
					return err
				}
				for _, name := range unknown {
					fmt.Fprintf(out, "Not in catalog: %s\n", name)
				}
				if len(matched) == 0 {
					return nil
				}
				written, err := report.NewWriter(s.Config.Paths.ReportDir, nil).Write(report.RequestListName, report.Section{Lines: matched})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Report: %s\n", written)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&requestsPath, "file", "f", "", "Requests file (defaults to paths.requests_file)")
	return cmd
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the catalog database",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "counts",
		Short: "Show asset counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(runCtx context.Context, s *session.Session) error {
				counts, err := s.Store.CategoryCounts(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(counts) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(counts)+1)
				total := 0
				for _, c := range counts {
					rows = append(rows, []string{c.AssetType, c.Category, strconv.Itoa(c.Assets)})
					total += c.Assets
				}
				rows = append(rows, []string{"", "Total", strconv.Itoa(total)})
				fmt.Fprintln(out, renderTable([]string{"Type", "Category", "Assets"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	})
	return catalogCmd
}
