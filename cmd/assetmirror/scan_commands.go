package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assetmirror/internal/catalog"
	"assetmirror/internal/scrape"
	"assetmirror/internal/session"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Synchronize the catalog database with the remote listing",
	}
	scanCmd.AddCommand(newScanTaxonomyCommand(ctx))
	scanCmd.AddCommand(newScanAssetsCommand(ctx))
	scanCmd.AddCommand(newScanDetailsCommand(ctx))
	return scanCmd
}

func newScanTaxonomyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Record asset types and categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(runCtx context.Context, s *session.Session) error {
				return ctx.runScan(cmd, s, "Taxonomy scan", func(engine *scrape.Engine) (scrape.Summary, error) {
					return engine.ScanTaxonomy(runCtx)
				})
			})
		},
	}
}

func newScanAssetsCommand(ctx *commandContext) *cobra.Command {
	var typeNames []string
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Record or update the assets listed in each category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				types, err := selectTypes(tax, typeNames)
				if err != nil {
					return err
				}
				categories := categoriesOf(tax, types)
				return ctx.runScan(cmd, s, "Asset scan", func(engine *scrape.Engine) (scrape.Summary, error) {
					return engine.ScanAssets(runCtx, categories)
				})
			})
		},
	}
	cmd.Flags().StringSliceVarP(&typeNames, "type", "t", nil, "Limit the scan to these asset types")
	return cmd
}

func newScanDetailsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "details",
		Short: "Visit detail pages of assets flagged for checking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(runCtx context.Context, s *session.Session) error {
				return ctx.runScan(cmd, s, "Detail scan", func(engine *scrape.Engine) (scrape.Summary, error) {
					return engine.ScanDetails(runCtx)
				})
			})
		},
	}
}

func (c *commandContext) runScan(cmd *cobra.Command, s *session.Session, title string, pass func(*scrape.Engine) (scrape.Summary, error)) error {
	driver := c.newDriver(s.Config)
	defer driver.Close()

	engine := scrape.NewEngine(s.Config, driver, s.Store, s.Logger)
	summary, err := pass(engine)

	rows := make([]summaryRow, 0, 12)
	for _, r := range summary.Rows() {
		rows = append(rows, summaryRow{label: r.Label, value: r.Value})
	}
	out := cmd.OutOrStdout()
	printSummary(out, title, rows, err)
	if len(summary.AbandonedCategory) > 0 {
		fmt.Fprintf(out, "Abandoned categories: %s\n", strings.Join(summary.AbandonedCategory, ", "))
	}
	return err
}
