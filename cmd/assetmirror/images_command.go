package main

import (
	"context"

	"github.com/spf13/cobra"

	"assetmirror/internal/catalog"
	"assetmirror/internal/fetch"
	"assetmirror/internal/reconcile"
	"assetmirror/internal/session"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Manage preview, details and variant images",
	}
	imagesCmd.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Download missing or changed slot images into asset folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				stage := fetch.NewStage(reconcile.NewLayout(s.Config), ctx.newDownloader(s.Config), s.Store, s.Logger)
				summary, err := stage.Run(runCtx, tax)
				printSummary(cmd.OutOrStdout(), "Image fetch", []summaryRow{
					countRow("asset folders", summary.Assets),
					countRow("downloaded", summary.Downloaded),
					countRow("archived", summary.Archived),
					countRow("already present", summary.Present),
					countRow("failed", summary.Failed),
					countRow("flags cleared", summary.Cleared),
				}, err)
				return err
			})
		},
	})
	return imagesCmd
}
