package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"assetmirror/internal/catalog"
	"assetmirror/internal/reconcile"
	"assetmirror/internal/report"
	"assetmirror/internal/session"
)

func newFoldersCommand(ctx *commandContext) *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Maintain the type/category/asset directory tree",
	}
	foldersCmd.AddCommand(newFoldersCreateCommand(ctx))
	foldersCmd.AddCommand(newFoldersRelocateCommand(ctx))
	return foldersCmd
}

func newFoldersCreateCommand(ctx *commandContext) *cobra.Command {
	var typeNames []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the inbox and asset folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				types, err := selectTypes(tax, typeNames)
				if err != nil {
					return err
				}
				rec := reconcile.New(s.Config, s.Logger)
				summary, err := rec.CreateFolders(runCtx, tax, typeIDs(types)...)
				printSummary(cmd.OutOrStdout(), "Folder creation", []summaryRow{
					countRow("directories created", summary.Created),
				}, err)
				return err
			})
		},
	}
	cmd.Flags().StringSliceVarP(&typeNames, "type", "t", nil, "Limit folder creation to these asset types")
	return cmd
}

func newFoldersRelocateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "relocate",
		Short: "Move asset folders found under the wrong category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				rec := reconcile.New(s.Config, s.Logger)
				relocation, err := rec.Relocate(runCtx, tax)

				out := cmd.OutOrStdout()
				printSummary(out, "Folder relocation", []summaryRow{
					countRow("folders moved", len(relocation.Moves)),
					countRow("duplicates left", len(relocation.Duplicates)),
				}, err)

				if sections := report.ChangeLog(relocation, rec.Layout()); sections != nil {
					path, writeErr := report.NewWriter(s.Config.Paths.ReportDir, nil).Write(report.ChangeLogName, sections...)
					if writeErr != nil {
						if err == nil {
							err = writeErr
						}
					} else {
						fmt.Fprintf(out, "Change log: %s\n", path)
					}
				}
				return err
			})
		},
	}
}

func newInboxCommand(ctx *commandContext) *cobra.Command {
	inboxCmd := &cobra.Command{
		Use:   "inbox",
		Short: "Place loose files from the inbox",
	}
	inboxCmd.AddCommand(&cobra.Command{
		Use:   "transfer",
		Short: "Move inbox files into matching asset folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				rec := reconcile.New(s.Config, s.Logger)
				transfer, err := rec.TransferInbox(runCtx, tax)

				out := cmd.OutOrStdout()
				printSummary(out, "Inbox transfer", []summaryRow{
					countRow("files moved", len(transfer.Moved)),
					countRow("already present", len(transfer.Existing)),
					countRow("without destination", len(transfer.Missing)),
				}, err)

				path, writeErr := report.NewWriter(s.Config.Paths.ReportDir, nil).Write(report.FileTransferName, report.FileTransfer(transfer)...)
				if writeErr != nil {
					if err == nil {
						err = writeErr
					}
					return err
				}
				fmt.Fprintf(out, "Report: %s\n", path)
				return err
			})
		},
	})
	return inboxCmd
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect files held in asset folders",
	}
	filesCmd.AddCommand(&cobra.Command{
		Use:   "mark",
		Short: "Record which offered formats are present locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTaxonomy(cmd, func(runCtx context.Context, s *session.Session, tax *catalog.Taxonomy) error {
				rec := reconcile.New(s.Config, s.Logger)
				possession, err := rec.MarkPossession(runCtx, tax, s.Store)
				printSummary(cmd.OutOrStdout(), "Format possession", []summaryRow{
					countRow("asset folders checked", possession.Checked),
					countRow("assets updated", possession.Updated),
				}, err)
				return err
			})
		},
	})
	return filesCmd
}
