package commands

import (
	"context"
	"time"

	"github.com/de-tools/asset-atlas/pkg/export"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	dbPath string
	entity string
	format string
	outDir string
}

func NewExportCmd() *cobra.Command {
	ec := &ExportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entity collections to files",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.dbPath, "db", "asset-atlas.db", "Path to the inventory database")
	cmd.Flags().StringVar(&ec.entity, "entity", "all",
		"Entity type to export (assets, licenses, accessories, consumables, components, users, kits, requestable, all)")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Output format (csv, json, excel)")
	cmd.Flags().StringVar(&ec.outDir, "out", ".", "Directory to write export files into")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc, err := openServices(ec.dbPath)
	if err != nil {
		return err
	}
	defer svc.Close()

	sink := export.DirSink{Dir: ec.outDir}
	return svc.exporter.Export(ctx, export.EntityType(ec.entity), export.Format(ec.format), sink)
}
