package commands

import (
	"context"
	"fmt"
	"time"

	terminalexport "github.com/de-tools/asset-atlas/pkg/terminal/export"
	"github.com/spf13/cobra"
)

type ScanCmd struct {
	dbPath   string
	scope    string
	reporter *terminalexport.Reporter
}

func NewScanCmd(reporter *terminalexport.Reporter) *cobra.Command {
	sc := &ScanCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a compliance scan against the inventory",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dbPath, "db", "asset-atlas.db", "Path to the inventory database")
	cmd.Flags().StringVar(&sc.scope, "type", "full", "Scan scope")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc, err := openServices(sc.dbPath)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.scanner.Scan(ctx, sc.scope)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return sc.reporter.HandleScan(&result)
}
