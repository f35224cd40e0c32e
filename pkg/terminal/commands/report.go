package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	terminalexport "github.com/de-tools/asset-atlas/pkg/terminal/export"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	dbPath     string
	reportType string
	reporter   *terminalexport.Reporter
}

func NewReportCmd(reporter *terminalexport.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build an audit report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dbPath, "db", "asset-atlas.db", "Path to the inventory database")
	cmd.Flags().StringVar(&rc.reportType, "type", "comprehensive",
		"Report type (license-audit, asset-audit, security-compliance, policy-violations, comprehensive)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc, err := openServices(rc.dbPath)
	if err != nil {
		return err
	}
	defer svc.Close()

	doc, err := svc.builder.BuildReport(ctx, domain.ReportType(rc.reportType), nil)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	return rc.reporter.Handle(&doc)
}
