package main

import (
	"fmt"
	"os"

	"github.com/de-tools/asset-atlas/pkg/terminal/commands"
	terminalexport "github.com/de-tools/asset-atlas/pkg/terminal/export"
	"github.com/spf13/cobra"
)

func main() {
	reporter := terminalexport.NewReporter(os.Stdout)

	rootCmd := &cobra.Command{
		Use:   "asset-atlas",
		Short: "Inventory compliance scanning and reporting",
	}
	rootCmd.AddCommand(
		commands.NewScanCmd(reporter),
		commands.NewReportCmd(reporter),
		commands.NewExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
