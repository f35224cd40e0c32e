package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/asset-atlas/pkg/export"
	compliancehandlers "github.com/de-tools/asset-atlas/pkg/handlers/compliance"
	exporthandlers "github.com/de-tools/asset-atlas/pkg/handlers/export"
	"github.com/de-tools/asset-atlas/pkg/server"
	"github.com/de-tools/asset-atlas/pkg/services/audit"
	"github.com/de-tools/asset-atlas/pkg/services/compliance"
	"github.com/de-tools/asset-atlas/pkg/services/config"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
	compliancestore "github.com/de-tools/asset-atlas/pkg/store/duckdb/compliance"
	inventorystore "github.com/de-tools/asset-atlas/pkg/store/duckdb/inventory"
	s3sink "github.com/de-tools/asset-atlas/pkg/store/s3"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Asset Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "asset-atlas.yaml",
		"Path to the application config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	inventory, err := inventorystore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create inventory store: %w", err)
	}
	complianceStore, err := compliancestore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create compliance store: %w", err)
	}

	settings := compliance.ScannerSettings{
		ExpiryHorizonDays: cfg.Scanner.ExpiryHorizonDays,
		IssuePenalty:      cfg.Scanner.IssuePenalty,
		NextCheckDays:     cfg.Scanner.NextCheckDays,
		Auditor:           cfg.Scanner.Auditor,
	}
	scanner := compliance.NewScanner(inventory, complianceStore, settings)
	aggregator := compliance.NewAggregator(inventory, complianceStore)
	builder := audit.NewBuilder(inventory, complianceStore, complianceStore)
	exporter := export.NewExporter(inventory)

	// Bulk ("all") exports go to S3 when a bucket is configured;
	// otherwise the selector is rejected on the HTTP surface.
	var bulkSink export.Sink
	if cfg.Export.Bucket != "" {
		awsCfg, err := s3sink.LoadConfig(ctx, cfg.Export.AWSProfile, cfg.Export.AWSRegion)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		bulkSink = s3sink.NewSink(*awsCfg, cfg.Export.Bucket, cfg.Export.Prefix)
		logger.Info().Str("bucket", cfg.Export.Bucket).Msg("bulk exports delivered to S3")
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Compliance: compliancehandlers.NewHandler(scanner, aggregator, builder, complianceStore),
			Export:     exporthandlers.NewHandler(exporter, bulkSink),
		},
	})

	return webAPI.Start()
}
