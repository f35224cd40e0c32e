package commands

import (
	"database/sql"
	"fmt"

	"github.com/de-tools/asset-atlas/pkg/export"
	"github.com/de-tools/asset-atlas/pkg/services/audit"
	"github.com/de-tools/asset-atlas/pkg/services/compliance"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
	compliancestore "github.com/de-tools/asset-atlas/pkg/store/duckdb/compliance"
	inventorystore "github.com/de-tools/asset-atlas/pkg/store/duckdb/inventory"
)

// services bundles everything a terminal command needs against one
// database handle.
type services struct {
	db         *sql.DB
	inventory  inventorystore.Store
	compliance compliancestore.Store
	scanner    *compliance.Scanner
	aggregator *compliance.Aggregator
	builder    *audit.Builder
	exporter   *export.Exporter
}

func openServices(dbPath string) (*services, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	inventory, err := inventorystore.NewStore(db)
	if err != nil {
		return nil, err
	}
	complianceStore, err := compliancestore.NewStore(db)
	if err != nil {
		return nil, err
	}

	return &services{
		db:         db,
		inventory:  inventory,
		compliance: complianceStore,
		scanner:    compliance.NewScanner(inventory, complianceStore, compliance.DefaultScannerSettings()),
		aggregator: compliance.NewAggregator(inventory, complianceStore),
		builder:    audit.NewBuilder(inventory, complianceStore, complianceStore),
		exporter:   export.NewExporter(inventory),
	}, nil
}

func (s *services) Close() error {
	return s.db.Close()
}
