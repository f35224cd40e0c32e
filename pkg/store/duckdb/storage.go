package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const AssetsSchema = `
	CREATE TABLE IF NOT EXISTS assets (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		asset_tag VARCHAR,
		category VARCHAR,
		status VARCHAR,
		serial VARCHAR,
		assigned_to VARCHAR NULL,
		location VARCHAR NULL,
		purchase_date TIMESTAMP NULL,
		warranty_expires TIMESTAMP NULL
	);
`

const LicensesSchema = `
	CREATE TABLE IF NOT EXISTS licenses (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		manufacturer VARCHAR,
		category VARCHAR,
		seats_total INTEGER NOT NULL,
		seats_available INTEGER NOT NULL,
		expiry_date TIMESTAMP NULL,
		purchase_date TIMESTAMP NULL
	);
`

const AccessoriesSchema = `
	CREATE TABLE IF NOT EXISTS accessories (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		category VARCHAR,
		quantity INTEGER NOT NULL DEFAULT 0,
		location VARCHAR NULL
	);
`

const ConsumablesSchema = `
	CREATE TABLE IF NOT EXISTS consumables (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		category VARCHAR,
		quantity INTEGER NOT NULL DEFAULT 0,
		min_quantity INTEGER NOT NULL DEFAULT 0,
		location VARCHAR NULL
	);
`

const ComponentsSchema = `
	CREATE TABLE IF NOT EXISTS components (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		category VARCHAR,
		quantity INTEGER NOT NULL DEFAULT 0,
		serial VARCHAR,
		location VARCHAR NULL
	);
`

const UsersSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		email VARCHAR,
		department VARCHAR NULL,
		job_title VARCHAR NULL,
		asset_count INTEGER NOT NULL DEFAULT 0
	);
`

const KitsSchema = `
	CREATE TABLE IF NOT EXISTS kits (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		category VARCHAR,
		description VARCHAR,
		created_date TIMESTAMP NULL,
		asset_ids JSON,
		accessory_ids JSON,
		license_ids JSON,
		consumable_ids JSON
	);
`

const RequestableItemsSchema = `
	CREATE TABLE IF NOT EXISTS requestable_items (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		type VARCHAR,
		category VARCHAR,
		status VARCHAR
	);
`

const ViolationsSchema = `
	CREATE TABLE IF NOT EXISTS violations (
		id VARCHAR PRIMARY KEY,
		type VARCHAR NOT NULL,
		severity INTEGER NOT NULL,
		description VARCHAR,
		detected_date TIMESTAMP NOT NULL,
		assigned_to VARCHAR,
		status VARCHAR NOT NULL
	);
`

const AlertsSchema = `
	CREATE TABLE IF NOT EXISTS alerts (
		id VARCHAR PRIMARY KEY,
		type VARCHAR NOT NULL,
		title VARCHAR,
		message VARCHAR,
		priority VARCHAR,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		entity_id VARCHAR,
		entity_type VARCHAR
	);
`

const ComplianceChecksSchema = `
	CREATE TABLE IF NOT EXISTS compliance_checks (
		id VARCHAR PRIMARY KEY,
		type VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		last_checked TIMESTAMP NOT NULL,
		next_check TIMESTAMP,
		auditor VARCHAR,
		notes VARCHAR
	);
`

const ActivityLogSchema = `
	CREATE TABLE IF NOT EXISTS activity_log (
		id VARCHAR PRIMARY KEY,
		action VARCHAR NOT NULL,
		resource_type VARCHAR,
		resource_id VARCHAR,
		details VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	AssetsSchema,
	LicensesSchema,
	AccessoriesSchema,
	ConsumablesSchema,
	ComponentsSchema,
	UsersSchema,
	KitsSchema,
	RequestableItemsSchema,
	ViolationsSchema,
	AlertsSchema,
	ComplianceChecksSchema,
	ActivityLogSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
