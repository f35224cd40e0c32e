package compliance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/de-tools/asset-atlas/pkg/models/store"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
)

// Store persists scan side effects and serves compliance history reads.
// Inserts are append-only: violations and checks are never deleted here,
// and checks are never updated in place.
type Store interface {
	AddViolation(ctx context.Context, v domain.Violation) error
	AddAlert(ctx context.Context, a domain.Alert) error
	AddCheck(ctx context.Context, c domain.ComplianceCheck) error
	AddActivity(ctx context.Context, entry domain.ActivityEntry) error

	GetViolations(ctx context.Context) ([]domain.Violation, error)
	GetAlerts(ctx context.Context) ([]domain.Alert, error)
	GetChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
	GetActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type complianceStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &complianceStore{db: db}, nil
}

func (s *complianceStore) AddViolation(ctx context.Context, v domain.Violation) error {
	r := store.ViolationToRecord(v)
	query := `
		INSERT INTO violations (id, type, severity, description, detected_date, assigned_to, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, r.ID, r.Type, r.Severity, r.Description, r.DetectedDate, r.AssignedTo, r.Status)
	if err != nil {
		return fmt.Errorf("insert violation: %w", err)
	}
	return nil
}

func (s *complianceStore) AddAlert(ctx context.Context, a domain.Alert) error {
	r := store.AlertToRecord(a)
	query := `
		INSERT INTO alerts (id, type, title, message, priority, read, entity_id, entity_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, r.ID, r.Type, r.Title, r.Message, r.Priority, r.Read, r.EntityID, r.EntityType)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (s *complianceStore) AddCheck(ctx context.Context, c domain.ComplianceCheck) error {
	r := store.CheckToRecord(c)
	query := `
		INSERT INTO compliance_checks (id, type, status, last_checked, next_check, auditor, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, r.ID, r.Type, r.Status, r.LastChecked, r.NextCheck, r.Auditor, r.Notes)
	if err != nil {
		return fmt.Errorf("insert compliance check: %w", err)
	}
	return nil
}

func (s *complianceStore) AddActivity(ctx context.Context, entry domain.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, action, resource_type, resource_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query, entry.ID, entry.Action, entry.ResourceType, entry.ResourceID, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

func (s *complianceStore) GetViolations(ctx context.Context) ([]domain.Violation, error) {
	query := `
		SELECT id, type, severity, description, detected_date, assigned_to, status
		FROM violations
		ORDER BY detected_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query violations: %w", err)
	}
	defer rows.Close()

	violations := make([]domain.Violation, 0)
	for rows.Next() {
		var r store.ViolationRecord
		if err := rows.Scan(&r.ID, &r.Type, &r.Severity, &r.Description, &r.DetectedDate, &r.AssignedTo, &r.Status); err != nil {
			return nil, err
		}
		violations = append(violations, store.MapViolation(r))
	}
	return violations, rows.Err()
}

func (s *complianceStore) GetAlerts(ctx context.Context) ([]domain.Alert, error) {
	query := `SELECT id, type, title, message, priority, read, entity_id, entity_type FROM alerts`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0)
	for rows.Next() {
		var r store.AlertRecord
		if err := rows.Scan(&r.ID, &r.Type, &r.Title, &r.Message, &r.Priority, &r.Read, &r.EntityID, &r.EntityType); err != nil {
			return nil, err
		}
		alerts = append(alerts, store.MapAlert(r))
	}
	return alerts, rows.Err()
}

func (s *complianceStore) GetChecks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	query := `
		SELECT id, type, status, last_checked, next_check, auditor, notes
		FROM compliance_checks
		ORDER BY last_checked DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query compliance checks: %w", err)
	}
	defer rows.Close()

	checks := make([]domain.ComplianceCheck, 0)
	for rows.Next() {
		var r store.ComplianceCheckRecord
		if err := rows.Scan(&r.ID, &r.Type, &r.Status, &r.LastChecked, &r.NextCheck, &r.Auditor, &r.Notes); err != nil {
			return nil, err
		}
		checks = append(checks, store.MapCheck(r))
	}
	return checks, rows.Err()
}

func (s *complianceStore) GetActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, action, resource_type, resource_id, details, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ActivityEntry, 0)
	for rows.Next() {
		var r store.ActivityRecord
		if err := rows.Scan(&r.ID, &r.Action, &r.ResourceType, &r.ResourceID, &r.Details, &r.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, store.MapActivity(r))
	}
	return entries, rows.Err()
}

func (s *complianceStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return s.db.ExecContext(ctx, query, args...)
}
