package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) GetLicenses(ctx context.Context) ([]domain.License, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.License), args.Error(1)
}

func (m *mockInventory) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

type mockComplianceWriter struct {
	mock.Mock
	violations []domain.Violation
	alerts     []domain.Alert
	checks     []domain.ComplianceCheck
}

func (m *mockComplianceWriter) AddViolation(ctx context.Context, v domain.Violation) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil {
		m.violations = append(m.violations, v)
	}
	return args.Error(0)
}

func (m *mockComplianceWriter) AddAlert(ctx context.Context, a domain.Alert) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil {
		m.alerts = append(m.alerts, a)
	}
	return args.Error(0)
}

func (m *mockComplianceWriter) AddCheck(ctx context.Context, c domain.ComplianceCheck) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		m.checks = append(m.checks, c)
	}
	return args.Error(0)
}

var scanNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestEvaluate_LicenseOveruse(t *testing.T) {
	settings := DefaultScannerSettings()

	t.Run("overused license yields one High violation with overage", func(t *testing.T) {
		// seats_used 105 of 100: availableSeats is -5.
		licenses := []domain.License{{ID: "l1", Name: "Office365", Seats: 100, AvailableSeats: -5}}

		eval := Evaluate(licenses, nil, scanNow, settings)

		require.Len(t, eval.LicenseViolations, 1)
		v := eval.LicenseViolations[0]
		assert.Equal(t, "License Overuse", v.Type)
		assert.Equal(t, domain.SeverityHigh, v.Severity)
		assert.Equal(t, domain.ViolationOpen, v.Status)
		assert.Contains(t, v.Description, "5 seat(s)")
		assert.Equal(t, 90, eval.Score)
	})

	t.Run("fully used license is compliant", func(t *testing.T) {
		licenses := []domain.License{{ID: "l1", Name: "exact", Seats: 10, AvailableSeats: 0}}

		eval := Evaluate(licenses, nil, scanNow, settings)

		assert.Empty(t, eval.LicenseViolations)
		assert.Equal(t, 100, eval.Score)
	})

	t.Run("one seat over yields overage of exactly one", func(t *testing.T) {
		licenses := []domain.License{{ID: "l1", Name: "tight", Seats: 10, AvailableSeats: -1}}

		eval := Evaluate(licenses, nil, scanNow, settings)

		require.Len(t, eval.LicenseViolations, 1)
		assert.Contains(t, eval.LicenseViolations[0].Description, "1 seat(s)")
	})
}

func TestEvaluate_ExpiryBoundaries(t *testing.T) {
	settings := DefaultScannerSettings()

	t.Run("license expiring exactly 30 days out triggers an alert", func(t *testing.T) {
		licenses := []domain.License{{
			ID: "l1", Name: "vpn", Seats: 5, AvailableSeats: 5,
			ExpiryDate: datePtr(scanNow.AddDate(0, 0, 30)),
		}}

		eval := Evaluate(licenses, nil, scanNow, settings)

		var alerts []Effect
		for _, e := range eval.Effects {
			if e.InsertAlert != nil {
				alerts = append(alerts, e)
			}
		}
		require.Len(t, alerts, 1)
		assert.Equal(t, "License Expiring Soon", alerts[0].InsertAlert.Title)
		assert.Equal(t, domain.AlertPriorityHigh, alerts[0].InsertAlert.Priority)
	})

	t.Run("license expiring in 31 days does not", func(t *testing.T) {
		licenses := []domain.License{{
			ID: "l1", Name: "vpn", Seats: 5, AvailableSeats: 5,
			ExpiryDate: datePtr(scanNow.AddDate(0, 0, 31)),
		}}

		eval := Evaluate(licenses, nil, scanNow, settings)

		for _, e := range eval.Effects {
			assert.Nil(t, e.InsertAlert)
		}
	})

	t.Run("warranty expiring within the window is a medium alert counted as an issue", func(t *testing.T) {
		assets := []domain.Asset{{
			ID: "a1", Name: "laptop",
			WarrantyExpires: datePtr(scanNow.AddDate(0, 0, 10)),
		}}

		eval := Evaluate(nil, assets, scanNow, settings)

		require.Len(t, eval.WarrantyAlerts, 1)
		assert.Equal(t, "Warranty Expiring Soon", eval.WarrantyAlerts[0].Title)
		assert.Equal(t, domain.AlertPriorityMedium, eval.WarrantyAlerts[0].Priority)
		assert.Equal(t, 90, eval.Score)
	})

	t.Run("already expired warranty is outside the window", func(t *testing.T) {
		assets := []domain.Asset{{
			ID: "a1", Name: "old",
			WarrantyExpires: datePtr(scanNow.AddDate(0, 0, -1)),
		}}

		eval := Evaluate(nil, assets, scanNow, settings)

		assert.Empty(t, eval.WarrantyAlerts)
	})
}

func TestEvaluate_Score(t *testing.T) {
	settings := DefaultScannerSettings()

	t.Run("score floors at zero", func(t *testing.T) {
		licenses := make([]domain.License, 0, 12)
		for i := 0; i < 12; i++ {
			licenses = append(licenses, domain.License{
				ID: "l", Name: "over", Seats: 1, AvailableSeats: -1,
			})
		}

		eval := Evaluate(licenses, nil, scanNow, settings)

		assert.Equal(t, 0, eval.Score)
	})

	t.Run("policy violations stay present and empty", func(t *testing.T) {
		eval := Evaluate(nil, nil, scanNow, settings)

		assert.NotNil(t, eval.PolicyViolations)
		assert.Empty(t, eval.PolicyViolations)
	})
}

func TestScanner_Scan(t *testing.T) {
	ctx := context.Background()

	overused := []domain.License{{ID: "l1", Name: "Office365", Seats: 100, AvailableSeats: -5}}

	t.Run("persists findings and appends one check per run", func(t *testing.T) {
		inv := new(mockInventory)
		inv.On("GetLicenses", mock.Anything).Return(overused, nil)
		inv.On("GetAssets", mock.Anything).Return([]domain.Asset{}, nil)

		writer := new(mockComplianceWriter)
		writer.On("AddViolation", mock.Anything, mock.Anything).Return(nil)
		writer.On("AddCheck", mock.Anything, mock.Anything).Return(nil)

		scanner := NewScanner(inv, writer, DefaultScannerSettings()).WithClock(func() time.Time { return scanNow })

		result, err := scanner.Scan(ctx, "full")

		require.NoError(t, err)
		assert.Equal(t, 90, result.ComplianceScore)
		assert.Equal(t, scanNow, result.Timestamp)
		require.Len(t, writer.violations, 1)
		require.Len(t, writer.checks, 1)
		assert.Equal(t, domain.CheckNonCompliant, writer.checks[0].Status)
		assert.Equal(t, "License", writer.checks[0].Type)
	})

	t.Run("two scans over unchanged data append two checks with same finding content", func(t *testing.T) {
		inv := new(mockInventory)
		inv.On("GetLicenses", mock.Anything).Return(overused, nil)
		inv.On("GetAssets", mock.Anything).Return([]domain.Asset{}, nil)

		writer := new(mockComplianceWriter)
		writer.On("AddViolation", mock.Anything, mock.Anything).Return(nil)
		writer.On("AddCheck", mock.Anything, mock.Anything).Return(nil)

		scanner := NewScanner(inv, writer, DefaultScannerSettings()).WithClock(func() time.Time { return scanNow })

		first, err := scanner.Scan(ctx, "full")
		require.NoError(t, err)
		second, err := scanner.Scan(ctx, "full")
		require.NoError(t, err)

		// No dedup: both runs persist their own rows.
		assert.Len(t, writer.violations, 2)
		assert.Len(t, writer.checks, 2)
		assert.Equal(t, writer.violations[0].Description, writer.violations[1].Description)
		assert.Equal(t, first.ComplianceScore, second.ComplianceScore)
	})

	t.Run("a failed insert does not abort the scan", func(t *testing.T) {
		inv := new(mockInventory)
		inv.On("GetLicenses", mock.Anything).Return(overused, nil)
		inv.On("GetAssets", mock.Anything).Return([]domain.Asset{}, nil)

		writer := new(mockComplianceWriter)
		writer.On("AddViolation", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		writer.On("AddCheck", mock.Anything, mock.Anything).Return(nil)

		scanner := NewScanner(inv, writer, DefaultScannerSettings()).WithClock(func() time.Time { return scanNow })

		result, err := scanner.Scan(ctx, "full")

		require.NoError(t, err)
		assert.Equal(t, 90, result.ComplianceScore)
		// The check still lands even though the violation insert failed.
		assert.Len(t, writer.checks, 1)
	})

	t.Run("unreachable storage fails the whole scan with an infra error", func(t *testing.T) {
		inv := new(mockInventory)
		inv.On("GetLicenses", mock.Anything).Return(nil, errors.New("connection refused"))

		writer := new(mockComplianceWriter)
		scanner := NewScanner(inv, writer, DefaultScannerSettings())

		_, err := scanner.Scan(ctx, "full")

		var infra *InfraError
		require.ErrorAs(t, err, &infra)
		assert.Equal(t, "read licenses", infra.Op)
	})
}
