package compliance

import (
	"context"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

// ComplianceReader is the read side of persisted compliance history.
type ComplianceReader interface {
	GetChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
	GetViolations(ctx context.Context) ([]domain.Violation, error)
}

// Aggregator derives compliance statistics from stored checks,
// violations, and the live inventory. Read-only: it never writes.
type Aggregator struct {
	inventory  InventoryReader
	compliance ComplianceReader
	horizon    int // days
	now        func() time.Time
}

func NewAggregator(inventory InventoryReader, compliance ComplianceReader) *Aggregator {
	return &Aggregator{
		inventory:  inventory,
		compliance: compliance,
		horizon:    30,
		now:        time.Now,
	}
}

// WithClock overrides the aggregator's time source.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// ComputeMetrics derives the full metrics set. The overall score is the
// historical check compliance ratio, not the per-scan penalty score; the
// two formulas are independent and may disagree. Empty source collections
// degrade to a 100 score and zero counts, never an error.
func (a *Aggregator) ComputeMetrics(ctx context.Context) (domain.ComplianceMetrics, error) {
	now := a.now()

	checks, err := a.compliance.GetChecks(ctx)
	if err != nil {
		return domain.ComplianceMetrics{}, &InfraError{Op: "read checks", Err: err}
	}
	violations, err := a.compliance.GetViolations(ctx)
	if err != nil {
		return domain.ComplianceMetrics{}, &InfraError{Op: "read violations", Err: err}
	}
	licenses, err := a.inventory.GetLicenses(ctx)
	if err != nil {
		return domain.ComplianceMetrics{}, &InfraError{Op: "read licenses", Err: err}
	}
	assets, err := a.inventory.GetAssets(ctx)
	if err != nil {
		return domain.ComplianceMetrics{}, &InfraError{Op: "read assets", Err: err}
	}

	metrics := domain.ComplianceMetrics{
		OverallScore:     overallScore(checks),
		ChecksByCategory: checksByCategory(checks),
		LastUpdated:      now,
	}

	trendStart := now.AddDate(0, 0, -a.horizon)
	for _, v := range violations {
		if v.Status == domain.ViolationOpen {
			metrics.OpenViolations++
		}
		if v.Severity == domain.SeverityCritical {
			metrics.CriticalViolations++
		}
		if !v.DetectedAt.Before(trendStart) {
			metrics.ViolationsLast30Days++
		}
	}

	metrics.SeatUtilization = seatUtilization(licenses)

	horizonEnd := now.AddDate(0, 0, a.horizon)
	active := 0
	for _, asset := range assets {
		if asset.Status == "available" || asset.Status == "deployed" {
			active++
		}
		// Recomputed from the asset snapshot rather than cached alerts.
		if asset.WarrantyExpires != nil && withinWindow(*asset.WarrantyExpires, now, horizonEnd) {
			metrics.WarrantyExpiringCount++
		}
	}
	if len(assets) > 0 {
		metrics.AssetActiveRatio = float64(active) / float64(len(assets)) * 100
	}

	return metrics, nil
}

// overallScore is the compliant ratio over the full check history, 100
// when no checks exist yet.
func overallScore(checks []domain.ComplianceCheck) int {
	if len(checks) == 0 {
		return 100
	}
	compliant := 0
	for _, c := range checks {
		if c.Status == domain.CheckCompliant {
			compliant++
		}
	}
	return compliant * 100 / len(checks)
}

func seatUtilization(licenses []domain.License) float64 {
	totalSeats, usedSeats := 0, 0
	for _, l := range licenses {
		totalSeats += l.Seats
		usedSeats += l.UsedSeats()
	}
	if totalSeats == 0 {
		return 0
	}
	return float64(usedSeats) / float64(totalSeats) * 100
}

func checksByCategory(checks []domain.ComplianceCheck) map[string]domain.CategoryChecks {
	byCategory := make(map[string]domain.CategoryChecks, len(domain.CheckCategories))
	for _, category := range domain.CheckCategories {
		byCategory[category] = domain.CategoryChecks{}
	}
	for _, c := range checks {
		counts, ok := byCategory[c.Type]
		if !ok {
			// Types outside the fixed category set are not reported.
			continue
		}
		counts.Total++
		if c.Status == domain.CheckCompliant {
			counts.Compliant++
		}
		byCategory[c.Type] = counts
	}
	return byCategory
}
