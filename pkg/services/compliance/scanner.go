package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ScannerSettings contains configurable thresholds for compliance scans.
type ScannerSettings struct {
	// ExpiryHorizonDays is the forward window for expiry alerts, inclusive (default: 30)
	ExpiryHorizonDays int
	// IssuePenalty is the score deduction per issue found (default: 10)
	IssuePenalty int
	// NextCheckDays schedules the follow-up check (default: 90)
	NextCheckDays int
	// Auditor is recorded on the appended compliance check (default: "system")
	Auditor string
}

// DefaultScannerSettings returns the default scan configuration.
func DefaultScannerSettings() ScannerSettings {
	return ScannerSettings{
		ExpiryHorizonDays: 30,
		IssuePenalty:      10,
		NextCheckDays:     90,
		Auditor:           "system",
	}
}

// InventoryReader is the slice of the storage collaborator the scanner
// and aggregator read from.
type InventoryReader interface {
	GetLicenses(ctx context.Context) ([]domain.License, error)
	GetAssets(ctx context.Context) ([]domain.Asset, error)
}

// ComplianceWriter persists scan side effects.
type ComplianceWriter interface {
	AddViolation(ctx context.Context, v domain.Violation) error
	AddAlert(ctx context.Context, a domain.Alert) error
	AddCheck(ctx context.Context, c domain.ComplianceCheck) error
}

// Effect is one pending storage mutation produced by an evaluation pass.
// Exactly one field is set.
type Effect struct {
	InsertViolation *domain.Violation
	InsertAlert     *domain.Alert
	InsertCheck     *domain.ComplianceCheck
}

// Evaluation is the outcome of a pure rule pass: the findings grouped by
// kind, the per-scan score, and the ordered effect list to apply.
// PolicyViolations is always empty under the current rule set; the field
// stays so future rules have a place to land.
type Evaluation struct {
	LicenseViolations []domain.Violation
	WarrantyAlerts    []domain.Alert
	PolicyViolations  []domain.Violation
	Score             int
	Effects           []Effect
}

// Evaluate runs the rule set against a license/asset snapshot without
// touching storage. Rules:
//   - seats_used > seats_total: one High License Overuse violation with
//     the overage amount
//   - license expiry within the horizon (inclusive): high-priority
//     "License Expiring Soon" alert
//   - asset warranty expiry within the horizon (inclusive):
//     medium-priority "Warranty Expiring Soon" alert
//
// The score counts only issues found in this pass; violations persisted
// by earlier runs do not feed into it.
func Evaluate(licenses []domain.License, assets []domain.Asset, now time.Time, settings ScannerSettings) Evaluation {
	eval := Evaluation{
		LicenseViolations: []domain.Violation{},
		WarrantyAlerts:    []domain.Alert{},
		PolicyViolations:  []domain.Violation{},
	}
	horizon := now.AddDate(0, 0, settings.ExpiryHorizonDays)

	for _, l := range licenses {
		if l.UsedSeats() > l.Seats {
			overage := l.UsedSeats() - l.Seats
			v := domain.Violation{
				ID:       uuid.NewString(),
				Type:     "License Overuse",
				Severity: domain.SeverityHigh,
				Description: fmt.Sprintf("License %q is over-deployed by %d seat(s): %d used of %d total",
					l.Name, overage, l.UsedSeats(), l.Seats),
				DetectedAt: now,
				Status:     domain.ViolationOpen,
			}
			eval.LicenseViolations = append(eval.LicenseViolations, v)
			eval.Effects = append(eval.Effects, Effect{InsertViolation: &v})
		}

		if l.ExpiryDate != nil && withinWindow(*l.ExpiryDate, now, horizon) {
			a := domain.Alert{
				ID:       uuid.NewString(),
				Type:     "license_expiry",
				Title:    "License Expiring Soon",
				Message:  fmt.Sprintf("License %q expires on %s", l.Name, l.ExpiryDate.Format("2006-01-02")),
				Priority: domain.AlertPriorityHigh,
				EntityID: l.ID, EntityType: "license",
			}
			eval.Effects = append(eval.Effects, Effect{InsertAlert: &a})
		}
	}

	for _, a := range assets {
		if a.WarrantyExpires != nil && withinWindow(*a.WarrantyExpires, now, horizon) {
			alert := domain.Alert{
				ID:       uuid.NewString(),
				Type:     "warranty_expiry",
				Title:    "Warranty Expiring Soon",
				Message:  fmt.Sprintf("Warranty for asset %q expires on %s", a.Name, a.WarrantyExpires.Format("2006-01-02")),
				Priority: domain.AlertPriorityMedium,
				EntityID: a.ID, EntityType: "asset",
			}
			eval.WarrantyAlerts = append(eval.WarrantyAlerts, alert)
			eval.Effects = append(eval.Effects, Effect{InsertAlert: &alert})
		}
	}

	totalIssues := len(eval.LicenseViolations) + len(eval.WarrantyAlerts)
	eval.Score = scoreFor(totalIssues, settings.IssuePenalty)
	return eval
}

func scoreFor(totalIssues, penalty int) int {
	if totalIssues == 0 {
		return 100
	}
	score := 100 - penalty*totalIssues
	if score < 0 {
		return 0
	}
	return score
}

// withinWindow reports whether t falls in [now, horizon], both inclusive.
func withinWindow(t, now, horizon time.Time) bool {
	return !t.Before(now) && !t.After(horizon)
}

// Scanner runs compliance scans against the inventory and persists the
// findings.
type Scanner struct {
	inventory InventoryReader
	store     ComplianceWriter
	settings  ScannerSettings
	now       func() time.Time
}

func NewScanner(inventory InventoryReader, store ComplianceWriter, settings ScannerSettings) *Scanner {
	return &Scanner{
		inventory: inventory,
		store:     store,
		settings:  settings,
		now:       time.Now,
	}
}

// WithClock overrides the scanner's time source.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Scan evaluates the current license/asset snapshot and applies the
// resulting effects one at a time, in discovery order, with no
// transaction boundary: an insert failing partway leaves earlier inserts
// committed. A failed insert is logged and the scan carries on; only an
// unreachable store (reads failing) fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, scope string) (domain.ScanResult, error) {
	logger := zerolog.Ctx(ctx)
	now := s.now()

	licenses, err := s.inventory.GetLicenses(ctx)
	if err != nil {
		return domain.ScanResult{}, &InfraError{Op: "read licenses", Err: err}
	}
	assets, err := s.inventory.GetAssets(ctx)
	if err != nil {
		return domain.ScanResult{}, &InfraError{Op: "read assets", Err: err}
	}

	eval := Evaluate(licenses, assets, now, s.settings)

	check := s.checkFor(eval, scope, now)
	effects := append(eval.Effects, Effect{InsertCheck: &check})

	for _, effect := range effects {
		if err := s.apply(ctx, effect); err != nil {
			logger.Error().Err(err).Msg("failed to persist scan effect")
		}
	}

	return domain.ScanResult{
		LicenseViolations: eval.LicenseViolations,
		WarrantyAlerts:    eval.WarrantyAlerts,
		PolicyViolations:  eval.PolicyViolations,
		ComplianceScore:   eval.Score,
		Timestamp:         now,
	}, nil
}

func (s *Scanner) apply(ctx context.Context, effect Effect) error {
	switch {
	case effect.InsertViolation != nil:
		return s.store.AddViolation(ctx, *effect.InsertViolation)
	case effect.InsertAlert != nil:
		return s.store.AddAlert(ctx, *effect.InsertAlert)
	case effect.InsertCheck != nil:
		return s.store.AddCheck(ctx, *effect.InsertCheck)
	}
	return nil
}

// checkFor builds the append-only history row summarizing this run.
func (s *Scanner) checkFor(eval Evaluation, scope string, now time.Time) domain.ComplianceCheck {
	status := domain.CheckCompliant
	if len(eval.LicenseViolations)+len(eval.WarrantyAlerts) > 0 {
		status = domain.CheckNonCompliant
	}
	return domain.ComplianceCheck{
		ID:          uuid.NewString(),
		Type:        checkTypeFor(scope),
		Status:      status,
		LastChecked: now,
		NextCheck:   now.AddDate(0, 0, s.settings.NextCheckDays),
		Auditor:     s.settings.Auditor,
		Notes: fmt.Sprintf("Automated %s scan: %d license violation(s), %d warranty alert(s), score %d",
			scope, len(eval.LicenseViolations), len(eval.WarrantyAlerts), eval.Score),
	}
}

// checkTypeFor maps a scan scope onto the fixed check category set. The
// automated rule set is license-centric; other categories are written by
// external workflows.
func checkTypeFor(scope string) string {
	switch scope {
	case "", "full", "license":
		return "License"
	case "security":
		return "Security"
	case "regulatory":
		return "Regulatory"
	case "policy":
		return "Policy Compliance"
	default:
		return "License"
	}
}
