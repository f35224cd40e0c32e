package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/de-tools/asset-atlas/pkg/services/compliance"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Detail caps bound report size; collections larger than the cap are
// truncated, with the full count still reported in the summary block.
const (
	maxEntityDetails        = 50  // assets/licenses per section
	maxHistoryDetails       = 20  // checks/violations in the comprehensive report
	maxViolationDetails     = 100 // violations in the policy-violations report
	expiryHorizonDays       = 30
	reportGeneratedActivity = "generate_report"
)

// InventoryReader is the slice of the storage collaborator report
// building reads from.
type InventoryReader interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	GetLicenses(ctx context.Context) ([]domain.License, error)
}

// ComplianceReader mirrors the aggregator's read surface.
type ComplianceReader interface {
	GetChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
	GetViolations(ctx context.Context) ([]domain.Violation, error)
}

// ActivityWriter appends audit-log rows.
type ActivityWriter interface {
	AddActivity(ctx context.Context, entry domain.ActivityEntry) error
}

type buildFunc func(ctx context.Context, params map[string]any) (domain.ReportDocument, error)

// Builder assembles audit report documents. Report types dispatch through
// a closed table; anything unrecognized builds the comprehensive report.
type Builder struct {
	inventory  InventoryReader
	compliance ComplianceReader
	activity   ActivityWriter
	now        func() time.Time
	builders   map[domain.ReportType]buildFunc
}

func NewBuilder(inventory InventoryReader, compliance ComplianceReader, activity ActivityWriter) *Builder {
	b := &Builder{
		inventory:  inventory,
		compliance: compliance,
		activity:   activity,
		now:        time.Now,
	}
	b.builders = map[domain.ReportType]buildFunc{
		domain.ReportLicenseAudit:       b.buildLicenseAudit,
		domain.ReportAssetAudit:         b.buildAssetAudit,
		domain.ReportSecurityCompliance: b.buildSecurityCompliance,
		domain.ReportPolicyViolations:   b.buildPolicyViolations,
		domain.ReportComprehensive:      b.buildComprehensive,
	}
	return b
}

// WithClock overrides the builder's time source.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// BuildReport produces the document for one report type. An activity-log
// entry is appended first, so the generation attempt is recorded even
// when the build itself fails later.
func (b *Builder) BuildReport(ctx context.Context, reportType domain.ReportType, params map[string]any) (domain.ReportDocument, error) {
	logger := zerolog.Ctx(ctx)

	build, ok := b.builders[reportType]
	if !ok {
		reportType = domain.ReportComprehensive
		build = b.buildComprehensive
	}

	entry := domain.ActivityEntry{
		ID:           uuid.NewString(),
		Action:       reportGeneratedActivity,
		ResourceType: "report",
		Details:      fmt.Sprintf("Generated %s report", reportType),
		CreatedAt:    b.now(),
	}
	if err := b.activity.AddActivity(ctx, entry); err != nil {
		logger.Error().Err(err).Msg("failed to record report activity")
	}

	return build(ctx, params)
}

func (b *Builder) buildLicenseAudit(ctx context.Context, _ map[string]any) (domain.ReportDocument, error) {
	licenses, err := b.inventory.GetLicenses(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read licenses", Err: err}
	}

	now := b.now()
	horizon := now.AddDate(0, 0, expiryHorizonDays)
	totalSeats, usedSeats, overused, expiring := 0, 0, 0, 0
	for _, l := range licenses {
		totalSeats += l.Seats
		usedSeats += l.UsedSeats()
		if l.UsedSeats() > l.Seats {
			overused++
		}
		if l.ExpiryDate != nil && !l.ExpiryDate.Before(now) && !l.ExpiryDate.After(horizon) {
			expiring++
		}
	}

	doc := domain.ReportDocument{
		Type:        domain.ReportLicenseAudit,
		Title:       "License Audit Report",
		GeneratedAt: now,
		Summary: map[string]any{
			"total_licenses": len(licenses),
			"total_seats":    totalSeats,
			"used_seats":     usedSeats,
			"overused":       overused,
			"expiring_soon":  expiring,
			"utilization":    ratio(usedSeats, totalSeats),
		},
	}

	section := domain.ReportSection{Title: "Licenses"}
	for _, l := range capLicenses(licenses, maxEntityDetails) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        l.Name,
			Value:       fmt.Sprintf("%d/%d seats", l.UsedSeats(), l.Seats),
			Description: expiryNote(l.ExpiryDate),
		})
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

func (b *Builder) buildAssetAudit(ctx context.Context, _ map[string]any) (domain.ReportDocument, error) {
	assets, err := b.inventory.GetAssets(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read assets", Err: err}
	}

	now := b.now()
	horizon := now.AddDate(0, 0, expiryHorizonDays)
	byStatus := map[string]int{}
	active, warrantyExpiring := 0, 0
	for _, a := range assets {
		byStatus[a.Status]++
		if a.Status == "available" || a.Status == "deployed" {
			active++
		}
		if a.WarrantyExpires != nil && !a.WarrantyExpires.Before(now) && !a.WarrantyExpires.After(horizon) {
			warrantyExpiring++
		}
	}

	doc := domain.ReportDocument{
		Type:        domain.ReportAssetAudit,
		Title:       "Asset Audit Report",
		GeneratedAt: now,
		Summary: map[string]any{
			"total_assets":      len(assets),
			"active":            active,
			"active_ratio":      ratio(active, len(assets)),
			"warranty_expiring": warrantyExpiring,
			"by_status":         byStatus,
		},
	}

	section := domain.ReportSection{Title: "Assets"}
	for _, a := range capAssets(assets, maxEntityDetails) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        a.Name,
			Value:       a.Status,
			Description: fmt.Sprintf("tag %s, category %s", a.Tag, a.Category),
		})
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

func (b *Builder) buildSecurityCompliance(ctx context.Context, _ map[string]any) (domain.ReportDocument, error) {
	checks, err := b.compliance.GetChecks(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read checks", Err: err}
	}

	compliant := 0
	byCategory := map[string]int{}
	for _, c := range checks {
		byCategory[c.Type]++
		if c.Status == domain.CheckCompliant {
			compliant++
		}
	}

	doc := domain.ReportDocument{
		Type:        domain.ReportSecurityCompliance,
		Title:       "Security Compliance Report",
		GeneratedAt: b.now(),
		Summary: map[string]any{
			"total_checks":     len(checks),
			"compliant":        compliant,
			"compliance_ratio": ratio(compliant, len(checks)),
			"by_category":      byCategory,
		},
	}

	section := domain.ReportSection{Title: "Recent Checks"}
	for _, c := range capChecks(checks, maxHistoryDetails) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        c.Type,
			Value:       string(c.Status),
			Description: c.Notes,
		})
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

func (b *Builder) buildPolicyViolations(ctx context.Context, _ map[string]any) (domain.ReportDocument, error) {
	violations, err := b.compliance.GetViolations(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read violations", Err: err}
	}

	open := 0
	bySeverity := map[string]int{}
	for _, v := range violations {
		bySeverity[v.Severity.String()]++
		if v.Status == domain.ViolationOpen {
			open++
		}
	}

	doc := domain.ReportDocument{
		Type:        domain.ReportPolicyViolations,
		Title:       "Policy Violations Report",
		GeneratedAt: b.now(),
		Summary: map[string]any{
			"total_violations": len(violations),
			"open":             open,
			"by_severity":      bySeverity,
		},
	}

	section := domain.ReportSection{Title: "Violations"}
	for _, v := range capViolations(violations, maxViolationDetails) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        v.Type,
			Value:       string(v.Status),
			Description: v.Description,
		})
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

func (b *Builder) buildComprehensive(ctx context.Context, params map[string]any) (domain.ReportDocument, error) {
	assets, err := b.inventory.GetAssets(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read assets", Err: err}
	}
	licenses, err := b.inventory.GetLicenses(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read licenses", Err: err}
	}
	checks, err := b.compliance.GetChecks(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read checks", Err: err}
	}
	violations, err := b.compliance.GetViolations(ctx)
	if err != nil {
		return domain.ReportDocument{}, &compliance.InfraError{Op: "read violations", Err: err}
	}

	compliant := 0
	for _, c := range checks {
		if c.Status == domain.CheckCompliant {
			compliant++
		}
	}
	open := 0
	for _, v := range violations {
		if v.Status == domain.ViolationOpen {
			open++
		}
	}

	doc := domain.ReportDocument{
		Type:        domain.ReportComprehensive,
		Title:       "Comprehensive Audit Report",
		GeneratedAt: b.now(),
		Summary: map[string]any{
			"total_assets":     len(assets),
			"total_licenses":   len(licenses),
			"total_checks":     len(checks),
			"compliance_ratio": ratio(compliant, len(checks)),
			"open_violations":  open,
		},
	}

	assetSection := domain.ReportSection{Title: "Assets"}
	for _, a := range capAssets(assets, maxEntityDetails) {
		assetSection.Details = append(assetSection.Details, domain.ReportDetail{Name: a.Name, Value: a.Status})
	}
	licenseSection := domain.ReportSection{Title: "Licenses"}
	for _, l := range capLicenses(licenses, maxEntityDetails) {
		licenseSection.Details = append(licenseSection.Details, domain.ReportDetail{
			Name:  l.Name,
			Value: fmt.Sprintf("%d/%d seats", l.UsedSeats(), l.Seats),
		})
	}
	checkSection := domain.ReportSection{Title: "Compliance Checks"}
	for _, c := range capChecks(checks, maxHistoryDetails) {
		checkSection.Details = append(checkSection.Details, domain.ReportDetail{Name: c.Type, Value: string(c.Status)})
	}
	violationSection := domain.ReportSection{Title: "Violations"}
	for _, v := range capViolations(violations, maxHistoryDetails) {
		violationSection.Details = append(violationSection.Details, domain.ReportDetail{
			Name:        v.Type,
			Value:       string(v.Status),
			Description: v.Description,
		})
	}

	doc.Sections = append(doc.Sections, assetSection, licenseSection, checkSection, violationSection)
	return doc, nil
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func expiryNote(t *time.Time) string {
	if t == nil {
		return "no expiry"
	}
	return "expires " + t.Format("2006-01-02")
}

func capAssets(assets []domain.Asset, limit int) []domain.Asset {
	if len(assets) > limit {
		return assets[:limit]
	}
	return assets
}

func capLicenses(licenses []domain.License, limit int) []domain.License {
	if len(licenses) > limit {
		return licenses[:limit]
	}
	return licenses
}

func capChecks(checks []domain.ComplianceCheck, limit int) []domain.ComplianceCheck {
	if len(checks) > limit {
		return checks[:limit]
	}
	return checks
}

func capViolations(violations []domain.Violation, limit int) []domain.Violation {
	if len(violations) > limit {
		return violations[:limit]
	}
	return violations
}
