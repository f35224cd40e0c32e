package domain

import "time"

// ReportType selects an audit report shape. Unknown values fall through
// to the comprehensive report.
type ReportType string

const (
	ReportLicenseAudit       ReportType = "license-audit"
	ReportAssetAudit         ReportType = "asset-audit"
	ReportSecurityCompliance ReportType = "security-compliance"
	ReportPolicyViolations   ReportType = "policy-violations"
	ReportComprehensive      ReportType = "comprehensive"
)

// ReportDocument is a complete audit report: a summary block plus bounded
// detail sections.
type ReportDocument struct {
	Type        ReportType
	Title       string
	GeneratedAt time.Time
	Summary     map[string]any
	Sections    []ReportSection
}

// ReportSection groups detail rows under a heading.
type ReportSection struct {
	Title   string
	Details []ReportDetail
}

// ReportDetail is one row within a section.
type ReportDetail struct {
	Name        string
	Value       any
	Description string
}
