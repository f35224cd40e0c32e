package domain

import "time"

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	return "Unknown"
}

type ViolationStatus string

const (
	ViolationOpen     ViolationStatus = "Open"
	ViolationResolved ViolationStatus = "Resolved"
)

// Violation is a persisted record of a detected compliance breach.
// The scanner creates these; external workflows flip Status later.
type Violation struct {
	ID          string
	Type        string
	Severity    Severity
	Description string
	DetectedAt  time.Time
	AssignedTo  string
	Status      ViolationStatus
}

type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "low"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityHigh   AlertPriority = "high"
)

type Alert struct {
	ID         string
	Type       string
	Title      string
	Message    string
	Priority   AlertPriority
	Read       bool
	EntityID   string
	EntityType string
}

type CheckStatus string

const (
	CheckCompliant    CheckStatus = "Compliant"
	CheckNonCompliant CheckStatus = "Non-Compliant"
)

// ComplianceCheck is one row of append-only scan history. A new row is
// written per scan invocation; rows are never updated in place.
type ComplianceCheck struct {
	ID          string
	Type        string
	Status      CheckStatus
	LastChecked time.Time
	NextCheck   time.Time
	Auditor     string
	Notes       string
}

// ScanResult is the outcome of a single compliance scan. PolicyViolations
// is always empty under the current rule set but stays in the contract so
// future rules have a place to land.
type ScanResult struct {
	LicenseViolations []Violation
	WarrantyAlerts    []Alert
	PolicyViolations  []Violation
	ComplianceScore   int
	Timestamp         time.Time
}

// ComplianceMetrics holds derived statistics over stored compliance data.
// OverallScore is the historical check ratio; it uses different arithmetic
// than the per-scan score and the two are not expected to agree.
type ComplianceMetrics struct {
	OverallScore          int
	OpenViolations        int
	CriticalViolations    int
	SeatUtilization       float64
	AssetActiveRatio      float64
	WarrantyExpiringCount int
	ChecksByCategory      map[string]CategoryChecks
	ViolationsLast30Days  int
	LastUpdated           time.Time
}

type CategoryChecks struct {
	Total     int
	Compliant int
}

// CheckCategories is the fixed category set the aggregator reports on.
var CheckCategories = []string{"License", "Security", "Regulatory", "Policy Compliance"}
