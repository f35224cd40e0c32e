package api

import "time"

type Violation struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	DetectedAt  time.Time `json:"detected_date"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Status      string    `json:"status"`
}

type Alert struct {
	Id         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	Read       bool   `json:"read"`
	EntityId   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
}

// ScanResponse is the payload returned by the compliance scan trigger.
// PolicyViolations serializes as an empty array, never null.
type ScanResponse struct {
	LicenseViolations []Violation `json:"licenseViolations"`
	WarrantyAlerts    []Alert     `json:"warrantyAlerts"`
	PolicyViolations  []Violation `json:"policyViolations"`
	ComplianceScore   int         `json:"complianceScore"`
	Timestamp         time.Time   `json:"timestamp"`
}

type CategoryChecks struct {
	Total     int `json:"total"`
	Compliant int `json:"compliant"`
}

type MetricsResponse struct {
	OverallScore          int                       `json:"overallScore"`
	OpenViolations        int                       `json:"openViolations"`
	CriticalViolations    int                       `json:"criticalViolations"`
	SeatUtilization       float64                   `json:"seatUtilization"`
	AssetActiveRatio      float64                   `json:"assetActiveRatio"`
	WarrantyExpiringCount int                       `json:"warrantyExpiringCount"`
	ChecksByCategory      map[string]CategoryChecks `json:"checksByCategory"`
	ViolationsLast30Days  int                       `json:"violationsLast30Days"`
	LastUpdated           time.Time                 `json:"lastUpdated"`
}

// ErrorResponse is the generic failure document; handlers never let a raw
// internal error escape to the caller.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
