package api

import "time"

// ReportRequest is the body of the audit report trigger.
type ReportRequest struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type ReportDetail struct {
	Name        string `json:"name"`
	Value       any    `json:"value"`
	Description string `json:"description,omitempty"`
}

type ReportSection struct {
	Title   string         `json:"title"`
	Details []ReportDetail `json:"details"`
}

type ReportDocument struct {
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Summary     map[string]any  `json:"summary"`
	Sections    []ReportSection `json:"sections"`
}

type ActivityEntry struct {
	Id           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
