package domain

import "time"

// ActivityEntry is one audit-log row recording a report generation or
// other tracked action.
type ActivityEntry struct {
	ID           string
	Action       string // generate_report, scan
	ResourceType string
	ResourceID   string
	Details      string
	CreatedAt    time.Time
}
