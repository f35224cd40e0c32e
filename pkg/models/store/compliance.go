package store

import (
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

type ViolationRecord struct {
	ID           string
	Type         string
	Severity     int
	Description  string
	DetectedDate time.Time
	AssignedTo   string
	Status       string
}

type AlertRecord struct {
	ID         string
	Type       string
	Title      string
	Message    string
	Priority   string
	Read       bool
	EntityID   string
	EntityType string
}

type ComplianceCheckRecord struct {
	ID          string
	Type        string
	Status      string
	LastChecked time.Time
	NextCheck   time.Time
	Auditor     string
	Notes       string
}

type ActivityRecord struct {
	ID           string
	Action       string
	ResourceType string
	ResourceID   string
	Details      string
	CreatedAt    time.Time
}

func MapViolation(r ViolationRecord) domain.Violation {
	return domain.Violation{
		ID:          r.ID,
		Type:        r.Type,
		Severity:    domain.Severity(r.Severity),
		Description: r.Description,
		DetectedAt:  r.DetectedDate,
		AssignedTo:  r.AssignedTo,
		Status:      domain.ViolationStatus(r.Status),
	}
}

func ViolationToRecord(v domain.Violation) ViolationRecord {
	return ViolationRecord{
		ID:           v.ID,
		Type:         v.Type,
		Severity:     int(v.Severity),
		Description:  v.Description,
		DetectedDate: v.DetectedAt,
		AssignedTo:   v.AssignedTo,
		Status:       string(v.Status),
	}
}

func MapAlert(r AlertRecord) domain.Alert {
	return domain.Alert{
		ID:         r.ID,
		Type:       r.Type,
		Title:      r.Title,
		Message:    r.Message,
		Priority:   domain.AlertPriority(r.Priority),
		Read:       r.Read,
		EntityID:   r.EntityID,
		EntityType: r.EntityType,
	}
}

func AlertToRecord(a domain.Alert) AlertRecord {
	return AlertRecord{
		ID:         a.ID,
		Type:       a.Type,
		Title:      a.Title,
		Message:    a.Message,
		Priority:   string(a.Priority),
		Read:       a.Read,
		EntityID:   a.EntityID,
		EntityType: a.EntityType,
	}
}

func MapCheck(r ComplianceCheckRecord) domain.ComplianceCheck {
	return domain.ComplianceCheck{
		ID:          r.ID,
		Type:        r.Type,
		Status:      domain.CheckStatus(r.Status),
		LastChecked: r.LastChecked,
		NextCheck:   r.NextCheck,
		Auditor:     r.Auditor,
		Notes:       r.Notes,
	}
}

func CheckToRecord(c domain.ComplianceCheck) ComplianceCheckRecord {
	return ComplianceCheckRecord{
		ID:          c.ID,
		Type:        c.Type,
		Status:      string(c.Status),
		LastChecked: c.LastChecked,
		NextCheck:   c.NextCheck,
		Auditor:     c.Auditor,
		Notes:       c.Notes,
	}
}

func MapActivity(r ActivityRecord) domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:           r.ID,
		Action:       r.Action,
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		Details:      r.Details,
		CreatedAt:    r.CreatedAt,
	}
}
