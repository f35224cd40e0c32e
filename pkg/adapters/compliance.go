package adapters

import (
	"github.com/de-tools/asset-atlas/pkg/models/api"
	"github.com/de-tools/asset-atlas/pkg/models/domain"
)

func MapViolationDomainToApi(v domain.Violation) api.Violation {
	return api.Violation{
		Id:          v.ID,
		Type:        v.Type,
		Severity:    v.Severity.String(),
		Description: v.Description,
		DetectedAt:  v.DetectedAt,
		AssignedTo:  v.AssignedTo,
		Status:      string(v.Status),
	}
}

func MapViolationsDomainToApi(violations []domain.Violation) []api.Violation {
	out := make([]api.Violation, 0, len(violations))
	for _, v := range violations {
		out = append(out, MapViolationDomainToApi(v))
	}
	return out
}

func MapAlertDomainToApi(a domain.Alert) api.Alert {
	return api.Alert{
		Id:         a.ID,
		Type:       a.Type,
		Title:      a.Title,
		Message:    a.Message,
		Priority:   string(a.Priority),
		Read:       a.Read,
		EntityId:   a.EntityID,
		EntityType: a.EntityType,
	}
}

func MapAlertsDomainToApi(alerts []domain.Alert) []api.Alert {
	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, MapAlertDomainToApi(a))
	}
	return out
}

func MapScanResultDomainToApi(r domain.ScanResult) api.ScanResponse {
	return api.ScanResponse{
		LicenseViolations: MapViolationsDomainToApi(r.LicenseViolations),
		WarrantyAlerts:    MapAlertsDomainToApi(r.WarrantyAlerts),
		PolicyViolations:  MapViolationsDomainToApi(r.PolicyViolations),
		ComplianceScore:   r.ComplianceScore,
		Timestamp:         r.Timestamp,
	}
}

func MapMetricsDomainToApi(m domain.ComplianceMetrics) api.MetricsResponse {
	byCategory := make(map[string]api.CategoryChecks, len(m.ChecksByCategory))
	for category, counts := range m.ChecksByCategory {
		byCategory[category] = api.CategoryChecks{Total: counts.Total, Compliant: counts.Compliant}
	}
	return api.MetricsResponse{
		OverallScore:          m.OverallScore,
		OpenViolations:        m.OpenViolations,
		CriticalViolations:    m.CriticalViolations,
		SeatUtilization:       m.SeatUtilization,
		AssetActiveRatio:      m.AssetActiveRatio,
		WarrantyExpiringCount: m.WarrantyExpiringCount,
		ChecksByCategory:      byCategory,
		ViolationsLast30Days:  m.ViolationsLast30Days,
		LastUpdated:           m.LastUpdated,
	}
}

func MapReportDocumentDomainToApi(doc domain.ReportDocument) api.ReportDocument {
	sections := make([]api.ReportSection, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		details := make([]api.ReportDetail, 0, len(s.Details))
		for _, d := range s.Details {
			details = append(details, api.ReportDetail{
				Name:        d.Name,
				Value:       d.Value,
				Description: d.Description,
			})
		}
		sections = append(sections, api.ReportSection{Title: s.Title, Details: details})
	}
	return api.ReportDocument{
		Type:        string(doc.Type),
		Title:       doc.Title,
		GeneratedAt: doc.GeneratedAt,
		Summary:     doc.Summary,
		Sections:    sections,
	}
}

func MapActivityDomainToApi(e domain.ActivityEntry) api.ActivityEntry {
	return api.ActivityEntry{
		Id:           e.ID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		CreatedAt:    e.CreatedAt,
	}
}
