package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/asset-atlas/pkg/adapters"
	"github.com/de-tools/asset-atlas/pkg/handlers/respond"
	"github.com/de-tools/asset-atlas/pkg/models/api"
	"github.com/de-tools/asset-atlas/pkg/models/domain"
	compliancesvc "github.com/de-tools/asset-atlas/pkg/services/compliance"
	"github.com/rs/zerolog"
)

// Scanner runs a compliance scan.
type Scanner interface {
	Scan(ctx context.Context, scope string) (domain.ScanResult, error)
}

// Aggregator computes compliance metrics.
type Aggregator interface {
	ComputeMetrics(ctx context.Context) (domain.ComplianceMetrics, error)
}

// ReportBuilder builds audit report documents.
type ReportBuilder interface {
	BuildReport(ctx context.Context, reportType domain.ReportType, params map[string]any) (domain.ReportDocument, error)
}

// ActivityReader lists recent audit-log entries.
type ActivityReader interface {
	GetActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type Handler struct {
	scanner    Scanner
	aggregator Aggregator
	builder    ReportBuilder
	activity   ActivityReader
}

func NewHandler(scanner Scanner, aggregator Aggregator, builder ReportBuilder, activity ActivityReader) *Handler {
	return &Handler{
		scanner:    scanner,
		aggregator: aggregator,
		builder:    builder,
		activity:   activity,
	}
}

// Scan triggers a compliance scan. The optional `type` query parameter
// defaults to "full".
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	scope := r.URL.Query().Get("type")
	if scope == "" {
		scope = "full"
	}

	result, err := h.scanner.Scan(ctx, scope)
	if err != nil {
		logger.Error().Err(err).Str("scope", scope).Msg("compliance scan failed")
		respond.Error(w, r, http.StatusInternalServerError, "compliance scan failed", "storage unavailable")
		return
	}

	respond.JSON(w, r, http.StatusOK, adapters.MapScanResultDomainToApi(result))
}

// Metrics serves the aggregated compliance statistics.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	metrics, err := h.aggregator.ComputeMetrics(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute compliance metrics")
		respond.Error(w, r, http.StatusInternalServerError, "failed to compute metrics", "storage unavailable")
		return
	}

	respond.JSON(w, r, http.StatusOK, adapters.MapMetricsDomainToApi(metrics))
}

// AuditReport builds the report selected by the request body. Unknown
// types build the comprehensive report rather than failing.
func (h *Handler) AuditReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid report request", "body must be JSON with a type field")
		return
	}

	doc, err := h.builder.BuildReport(ctx, domain.ReportType(req.Type), req.Parameters)
	if err != nil {
		logger.Error().Err(err).Str("type", req.Type).Msg("failed to build audit report")
		details := "internal error"
		var infra *compliancesvc.InfraError
		if errors.As(err, &infra) {
			details = "storage unavailable"
		}
		respond.Error(w, r, http.StatusInternalServerError, "failed to build report", details)
		return
	}

	respond.JSON(w, r, http.StatusOK, adapters.MapReportDocumentDomainToApi(doc))
}

// Activity lists recent audit-log entries.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	entries, err := h.activity.GetActivity(ctx, 50)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read activity log")
		respond.Error(w, r, http.StatusInternalServerError, "failed to read activity log", "storage unavailable")
		return
	}

	response := make([]api.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapActivityDomainToApi(e))
	}
	respond.JSON(w, r, http.StatusOK, response)
}
