package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/asset-atlas/pkg/export"
	"github.com/de-tools/asset-atlas/pkg/handlers/respond"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Exporter runs one export against a sink.
type Exporter interface {
	Export(ctx context.Context, entity export.EntityType, format export.Format, sink export.Sink) error
}

type Handler struct {
	exporter Exporter
	// bulkSink receives the "all" fan-out; a single HTTP response can
	// only carry one file. Nil means bulk export is disabled.
	bulkSink export.Sink
}

func NewHandler(exporter Exporter, bulkSink export.Sink) *Handler {
	return &Handler{exporter: exporter, bulkSink: bulkSink}
}

// Export streams one entity collection as a file download. The "all"
// selector fans out to the configured bulk sink instead, since one
// response body cannot hold eight attachments.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	entity := export.EntityType(chi.URLParam(r, "entity"))
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	if entity == export.EntityAll {
		if h.bulkSink == nil {
			respond.Error(w, r, http.StatusBadRequest, "bulk export not configured",
				"the all selector requires an export destination")
			return
		}
		if err := h.exporter.Export(ctx, entity, format, h.bulkSink); err != nil {
			logger.Error().Err(err).Msg("bulk export failed")
			respond.Error(w, r, http.StatusInternalServerError, "bulk export failed", "internal error")
			return
		}
		respond.JSON(w, r, http.StatusAccepted, map[string]string{"status": "delivered"})
		return
	}

	sink := &responseSink{w: w}
	err := h.exporter.Export(ctx, entity, format, sink)
	switch {
	case errors.Is(err, export.ErrNoData):
		// Empty collection is a notice, not a failure; no file produced.
		respond.Error(w, r, http.StatusNotFound, "no data to export", fmt.Sprintf("the %s collection is empty", entity))
	case err != nil:
		logger.Error().Err(err).Str("entity", string(entity)).Msg("export failed")
		if !sink.delivered {
			respond.Error(w, r, http.StatusInternalServerError, "export failed", "internal error")
		}
	case !sink.delivered:
		// Unknown entity type is a no-op by contract.
		respond.Error(w, r, http.StatusNotFound, "unknown entity type", fmt.Sprintf("%q is not exportable", entity))
	}
}

// responseSink writes a single export file as an HTTP attachment.
type responseSink struct {
	w         http.ResponseWriter
	delivered bool
}

func (s *responseSink) Deliver(_ context.Context, file export.File) error {
	s.w.Header().Set("Content-Type", file.MediaType)
	s.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	if _, err := s.w.Write(file.Data); err != nil {
		return err
	}
	s.delivered = true
	return nil
}
