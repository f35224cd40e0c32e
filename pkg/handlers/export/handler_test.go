package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	exportpkg "github.com/de-tools/asset-atlas/pkg/export"
	"github.com/de-tools/asset-atlas/pkg/models/api"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(
	ctx context.Context,
	entity exportpkg.EntityType,
	format exportpkg.Format,
	sink exportpkg.Sink,
) error {
	args := m.Called(ctx, entity, format, sink)
	return args.Error(0)
}

// deliveringExporter pushes a canned file into whatever sink it is handed.
type deliveringExporter struct {
	file exportpkg.File
}

func (e *deliveringExporter) Export(
	ctx context.Context,
	_ exportpkg.EntityType,
	_ exportpkg.Format,
	sink exportpkg.Sink,
) error {
	return sink.Deliver(ctx, e.file)
}

type recordingSink struct {
	files []exportpkg.File
}

func (s *recordingSink) Deliver(_ context.Context, file exportpkg.File) error {
	s.files = append(s.files, file)
	return nil
}

func serveExport(handler *Handler, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/exports/{entity}", handler.Export)

	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExport_SingleEntity(t *testing.T) {
	t.Run("streams the file as an attachment", func(t *testing.T) {
		exporter := &deliveringExporter{file: exportpkg.File{
			Name:      "assets-2025-06-15.csv",
			MediaType: "text/csv",
			Data:      []byte("Asset Name\nmbp-01\n"),
		}}
		handler := NewHandler(exporter, nil)

		rec := serveExport(handler, "/exports/assets")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="assets-2025-06-15.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Asset Name\nmbp-01\n", rec.Body.String())
	})

	t.Run("format defaults to csv and is forwarded", func(t *testing.T) {
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, exportpkg.EntityAssets, exportpkg.FormatCSV, mock.Anything).
			Return(exportpkg.ErrNoData)
		handler := NewHandler(exporter, nil)

		serveExport(handler, "/exports/assets")

		exporter.AssertExpectations(t)
	})

	t.Run("explicit format is forwarded", func(t *testing.T) {
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, exportpkg.EntityLicenses, exportpkg.FormatExcel, mock.Anything).
			Return(exportpkg.ErrNoData)
		handler := NewHandler(exporter, nil)

		serveExport(handler, "/exports/licenses?format=excel")

		exporter.AssertExpectations(t)
	})

	t.Run("empty collection is a 404 notice, not a file", func(t *testing.T) {
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(exportpkg.ErrNoData)
		handler := NewHandler(exporter, nil)

		rec := serveExport(handler, "/exports/accessories")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var response api.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "no data to export", response.Error)
	})

	t.Run("unknown entity is a 404", func(t *testing.T) {
		// The exporter treats unknown types as a no-op; nothing reaches
		// the sink, so the handler reports the miss.
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, exportpkg.EntityType("widgets"), mock.Anything, mock.Anything).
			Return(nil)
		handler := NewHandler(exporter, nil)

		rec := serveExport(handler, "/exports/widgets")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("exporter failure is a 500", func(t *testing.T) {
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("row generation failed"))
		handler := NewHandler(exporter, nil)

		rec := serveExport(handler, "/exports/assets")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestExport_All(t *testing.T) {
	t.Run("fans out to the bulk sink and acknowledges", func(t *testing.T) {
		bulk := &recordingSink{}
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, exportpkg.EntityAll, exportpkg.FormatCSV, bulk).
			Return(nil)
		handler := NewHandler(exporter, bulk)

		rec := serveExport(handler, "/exports/all")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"status":"delivered"}`, rec.Body.String())
		exporter.AssertExpectations(t)
	})

	t.Run("without a bulk sink the all selector is rejected", func(t *testing.T) {
		exporter := new(mockExporter)
		handler := NewHandler(exporter, nil)

		rec := serveExport(handler, "/exports/all")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		exporter.AssertNotCalled(t, "Export")
	})

	t.Run("bulk delivery failure is a 500", func(t *testing.T) {
		bulk := &recordingSink{}
		exporter := new(mockExporter)
		exporter.On("Export", mock.Anything, exportpkg.EntityAll, exportpkg.FormatCSV, bulk).
			Return(errors.New("bucket unreachable"))
		handler := NewHandler(exporter, bulk)

		rec := serveExport(handler, "/exports/all")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
