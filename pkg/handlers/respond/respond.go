package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/de-tools/asset-atlas/pkg/models/api"
	"github.com/rs/zerolog"
)

// JSON writes v as a JSON body. Encoding failures are logged, not
// surfaced: headers are already gone by then.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	logger := zerolog.Ctx(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// Error writes the generic failure document. Raw internal errors stay in
// the log; the caller sees only the message and details provided here.
func Error(w http.ResponseWriter, r *http.Request, status int, message, details string) {
	JSON(w, r, status, api.ErrorResponse{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
