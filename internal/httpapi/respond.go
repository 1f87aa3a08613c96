package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/fault"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError translates domain error codes to HTTP statuses. Unclassified
// errors become 500s with a generic body so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch fault.CodeOf(err) {
	case fault.CodeInvalidInput:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case fault.CodeNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case fault.CodeUpstream:
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// decodeJSON decodes a request body into a validatable payload and runs its
// validation, reporting failures to the client. The bool reports usability.
func decodeJSON[T interface{ Validate() error }](w http.ResponseWriter, r *http.Request, dst T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	if err := dst.Validate(); err != nil {
		writeError(w, err)
		return false
	}
	return true
}
