package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"fincalc-agent/service"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Details []string `json:"details,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	// Encode into a buffer first so a failure does not leave a half-written 200.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, body ErrorBody) {
	writeJSON(w, status, errorResponse{Error: body})
}

// writeServiceError maps validation failures to 400 and anything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if verr, ok := service.AsValidation(err); ok {
		writeError(w, http.StatusBadRequest, ErrorBody{
			Code:    string(verr.Code),
			Message: verr.Message,
			Field:   verr.Field,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, ErrorBody{Code: "INTERNAL", Message: "internal server error"})
}

// decodeRequest enforces POST, checks the body against schema and decodes
// it into dst. It writes the error response itself and reports false on
// failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, dst any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, ErrorBody{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
		return false
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, ErrorBody{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"})
		return false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, ErrorBody{Code: "BODY_TOO_LARGE", Message: "request body too large"})
		return false
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorBody{Code: "INVALID_JSON", Message: "invalid request body"})
		return false
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.Field()+": "+e.Description())
		}
		writeError(w, http.StatusBadRequest, ErrorBody{Code: "SCHEMA_VIOLATION", Message: "request does not match schema", Details: details})
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorBody{Code: "INVALID_JSON", Message: "invalid request body"})
		return false
	}
	return true
}
