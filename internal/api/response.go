package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"pes-mcp/internal/validation"
)

const maxRequestBodySize = 1 << 20

// APIResponse is the envelope of every successful response.
type APIResponse struct {
	Data     interface{} `json:"data"`
	Warnings []string    `json:"warnings,omitempty"`
}

// APIErrorResponse is the envelope of every error response.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the client-facing error.
type ErrorDetail struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// apiError is an error that carries its HTTP status.
type apiError struct {
	status  int
	code    string
	message string
	fields  map[string]string
}

func (e *apiError) Error() string {
	return e.message
}

func newError(status int, code, message string) *apiError {
	return &apiError{status: status, code: code, message: message}
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to marshal response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(APIErrorResponse{Error: ErrorDetail{
			Code:      "internal_error",
			Message:   "failed to marshal response",
			RequestID: middleware.GetReqID(r.Context()),
		}})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error maps err onto a status and writes the error envelope. Validation failures are 400s with
// per-field messages; anything unrecognised is a 500 without internal detail.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	detail := ErrorDetail{RequestID: middleware.GetReqID(r.Context())}
	status := http.StatusInternalServerError

	var apiErr *apiError
	var verr *validation.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.status
		detail.Code = apiErr.code
		detail.Message = apiErr.message
		detail.Fields = apiErr.fields
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		detail.Code = "validation_failed"
		detail.Message = verr.Error()
		detail.Fields = verr.Fields
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled API error")
		detail.Code = "internal_error"
		detail.Message = "an unexpected error occurred"
	}

	JSON(w, r, status, APIErrorResponse{Error: detail})
}

// DecodeJSON reads a single JSON object into dst, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return newError(http.StatusBadRequest, "invalid_json", "request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) *apiError {
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxBytesErr):
		return newError(http.StatusRequestEntityTooLarge, "invalid_json", "request body must not exceed 1MB")
	case errors.As(err, &syntaxErr):
		return newError(http.StatusBadRequest, "invalid_json", "malformed JSON in request body")
	case errors.As(err, &typeErr):
		e := newError(http.StatusBadRequest, "invalid_json", "invalid value for field "+typeErr.Field)
		e.fields = map[string]string{typeErr.Field: "must be " + typeErr.Type.String()}
		return e
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return newError(http.StatusBadRequest, "invalid_json", "unknown field in request body: "+strings.TrimPrefix(err.Error(), "json: unknown field "))
	case errors.Is(err, io.EOF):
		return newError(http.StatusBadRequest, "invalid_json", "request body must not be empty")
	default:
		return newError(http.StatusBadRequest, "invalid_json", "request body could not be decoded")
	}
}
