// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/logging"
)

// APIResponse is the envelope shared by every JSON endpoint. Exactly one
// of Data and Error is set.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError is the error half of the envelope. Code is one of the ErrCode
// constants; Details carries validation fields where present.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta ties a response to its request and, for pipeline endpoints, to
// the run that computed it.
type APIMeta struct {
	RequestID  string          `json:"request_id,omitempty"`
	RunID      string          `json:"run_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	DurationMs int64           `json:"duration_ms,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// PaginationMeta describes a list cut to Limit items. Limit 0 means the
// list is complete.
type PaginationMeta struct {
	Total   int64 `json:"total"`
	Count   int   `json:"count"`
	Limit   int   `json:"limit,omitempty"`
	HasMore bool  `json:"has_more"`
}

// Machine-readable APIError codes.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeConfigurationError  = "CONFIGURATION_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// ResponseWriter writes one envelope per request. Meta.DurationMs is
// measured from construction.
type ResponseWriter struct {
	out     http.ResponseWriter
	req     *http.Request
	started time.Time
}

func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{out: w, req: r, started: time.Now()}
}

func (rw *ResponseWriter) requestID() string {
	return logging.RequestIDFromContext(rw.req.Context())
}

// stamp fills the request-scoped fields of m, allocating it when nil.
func (rw *ResponseWriter) stamp(m *APIMeta) *APIMeta {
	if m == nil {
		m = new(APIMeta)
	}
	m.RequestID = rw.requestID()
	m.Timestamp = time.Now()
	m.DurationMs = time.Since(rw.started).Milliseconds()
	return m
}

func (rw *ResponseWriter) Success(data interface{}) { rw.SuccessWithMeta(data, nil) }

// SuccessWithMeta writes 200 with data. RunID and Pagination in meta are
// kept; the request fields are overwritten.
func (rw *ResponseWriter) SuccessWithMeta(data interface{}, meta *APIMeta) {
	rw.writeJSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: rw.stamp(meta)})
}

func (rw *ResponseWriter) SuccessWithPagination(data interface{}, runID string, pagination *PaginationMeta) {
	rw.SuccessWithMeta(data, &APIMeta{RunID: runID, Pagination: pagination})
}

func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.ErrorWithDetails(statusCode, code, message, nil)
}

// ErrorWithDetails writes a failed envelope. The request ID is repeated
// inside the error so clients that only keep the error can still quote it.
func (rw *ResponseWriter) ErrorWithDetails(statusCode int, code, message string, details interface{}) {
	m := rw.stamp(nil)
	rw.writeJSON(statusCode, APIResponse{
		Error: &APIError{Code: code, Message: message, Details: details, RequestID: m.RequestID},
		Meta:  m,
	})
}

func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, ErrCodeBadRequest, message)
}

func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

func (rw *ResponseWriter) MethodNotAllowed() {
	rw.Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
}

func (rw *ResponseWriter) TooManyRequests(message string) {
	rw.Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, message)
}

func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable is used while the routes dataset cannot be read.
func (rw *ResponseWriter) ServiceUnavailable(message string) {
	rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// ValidationError writes 400 with per-field failures as details.
func (rw *ResponseWriter) ValidationError(message string, fields interface{}) {
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, message, fields)
}

// ConfigurationError writes 422 for a scale or projection asked to work
// outside its domain.
func (rw *ResponseWriter) ConfigurationError(err error) {
	logging.Ctx(rw.req.Context()).Warn().Err(err).Msg("Configuration error")
	rw.Error(http.StatusUnprocessableEntity, ErrCodeConfigurationError, err.Error())
}

// ExternalServiceError writes 502 naming the dataset. err is logged, not
// returned to the client.
func (rw *ResponseWriter) ExternalServiceError(dataset string, err error) {
	logging.Ctx(rw.req.Context()).Error().Err(err).Str("dataset", dataset).Msg("Dataset source failed")
	rw.Error(http.StatusBadGateway, ErrCodeExternalServiceFail, "External service unavailable: "+dataset)
}

// writeJSON encodes before touching the status line so an unencodable
// payload (NaN in a scene, say) still yields a well-formed 500.
func (rw *ResponseWriter) writeJSON(statusCode int, resp APIResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		logging.Ctx(rw.req.Context()).Error().Err(err).Int("status", statusCode).Msg("Failed to encode JSON response")
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(APIResponse{Error: &APIError{
			Code:      ErrCodeInternalError,
			Message:   "Failed to encode response",
			RequestID: rw.requestID(),
		}})
	}
	h := rw.out.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	rw.out.WriteHeader(statusCode)
	_, _ = rw.out.Write(append(body, '\n'))
}

// WriteBadRequest is NewResponseWriter(w, r).BadRequest(message).
func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	NewResponseWriter(w, r).BadRequest(message)
}

// WriteNotFound is NewResponseWriter(w, r).NotFound(message).
func WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	NewResponseWriter(w, r).NotFound(message)
}
