// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/validation"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v\n%s", err, w.Body.String())
	}
	return env
}

func TestResponseWriter_Success(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	NewResponseWriter(w, r).SuccessWithPagination([]string{"a"}, "run-1", &PaginationMeta{Total: 5, Count: 1, HasMore: true})

	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	env := decodeEnvelope(t, w)
	if !env.Success || env.Error != nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Meta.RequestID != "req-1" || env.Meta.RunID != "run-1" || env.Meta.Timestamp.IsZero() {
		t.Errorf("meta = %+v", env.Meta)
	}
	if env.Meta.Pagination.Total != 5 || !env.Meta.Pagination.HasMore {
		t.Errorf("pagination = %+v", env.Meta.Pagination)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		write    func(rw *ResponseWriter)
		wantCode int
		wantErr  string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("bad") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, ErrCodeNotFound},
		{"method", func(rw *ResponseWriter) { rw.MethodNotAllowed() }, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
		{"too many", func(rw *ResponseWriter) { rw.TooManyRequests("slow down") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("oops") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("invalid", map[string]string{"field": "Limit"}) }, http.StatusBadRequest, ErrCodeValidationFailed},
		{"configuration", func(rw *ResponseWriter) {
			rw.ConfigurationError(models.NewConfigurationError("band", "scale", errors.New("no categories")))
		}, http.StatusUnprocessableEntity, ErrCodeConfigurationError},
		{"external", func(rw *ResponseWriter) { rw.ExternalServiceError("routes dataset", errors.New("timeout")) }, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(NewResponseWriter(w, httptest.NewRequest(http.MethodGet, "/", nil)))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			env := decodeEnvelope(t, w)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantErr)
			}
			if env.Data != nil {
				t.Errorf("data = %s, want omitted", env.Data)
			}
		})
	}
}

func TestRespondValidationError(t *testing.T) {
	req := AirlinesRequest{Order: "sideways", Limit: -3}
	verr := validation.ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}

	w := httptest.NewRecorder()
	RespondValidationError(w, httptest.NewRequest(http.MethodGet, "/", nil), verr)

	env := decodeEnvelope(t, w)
	if w.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidationFailed {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}
	details, ok := env.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details = %#v", env.Error.Details)
	}
	if fields, ok := details["fields"].([]interface{}); !ok || len(fields) != 2 {
		t.Errorf("fields = %#v, want two entries", details["fields"])
	}
}

func TestResponseWriter_UnencodablePayload(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-nan"))
	w := httptest.NewRecorder()

	NewResponseWriter(w, r).Success(map[string]float64{"x": math.NaN()})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeInternalError || env.Error.RequestID != "req-nan" {
		t.Errorf("envelope = %+v", env)
	}
}
