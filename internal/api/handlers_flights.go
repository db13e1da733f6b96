// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/pipeline"
	"github.com/tomtom215/flightmap/internal/render"
	"github.com/tomtom215/flightmap/internal/spatial"
	"github.com/tomtom215/flightmap/internal/validation"
)

// AirportsResponse is the payload of /airports.
type AirportsResponse struct {
	Airports []models.AirportSummary `json:"airports"`
	Viewport *models.ViewportBounds  `json:"viewport,omitempty"`
	// Unpositioned counts airports without usable coordinates; they are
	// never inside a viewport.
	Unpositioned int `json:"unpositioned"`
}

// RoutesResponse is the payload of /routes.
type RoutesResponse struct {
	Airline    string              `json:"airline"`
	Routes     []models.RouteStats `json:"routes"`
	Positioned int                 `json:"positioned"`
	TotalKm    float64             `json:"total_km"`
}

// SceneResponse is the payload of /scene.
type SceneResponse struct {
	Scene    *pipeline.Scene           `json:"scene"`
	Surfaces []*render.RecordedSurface `json:"surfaces,omitempty"`
}

// Airlines returns airline summaries ranked by route count.
//
// Query: order (asc|desc), limit (0 = all, max 10000).
func (h *Handler) Airlines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	req := AirlinesRequest{Order: q.Get("order"), Limit: limit}
	if verr := validation.ValidateStruct(&req); verr != nil {
		RespondValidationError(w, r, verr)
		return
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	opts := h.options(req.Order, "")
	opts.Airline = "" // no line batch needed
	scene, err := h.runner.Compute(ctx, opts)
	if err != nil {
		RespondRunError(w, r, err)
		return
	}

	airlines := aggregate.TopAirlines(scene.Airlines, req.Limit)
	NewResponseWriter(w, r).SuccessWithPagination(airlines, scene.RunID, &PaginationMeta{
		Total:   int64(len(scene.Airlines)),
		Count:   len(airlines),
		Limit:   req.Limit,
		HasMore: len(airlines) < len(scene.Airlines),
	})
}

// Airports returns airport summaries, filtered to a viewport when all of
// west, south, east and north are given. west > east wraps the antimeridian.
func (h *Handler) Airports(w http.ResponseWriter, r *http.Request) {
	viewport, err := parseViewport(r.URL.Query())
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	if viewport != nil {
		if verr := validation.ValidateStruct(viewport); verr != nil {
			RespondValidationError(w, r, verr)
			return
		}
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	opts := h.options("", "")
	opts.Airline = ""
	scene, err := h.runner.Compute(ctx, opts)
	if err != nil {
		RespondRunError(w, r, err)
		return
	}

	resp := AirportsResponse{
		Airports:     scene.Airports,
		Viewport:     viewport,
		Unpositioned: scene.Unpositioned,
	}
	if viewport != nil {
		idx := spatial.NewAirportIndex(scene.Airports)
		resp.Airports, err = idx.Query(*viewport)
		if errors.Is(err, spatial.ErrInvalidBounds) {
			WriteBadRequest(w, r, err.Error())
			return
		}
		if err != nil {
			RespondRunError(w, r, err)
			return
		}
	}
	if resp.Airports == nil {
		resp.Airports = []models.AirportSummary{}
	}

	NewResponseWriter(w, r).SuccessWithMeta(resp, &APIMeta{
		RunID:      scene.RunID,
		Pagination: &PaginationMeta{Total: int64(len(scene.Airports)), Count: len(resp.Airports)},
	})
}

// Routes returns the routes of one airline with great-circle distances.
// airline defaults to the configured routes.airline.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	req := RoutesRequest{Airline: r.URL.Query().Get("airline")}
	if req.Airline == "" {
		req.Airline = h.base.Airline
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		RespondValidationError(w, r, verr)
		return
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	scene, err := h.runner.Compute(ctx, h.options("", req.Airline))
	if err != nil {
		RespondRunError(w, r, err)
		return
	}

	resp := RoutesResponse{Airline: scene.Airline, Routes: scene.Routes}
	if resp.Routes == nil {
		resp.Routes = []models.RouteStats{}
	}
	for _, rs := range resp.Routes {
		if rs.Positioned {
			resp.Positioned++
			resp.TotalKm += rs.DistanceKm
		}
	}

	NewResponseWriter(w, r).SuccessWithMeta(resp, &APIMeta{RunID: scene.RunID})
}

// parseSceneRequest reads and validates the /scene and /render.pdf query.
func parseSceneRequest(w http.ResponseWriter, r *http.Request) (SceneRequest, bool) {
	q := r.URL.Query()
	surfaces, err := queryBool(q, "surfaces")
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return SceneRequest{}, false
	}
	req := SceneRequest{Airline: q.Get("airline"), Order: q.Get("order"), Surfaces: surfaces}
	if verr := validation.ValidateStruct(&req); verr != nil {
		RespondValidationError(w, r, verr)
		return SceneRequest{}, false
	}
	return req, true
}

// Scene returns the positioned scene. With surfaces=true the scene is also
// drawn through a SceneRecorder and the recorded draw calls are included.
func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	req, ok := parseSceneRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	opts := h.options(req.Order, req.Airline)
	var (
		resp SceneResponse
		err  error
	)
	if req.Surfaces {
		rec := render.NewSceneRecorder()
		resp.Scene, err = h.runner.Run(ctx, opts, rec)
		resp.Surfaces = rec.Surfaces()
	} else {
		resp.Scene, err = h.runner.Compute(ctx, opts)
	}
	if err != nil {
		RespondRunError(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessWithMeta(resp, &APIMeta{RunID: resp.Scene.RunID})
}

// RenderPDF draws the scene as a PDF. The document is built in memory so a
// failed run still gets a JSON error instead of a truncated file.
func (h *Handler) RenderPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := parseSceneRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	pdf := render.NewPDF(h.pdfTitle, nil)
	scene, err := h.runner.Run(ctx, h.options(req.Order, req.Airline), pdf)
	if err != nil {
		RespondRunError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		RespondRunError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", `inline; filename="flightmap.pdf"`)
	w.Header().Set("X-Run-ID", scene.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
