// Package http provides the HTTP facade over the search pipeline: request
// parsing, error mapping, and response shaping around the search session.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/faresight/flight-result-pipeline/internal/adapter/http/response"
	"github.com/faresight/flight-result-pipeline/internal/adapter/upstream"
	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/usecase"
)

// AirportSource provides the airport reference list for the picker.
type AirportSource interface {
	Airports(ctx context.Context) ([]upstream.Airport, error)
}

// Handler handles HTTP requests for the search pipeline endpoints.
type Handler struct {
	session  *usecase.Session
	airports AirportSource
}

// NewHandler creates a Handler around the given session and airport source.
func NewHandler(session *usecase.Session, airports AirportSource) *Handler {
	return &Handler{session: session, airports: airports}
}

// Search handles POST /api/v1/flights/search: runs a search from raw form
// input and responds with the filtered, sorted view plus bounds.
func (h *Handler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if req.SortBy != "" {
		h.session.SetSortKey(domain.ParseSortKey(req.SortBy))
	}

	if err := h.session.Search(c.Request().Context(), req.ToFormInput()); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, h.buildView())
}

// Shift handles POST /api/v1/flights/shift: re-issues the last search with
// one leg's date moved by the requested number of days.
func (h *Handler) Shift(c echo.Context) error {
	var req ShiftRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return response.ValidationError(c, err.Error())
	}

	ctx := c.Request().Context()
	var err error
	if req.Leg == LegReturn {
		err = h.session.ShiftReturn(ctx, req.Days)
	} else {
		err = h.session.ShiftDeparture(ctx, req.Days)
	}
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, h.buildView())
}

// SetFilters handles PUT /api/v1/flights/filters: replaces the filter state
// and responds with the recomputed view.
func (h *Handler) SetFilters(c echo.Context) error {
	var req FiltersRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := h.session.SetFilters(req.ToFilterState()); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, h.buildView())
}

// SetSort handles PUT /api/v1/flights/sort: replaces the sort key and
// responds with the reordered view.
func (h *Handler) SetSort(c echo.Context) error {
	var req SortRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	h.session.SetSortKey(domain.ParseSortKey(req.SortBy))
	return response.OK(c, h.buildView())
}

// Results handles GET /api/v1/flights/results: the current view without
// re-issuing a search.
func (h *Handler) Results(c echo.Context) error {
	return response.OK(c, h.buildView())
}

// Airports handles GET /api/v1/settings/airports for the picker collaborator.
func (h *Handler) Airports(c echo.Context) error {
	airports, err := h.airports.Airports(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, airports)
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return response.Health(c)
}

// buildView assembles the response payload from the session's current state.
func (h *Handler) buildView() *ViewDTO {
	return ToViewDTO(
		h.session.State(),
		h.session.Snapshot,
		h.session.Bounds(),
		h.session.Filters(),
		h.session.SortKey(),
		h.session.Results(),
	)
}

// handleError maps pipeline errors to HTTP responses.
func (h *Handler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.ValidationError(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrTokenMissing), errors.Is(err, domain.ErrUpstream):
		return response.UpstreamError(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return response.GatewayTimeout(c)
	default:
		return response.InternalServerError(c)
	}
}
