package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"amlscope/internal/analysis"
	"amlscope/internal/facets"
	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
	"amlscope/pkg/platform/httputil"
	"amlscope/pkg/requestcontext"
)

// Service defines the submission and detail operations.
type Service interface {
	Submit(ctx context.Context, req screening.Request) (analysis.Ticket, error)
	Latest(ctx context.Context) (screening.Result, error)
}

// Handler wires the submission form and detail view to the analysis service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an analysis handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts analysis endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/screenings", h.HandleSubmit)
	r.Get("/analysis/{id}", h.HandleReport)
	r.Get("/analysis/{id}/raw", h.HandleRaw)
}

// HandleSubmit handles POST /screenings. duration_ms counts from when the
// request arrived, as stamped by the requesttime middleware.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := requestcontext.Now(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ticket, err := h.service.Submit(ctx, req.ToScreeningRequest())
	if err != nil {
		h.logger.ErrorContext(ctx, "screening submission failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "screening completed",
		"request_id", requestID,
		"analysis_id", ticket.AnalysisID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	w.Header().Set("Location", ticket.Location)
	httputil.WriteJSON(w, http.StatusCreated, ticket)
}

// HandleReport handles GET /analysis/{id}. The id is not a lookup key; the
// detail view always renders the most recently handed-off verdict.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReportResponse{
		AnalysisID: chi.URLParam(r, "id"),
		Report:     facets.Project(result),
	})
}

// HandleRaw handles GET /analysis/{id}/raw.
func (h *Handler) HandleRaw(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) (screening.Result, bool) {
	ctx := r.Context()
	result, err := h.service.Latest(ctx)
	if err == nil {
		return result, true
	}
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.InfoContext(ctx, "no analysis to show",
			"request_id", requestcontext.RequestID(ctx),
			"analysis_id", chi.URLParam(r, "id"),
		)
		httputil.WriteJSON(w, http.StatusNotFound, NotFoundResponse{
			Error:            string(dErrors.CodeNotFound),
			ErrorDescription: analysis.NotFoundMessage,
			Back:             "/",
		})
		return screening.Result{}, false
	}
	h.logger.ErrorContext(ctx, "failed to read analysis",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
	return screening.Result{}, false
}
