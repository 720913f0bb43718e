package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"amlscope/internal/analysis"
	"amlscope/internal/catalogue"
	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
	"amlscope/pkg/platform/httputil"
	"amlscope/pkg/requestcontext"
)

// Service defines the gallery events the handler forwards.
type Service interface {
	Query(ctx context.Context, q catalogue.FilterState, nav catalogue.PageRequest) catalogue.View
	Reload(ctx context.Context) catalogue.View
	Select(ctx context.Context, key screening.RecordKey) (catalogue.View, error)
	Analyze(ctx context.Context, key *screening.RecordKey) (screening.RecordKey, error)
	Records(ctx context.Context) []screening.TestCase
}

// Handler exposes the test gallery.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a catalogue handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts gallery endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/catalogue", h.HandleQuery)
	r.Post("/catalogue/reload", h.HandleReload)
	r.Post("/catalogue/select", h.HandleSelect)
	r.Post("/catalogue/analyze", h.HandleAnalyze)
}

// RegisterTests mounts GET /tests, which serves the raw collection in the
// same shape as the screening service.
func (h *Handler) RegisterTests(r chi.Router) {
	r.Get("/tests", h.HandleTests)
}

// HandleQuery handles GET /catalogue. A changed filter resets to page 1 and
// drops page and step; otherwise page=N jumps and step=prev|next moves
// relative to the resulting page.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qs := r.URL.Query()

	filter, err := catalogue.ParseFilterState(qs.Get("q"), qs.Get("risk"), qs.Get("match"), qs.Get("edge"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := parsePage(qs.Get("page"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	delta, err := parseStep(qs.Get("step"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view := h.service.Query(ctx, filter, catalogue.PageRequest{Page: page, Step: delta})
	httputil.WriteJSON(w, http.StatusOK, FromView(view))
}

// HandleReload handles POST /catalogue/reload.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := h.service.Reload(ctx)
	h.logger.InfoContext(ctx, "catalogue reloaded",
		"request_id", requestcontext.RequestID(ctx),
		"records", len(h.service.Records(ctx)),
		"visible_total", view.Page.Total,
		"load_error", view.LoadError,
	)
	httputil.WriteJSON(w, http.StatusOK, FromView(view))
}

// HandleSelect handles POST /catalogue/select.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SelectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	view, err := h.service.Select(ctx, req.ParsedKey())
	if err != nil {
		h.logger.WarnContext(ctx, "test case selection failed",
			"request_id", requestID,
			"key", req.Key,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromView(view))
}

// HandleAnalyze handles POST /catalogue/analyze. It hands the selected
// verdict to the detail view and returns where to find it.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	key, err := h.service.Analyze(ctx, req.ParsedKey())
	if err != nil {
		h.logger.WarnContext(ctx, "catalogue handoff failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	ticket := analysis.NewTicket()
	h.logger.InfoContext(ctx, "catalogue verdict handed off",
		"request_id", requestID,
		"key", key.String(),
		"analysis_id", ticket.AnalysisID,
	)
	w.Header().Set("Location", ticket.Location)
	httputil.WriteJSON(w, http.StatusOK, AnalyzeResponse{Ticket: ticket, Key: key.String()})
}

// HandleTests handles GET /tests.
func (h *Handler) HandleTests(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, TestsResponse{Results: h.service.Records(r.Context())})
}

func parsePage(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, dErrors.New(dErrors.CodeValidation, "page must be a positive integer")
	}
	return n, nil
}

func parseStep(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return 0, nil
	case "prev", "previous":
		return -1, nil
	case "next":
		return 1, nil
	}
	return 0, dErrors.New(dErrors.CodeValidation, "step must be prev or next")
}
