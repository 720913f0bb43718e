// Package analysis runs an ad-hoc screening and hands the verdict to the
// detail view.
package analysis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"amlscope/internal/screening"
	"amlscope/internal/screening/client"
	"amlscope/internal/transfer"
	dErrors "amlscope/pkg/domain-errors"
	"amlscope/pkg/platform/sentinel"
	"amlscope/pkg/requestcontext"
)

// NotFoundMessage is shown when the detail view has nothing to render.
const NotFoundMessage = "The requested analysis could not be found."

// Screener runs one screening against the external service.
type Screener interface {
	RunScreening(ctx context.Context, req screening.Request) (screening.Result, error)
}

// Ticket tells the caller where the detail view lives. The id only makes
// the location unique; the verdict is read from the transfer slot.
type Ticket struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Location   string    `json:"location"`
}

// NewTicket allocates a fresh detail-view location.
func NewTicket() Ticket {
	id := uuid.New()
	return Ticket{AnalysisID: id, Location: "/api/analysis/" + id.String()}
}

// Service submits screenings and serves the handed-off verdict.
type Service struct {
	screener Screener
	channel  transfer.Channel
	logger   *slog.Logger
	metrics  *Metrics
}

// NewService wires the submission flow.
func NewService(screener Screener, channel transfer.Channel, logger *slog.Logger, m *Metrics) *Service {
	return &Service{screener: screener, channel: channel, logger: logger, metrics: m}
}

// Submit screens req and stores the verdict for the detail view. Nothing is
// stored when the screening fails.
func (s *Service) Submit(ctx context.Context, req screening.Request) (Ticket, error) {
	result, err := s.screener.RunScreening(ctx, req)
	if err != nil {
		s.metrics.IncrementSubmission(outcome(err))
		return Ticket{}, screeningError(err)
	}
	if err := s.channel.Put(ctx, result); err != nil {
		s.metrics.IncrementSubmission("handoff_error")
		return Ticket{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store screening result")
	}
	s.metrics.IncrementSubmission("ok")

	ticket := NewTicket()
	s.logger.InfoContext(ctx, "screening submitted",
		"request_id", requestcontext.RequestID(ctx),
		"analysis_id", ticket.AnalysisID,
		"risk", result.OverallRiskLabel,
		"decision", result.Decision,
	)
	return ticket, nil
}

// Latest returns the verdict waiting in the transfer slot.
func (s *Service) Latest(ctx context.Context) (screening.Result, error) {
	result, err := s.channel.Take(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return screening.Result{}, dErrors.Wrap(err, dErrors.CodeNotFound, NotFoundMessage)
		}
		return screening.Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read screening result")
	}
	return result, nil
}

func outcome(err error) string {
	if c := client.GetCategory(err); c != "" {
		return string(c)
	}
	return "error"
}

// screeningError maps service failures to domain errors. The message is
// what the analyst sees under the form.
func screeningError(err error) error {
	var se *client.ServiceError
	if !errors.As(err, &se) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "screening failed")
	}
	switch se.Category {
	case client.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, se.UserMessage())
	case client.ErrorUnavailable:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, se.UserMessage())
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstream, se.UserMessage())
	}
}
