package catalogue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"amlscope/internal/catalogue/metrics"
	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
	"amlscope/pkg/platform/sentinel"
	"amlscope/pkg/requestcontext"
)

// Source supplies the test-case collection.
type Source interface {
	FetchTests(ctx context.Context) ([]screening.TestCase, error)
}

// Service serialises gallery events against a single Session. Each event
// runs to completion before the next is applied.
type Service struct {
	mu      sync.Mutex
	session *Session
	source  Source
	handoff Handoff
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService wires a gallery session to its collaborators.
func NewService(source Source, handoff Handoff, pageSize int, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		session: NewSession(pageSize),
		source:  source,
		handoff: handoff,
		logger:  logger,
		metrics: m,
	}
}

// Reload fetches the collection again. A failed fetch leaves the gallery
// empty with the error recorded for display; it is not retried.
func (s *Service) Reload(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload(ctx)
	return s.view()
}

func (s *Service) reload(ctx context.Context) {
	records, err := s.source.FetchTests(ctx)
	s.metrics.ObserveLoad(len(records), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalogue load failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		s.session.Fail(LoadErrorMessage(err))
		return
	}
	s.logger.InfoContext(ctx, "catalogue loaded",
		"request_id", requestcontext.RequestID(ctx),
		"records", len(records),
	)
	s.session.Load(records)
}

func (s *Service) ensureLoaded(ctx context.Context) {
	if !s.session.Loaded() {
		s.reload(ctx)
	}
}

// PageRequest moves the page cursor within a Query: to an absolute Page
// (when positive) and then by Step pages (Prev = -1, Next = +1).
type PageRequest struct {
	Page int
	Step int
}

// Query applies a filter state and page movement, loading the collection on
// first use. A changed filter always lands on page 1 and ignores nav.
func (s *Service) Query(ctx context.Context, q FilterState, nav PageRequest) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if s.session.SetFilter(q) {
		return s.view()
	}
	if nav.Page > 0 {
		s.session.SetPage(nav.Page)
	}
	if nav.Step != 0 {
		s.session.Step(nav.Step)
	}
	return s.view()
}

// Select makes key the active record.
func (s *Service) Select(ctx context.Context, key screening.RecordKey) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if err := s.session.Select(key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return View{}, dErrors.New(dErrors.CodeNotFound, "test case not found")
		}
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to select test case")
	}
	return s.view(), nil
}

// Analyze hands the selected verdict to the detail view. When key is given
// it is selected first.
func (s *Service) Analyze(ctx context.Context, key *screening.RecordKey) (screening.RecordKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if key != nil {
		if err := s.session.Select(*key); err != nil {
			s.metrics.IncrementHandoff("not_found")
			return screening.RecordKey{}, dErrors.New(dErrors.CodeNotFound, "test case not found")
		}
	}
	k, err := s.session.Analyze(ctx, s.handoff)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementHandoff("no_selection")
			return screening.RecordKey{}, dErrors.New(dErrors.CodeNotFound, "no test case selected")
		}
		s.metrics.IncrementHandoff("error")
		return screening.RecordKey{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hand off result")
	}
	s.metrics.IncrementHandoff("ok")
	return k, nil
}

// View returns the current view without changing state.
func (s *Service) View(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.view()
}

// Records returns the loaded collection.
func (s *Service) Records(ctx context.Context) []screening.TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.session.Records()
}

func (s *Service) view() View {
	start := time.Now()
	v := s.session.View()
	s.metrics.ObserveViewLatency(time.Since(start))
	return v
}

// LoadErrorMessage picks the analyst-facing text for a failed load.
func LoadErrorMessage(err error) string {
	if de, ok := dErrors.As(err); ok && de.Message != "" {
		return de.Message
	}
	var msg interface{ UserMessage() string }
	if errors.As(err, &msg) {
		return msg.UserMessage()
	}
	return "Failed to load tests"
}
