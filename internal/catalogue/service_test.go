package catalogue

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"amlscope/internal/catalogue/metrics"
	"amlscope/internal/catalogue/mocks"
	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Source
type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	source  *mocks.MockSource
	handoff *recordingHandoff
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.source = mocks.NewMockSource(ctrl)
	s.handoff = &recordingHandoff{}
	s.metrics = metrics.New(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.source, s.handoff, 2, logger, s.metrics)
}

func (s *ServiceSuite) TestLoadsLazilyOnce() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil).Times(1)

	v := s.service.View(s.ctx)
	s.Equal(3, v.Page.PageCount)
	s.service.Query(s.ctx, DefaultFilter(), PageRequest{Page: 2})

	s.Equal(5.0, testutil.ToFloat64(s.metrics.Records))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Loads.WithLabelValues("ok")))
}

func (s *ServiceSuite) TestLoadFailureShowsErrorPanel() {
	s.source.EXPECT().FetchTests(gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUpstream, "Screening service returned 502"))

	v := s.service.View(s.ctx)
	s.Equal("Screening service returned 502", v.LoadError)
	s.Nil(v.Selected)
	s.Empty(v.Page.Visible)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Loads.WithLabelValues("error")))
}

func (s *ServiceSuite) TestReloadRecoversAfterFailure() {
	gomock.InOrder(
		s.source.EXPECT().FetchTests(gomock.Any()).Return(nil, io.ErrUnexpectedEOF),
		s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil),
	)

	v := s.service.View(s.ctx)
	s.Equal("Failed to load tests", v.LoadError)

	v = s.service.Reload(s.ctx)
	s.Empty(v.LoadError)
	s.Len(v.Page.Visible, 2)
}

func (s *ServiceSuite) TestQueryPageThenFilterChange() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil)

	v := s.service.Query(s.ctx, DefaultFilter(), PageRequest{Page: 3})
	s.Equal(3, v.Page.Page)
	s.Len(v.Page.Visible, 1)

	q := DefaultFilter()
	q.RiskLevel = "high"
	v = s.service.Query(s.ctx, q, PageRequest{Page: 3})
	s.Equal(1, v.Page.Page, "a changed filter ignores the requested page")
	s.Equal("Showing 1-2 of 2 tests", v.Showing)
}

func (s *ServiceSuite) TestQueryStepIgnoredWhenFilterChanges() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil)

	q := DefaultFilter()
	q.MatchStatus = MatchMatched
	v := s.service.Query(s.ctx, q, PageRequest{Step: 1})
	s.Equal(1, v.Page.Page, "a changed filter resets to page 1 even with a step")
	s.Equal(2, v.Page.PageCount)

	v = s.service.Query(s.ctx, q, PageRequest{Step: 1})
	s.Equal(2, v.Page.Page, "an unchanged filter applies the step")
}

func (s *ServiceSuite) TestStep() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil)
	step := func(delta int) int {
		return s.service.Query(s.ctx, DefaultFilter(), PageRequest{Step: delta}).Page.Page
	}

	s.Equal(2, step(1))
	s.Equal(3, step(1))
	s.Equal(3, step(1))
	s.Equal(2, step(-1))
}

func (s *ServiceSuite) TestSelectUnknownIsNotFound() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(sampleCatalogue(), nil)

	_, err := s.service.Select(s.ctx, screening.RecordKey{SourceFile: "nobody.json"})
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestAnalyzeWithKey() {
	records := sampleCatalogue()
	s.source.EXPECT().FetchTests(gomock.Any()).Return(records, nil)

	key := records[3].Key()
	got, err := s.service.Analyze(s.ctx, &key)
	s.Require().NoError(err)
	s.Equal(key, got)
	s.Require().Len(s.handoff.results, 1)
	s.Equal(records[3].Output, s.handoff.results[0])

	v := s.service.View(s.ctx)
	s.Require().NotNil(v.Selected)
	s.Equal(key, v.Selected.Key())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Handoffs.WithLabelValues("ok")))
}

func (s *ServiceSuite) TestAnalyzeEmptyCatalogue() {
	s.source.EXPECT().FetchTests(gomock.Any()).Return(nil, nil)

	_, err := s.service.Analyze(s.ctx, nil)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
	s.Empty(s.handoff.results)
}

func TestLoadErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", LoadErrorMessage(dErrors.New(dErrors.CodeUpstream, "boom")))
	assert.Equal(t, "Failed to load tests", LoadErrorMessage(io.EOF))

	var nilMetrics *metrics.Metrics
	require.NotPanics(t, func() {
		nilMetrics.ObserveLoad(3, nil)
		nilMetrics.IncrementHandoff("ok")
	})
}
