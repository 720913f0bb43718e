package catalogue

import (
	"context"
	"fmt"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
)

// Placeholder is shown in the detail panel when nothing is selected.
const Placeholder = "Select a Test Case"

// NoMatches is shown when the filters exclude every record.
const NoMatches = "No tests match your current filters."

// Handoff receives the verdict the analyst chose to open in the detail view.
type Handoff interface {
	Put(ctx context.Context, result screening.Result) error
}

// Session is one analyst's gallery state. It is not safe for concurrent use;
// callers serialise events.
type Session struct {
	pageSize    int
	records     []screening.TestCase
	edgeOptions []string
	filter      FilterState
	page        int
	selection   Selection
	loadErr     string
	loaded      bool
}

// NewSession creates an empty session. pageSize is fixed for its lifetime;
// non-positive values fall back to DefaultPageSize.
func NewSession(pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		pageSize:    pageSize,
		edgeOptions: []string{All},
		filter:      DefaultFilter(),
		page:        1,
	}
}

// Load replaces the collection. Edge-case options are recomputed here and
// only here; the first record becomes selected and paging restarts.
func (s *Session) Load(records []screening.TestCase) {
	s.records = records
	s.edgeOptions = EdgeCaseOptions(records)
	s.loadErr = ""
	s.loaded = true
	s.page = 1
	s.selection.Clear()
	s.selection.Init(records)
}

// Fail records a catalogue load failure. The collection is emptied so the
// view shows the error panel instead of stale records.
func (s *Session) Fail(message string) {
	s.Load(nil)
	s.loadErr = message
}

// Loaded reports whether Load or Fail has run.
func (s *Session) Loaded() bool { return s.loaded }

// Records returns the unfiltered collection.
func (s *Session) Records() []screening.TestCase { return s.records }

// Filter returns the active filter state.
func (s *Session) Filter() FilterState { return s.filter }

// SetFilter applies q. Any change to a predicate sends the view back to
// page 1. It reports whether anything changed.
func (s *Session) SetFilter(q FilterState) bool {
	if q == s.filter {
		return false
	}
	s.filter = q
	s.page = 1
	return true
}

// SetPage moves to page n, clamped to the pages the current subset has.
func (s *Session) SetPage(n int) {
	s.page = ClampPage(n, s.pageCount())
}

// Step moves delta pages forward or back, clamped at both ends.
func (s *Session) Step(delta int) {
	s.SetPage(ClampPage(s.page, s.pageCount()) + delta)
}

func (s *Session) pageCount() int {
	n := len(Filter(s.records, s.filter))
	return (n + s.pageSize - 1) / s.pageSize
}

// Select makes key the active record.
func (s *Session) Select(key screening.RecordKey) error {
	return s.selection.Select(s.records, key)
}

// Selected returns the active record, which may be outside the current
// filtered subset.
func (s *Session) Selected() (screening.TestCase, bool) {
	return s.selection.Resolve(s.records)
}

// Analyze hands the selected record's verdict to h and returns the key the
// detail view is navigated to. Selection is unchanged.
func (s *Session) Analyze(ctx context.Context, h Handoff) (screening.RecordKey, error) {
	rec, ok := s.Selected()
	if !ok {
		return screening.RecordKey{}, fmt.Errorf("no test case selected: %w", sentinel.ErrNotFound)
	}
	if err := h.Put(ctx, rec.Output); err != nil {
		return screening.RecordKey{}, fmt.Errorf("hand off %s: %w", rec.Key(), err)
	}
	return rec.Key(), nil
}

// View is everything the gallery renders for the current state.
type View struct {
	Filter      FilterState              `json:"filter"`
	EdgeOptions []string                 `json:"edge_options"`
	Page        Page[screening.TestCase] `json:"page"`
	Showing     string                   `json:"showing"`
	Selected    *screening.TestCase      `json:"selected"`
	Placeholder string                   `json:"placeholder,omitempty"`
	Empty       bool                     `json:"empty"`
	EmptyText   string                   `json:"empty_text,omitempty"`
	LoadError   string                   `json:"load_error,omitempty"`
}

// View derives the current view from scratch.
func (s *Session) View() View {
	subset := Filter(s.records, s.filter)
	pageCount := (len(subset) + s.pageSize - 1) / s.pageSize
	page := Paginate(subset, ClampPage(s.page, pageCount), s.pageSize)

	v := View{
		Filter:      s.filter,
		EdgeOptions: s.edgeOptions,
		Page:        page,
		Showing:     ShowingRange(page),
		LoadError:   s.loadErr,
	}
	if rec, ok := s.Selected(); ok {
		v.Selected = &rec
	} else {
		v.Placeholder = Placeholder
	}
	if len(subset) == 0 && s.loadErr == "" {
		v.Empty = true
		v.EmptyText = NoMatches
	}
	return v
}
