package service

import (
	"context"
	"sync"
	"time"

	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/domain/entity"
	"portfolio_analyzer/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
)

// AnalyzeFunc produces the report for an address.
type AnalyzeFunc func(ctx context.Context, walletAddress string) (*entity.PortfolioReport, error)

// SearchTracker keeps the display state of search sessions. Each search started in a
// session gets a new generation; a finished search only updates the state while its
// generation is still the latest, so an older slow search never overwrites a newer one.
// Idle sessions expire after the configured TTL.
type SearchTracker struct {
	sessions *cache.Cache
	logger   port.Logger
	now      func() time.Time

	mu sync.Mutex
}

// NewSearchTracker creates a tracker whose sessions expire after ttl without activity.
func NewSearchTracker(ttl, cleanupInterval time.Duration, l port.Logger) *SearchTracker {
	return &SearchTracker{
		sessions: cache.New(ttl, cleanupInterval),
		logger:   l,
		now:      time.Now,
	}
}

// Begin starts a new search in the session and returns its generation.
// The previous report stays visible while the search is loading.
func (t *SearchTracker) Begin(sessionID, walletAddress string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.load(sessionID)
	state.Generation++
	state.Status = entity.SessionLoading
	state.Address = walletAddress
	state.Error = ""
	state.UpdatedAt = t.now()
	t.sessions.SetDefault(sessionID, state)

	t.logger.Debug("Search started", "session", sessionID, "generation", state.Generation, "address", walletAddress)
	return state.Generation
}

// Apply stores the report when generation is still the session's latest.
// It reports whether the result was applied.
func (t *SearchTracker) Apply(sessionID string, generation uint64, report *entity.PortfolioReport) bool {
	return t.finish(sessionID, generation, func(state *entity.SessionState) {
		state.Status = entity.SessionLoaded
		state.Report = report
		state.Error = ""
	})
}

// Fail moves the session to the error state and clears the report, under the same
// generation rule as Apply.
func (t *SearchTracker) Fail(sessionID string, generation uint64, cause error) bool {
	return t.finish(sessionID, generation, func(state *entity.SessionState) {
		state.Status = entity.SessionError
		state.Report = nil
		state.Error = cause.Error()
	})
}

// State returns a copy of the session state. Unknown or expired sessions are idle.
func (t *SearchTracker) State(sessionID string) entity.SessionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.load(sessionID)
}

// Search runs analyze as a new generation of the session and records its outcome.
// The report and error are returned to the caller even when a newer search superseded them.
func (t *SearchTracker) Search(ctx context.Context, sessionID, walletAddress string, analyze AnalyzeFunc) (*entity.PortfolioReport, bool, error) {
	generation := t.Begin(sessionID, walletAddress)

	report, err := analyze(ctx, walletAddress)
	if err != nil {
		return nil, t.Fail(sessionID, generation, err), err
	}
	return report, t.Apply(sessionID, generation, report), nil
}

func (t *SearchTracker) finish(sessionID string, generation uint64, update func(*entity.SessionState)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.load(sessionID)
	if state.Generation != generation {
		metrics.StaleSearchResults.Inc()
		t.logger.Info("Discarding stale search result",
			"session", sessionID, "generation", generation, "latest", state.Generation)
		return false
	}

	update(state)
	state.UpdatedAt = t.now()
	t.sessions.SetDefault(sessionID, state)
	return true
}

// load returns a private copy of the stored state. Callers must hold mu.
func (t *SearchTracker) load(sessionID string) *entity.SessionState {
	if v, ok := t.sessions.Get(sessionID); ok {
		stored := *v.(*entity.SessionState)
		return &stored
	}
	return &entity.SessionState{
		SessionID: sessionID,
		Status:    entity.SessionIdle,
	}
}
