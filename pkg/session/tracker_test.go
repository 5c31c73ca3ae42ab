package session

import (
	"fmt"
	"testing"
	"time"

	"propscore-webapp-be/internal/repository/memory"
	"propscore-webapp-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestTracker() (*Tracker, store.SessionStore) {
	st := memory.NewStateStore()
	return NewTracker(st, noopLogger{}), st
}

func runWizard(t *testing.T, tr *Tracker, userID, address string) *store.Query {
	t.Helper()

	queryID, err := tr.StartNewSearch(userID, address)
	require.NoError(t, err)

	require.NoError(t, tr.UpdateSearchStep(userID, queryID, store.StepAddressSearch, StepData{
		Suggestions: []store.Suggestion{{PlaceID: "p-1", Label: address + ", Toronto, ON"}},
	}))
	require.NoError(t, tr.UpdateSearchStep(userID, queryID, store.StepPropertyDetails, StepData{
		PropertyID:       "p-1",
		ConfirmedAddress: address + ", Toronto, ON",
		PropertyData:     map[string]interface{}{"bedrooms": 3},
	}))
	require.NoError(t, tr.UpdateSearchStep(userID, queryID, store.StepScoreAnalysis, StepData{
		ScoreData: map[string]interface{}{"likelihood_to_sell": 0.7},
	}))

	completed, err := tr.CompleteSearch(userID, queryID, StepData{})
	require.NoError(t, err)
	return completed
}

func TestInitializeSession(t *testing.T) {
	tr, st := newTestTracker()

	first := tr.InitializeSession("user-1")
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, "user-1", first.UserID)

	// Same session while active.
	second := tr.InitializeSession("user-1")
	assert.Equal(t, first.SessionID, second.SessionID)

	// Idle past the window gets replaced.
	stale, found := st.Session("user-1")
	require.True(t, found)
	stale.LastActivity = time.Now().Add(-MaxIdle - time.Minute)
	st.SaveSession(stale)

	third := tr.InitializeSession("user-1")
	assert.NotEqual(t, first.SessionID, third.SessionID)
}

func TestStartNewSearchRequiresSession(t *testing.T) {
	tr, _ := newTestTracker()

	_, err := tr.StartNewSearch("nobody", "1 Front St")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStartNewSearchReplacesInFlightQuery(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")

	firstID, err := tr.StartNewSearch("user-1", "1 Front St")
	require.NoError(t, err)
	secondID, err := tr.StartNewSearch("user-1", "2 Front St")
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
	current := tr.CurrentQuery("user-1")
	require.NotNil(t, current)
	assert.Equal(t, secondID, current.QueryID)
	assert.Equal(t, "2 Front St", current.Address)

	// The first query id no longer exists.
	err = tr.UpdateSearchStep("user-1", firstID, store.StepAddressSearch, StepData{})
	assert.ErrorIs(t, err, ErrQueryMismatch)
}

func TestUpdateSearchStepPrerequisites(t *testing.T) {
	tests := []struct {
		name   string
		before []store.QueryStep
		step   store.QueryStep
		wantOK bool
	}{
		{"search needs nothing", nil, store.StepAddressSearch, true},
		{"property before search", nil, store.StepPropertyDetails, false},
		{"score before property", []store.QueryStep{store.StepAddressSearch}, store.StepScoreAnalysis, false},
		{"report before score", []store.QueryStep{store.StepAddressSearch, store.StepPropertyDetails}, store.StepReportGeneration, false},
		{"messages before score", []store.QueryStep{store.StepAddressSearch, store.StepPropertyDetails}, store.StepAiMessages, false},
		{"report after score", []store.QueryStep{store.StepAddressSearch, store.StepPropertyDetails, store.StepScoreAnalysis}, store.StepReportGeneration, true},
		{"messages after score", []store.QueryStep{store.StepAddressSearch, store.StepPropertyDetails, store.StepScoreAnalysis}, store.StepAiMessages, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTestTracker()
			tr.InitializeSession("user-1")
			queryID, err := tr.StartNewSearch("user-1", "1 Front St")
			require.NoError(t, err)

			for _, s := range tt.before {
				require.NoError(t, tr.UpdateSearchStep("user-1", queryID, s, StepData{}))
			}

			err = tr.UpdateSearchStep("user-1", queryID, tt.step, StepData{})
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateSearchStepMismatchLeavesQueryUnchanged(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")
	queryID, err := tr.StartNewSearch("user-1", "1 Front St")
	require.NoError(t, err)

	err = tr.UpdateSearchStep("user-1", "not-the-query", store.StepAddressSearch, StepData{
		Suggestions: []store.Suggestion{{PlaceID: "x"}},
	})
	assert.ErrorIs(t, err, ErrQueryMismatch)

	current := tr.CurrentQuery("user-1")
	require.NotNil(t, current)
	assert.Equal(t, queryID, current.QueryID)
	assert.False(t, current.Steps[store.StepAddressSearch])
	assert.Nil(t, current.Suggestions)
}

func TestStepsMayRepeat(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")
	queryID, err := tr.StartNewSearch("user-1", "1 Front St")
	require.NoError(t, err)

	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepAddressSearch, StepData{
		Suggestions: []store.Suggestion{{PlaceID: "a"}},
	}))
	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepPropertyDetails, StepData{
		PropertyID: "a", ConfirmedAddress: "1 Front St, Toronto, ON",
	}))
	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepScoreAnalysis, StepData{
		ScoreData: map[string]interface{}{"likelihood_to_sell": 0.5},
	}))

	// Re-running an earlier step is fine and must not regress the state.
	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepAddressSearch, StepData{
		Suggestions: []store.Suggestion{{PlaceID: "b"}},
	}))

	current := tr.CurrentQuery("user-1")
	require.NotNil(t, current)
	assert.Equal(t, store.StateScored, current.State)
	assert.Equal(t, "b", current.Suggestions[0].PlaceID)
}

func TestCompleteSearchRequiresScore(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")
	queryID, err := tr.StartNewSearch("user-1", "1 Front St")
	require.NoError(t, err)

	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepAddressSearch, StepData{}))
	require.NoError(t, tr.UpdateSearchStep("user-1", queryID, store.StepPropertyDetails, StepData{PropertyID: "p"}))

	_, err = tr.CompleteSearch("user-1", queryID, StepData{})
	assert.ErrorIs(t, err, ErrNotScored)
}

func TestCompleteSearchArchivesAndClears(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")

	completed := runWizard(t, tr, "user-1", "1 Front St")
	assert.Equal(t, store.QueryStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	assert.Nil(t, tr.CurrentQuery("user-1"))

	history := tr.SearchHistory("user-1")
	require.Len(t, history, 1)
	assert.Equal(t, completed.QueryID, history[0].QueryID)

	latest := tr.LatestSearch("user-1")
	require.NotNil(t, latest)
	assert.Equal(t, completed.QueryID, latest.QueryID)
}

func TestHistoryDedupByAddress(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")

	first := runWizard(t, tr, "user-1", "1 Front St")
	runWizard(t, tr, "user-1", "2 Front St")
	third := runWizard(t, tr, "user-1", "1 Front St")

	history := tr.SearchHistory("user-1")
	require.Len(t, history, 2)
	assert.Equal(t, third.QueryID, history[0].QueryID)
	assert.Equal(t, "2 Front St, Toronto, ON", history[1].ConfirmedAddress)

	for _, q := range history {
		assert.NotEqual(t, first.QueryID, q.QueryID)
	}
}

func TestHistoryCap(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")

	for i := 0; i < MaxHistoryEntries+5; i++ {
		runWizard(t, tr, "user-1", fmt.Sprintf("%d Front St", i))
	}

	history := tr.SearchHistory("user-1")
	assert.Len(t, history, MaxHistoryEntries)
	// Most recent first.
	assert.Equal(t, fmt.Sprintf("%d Front St, Toronto, ON", MaxHistoryEntries+4), history[0].ConfirmedAddress)
}

func TestFindSearchByAddress(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")
	runWizard(t, tr, "user-1", "1 Front St")

	found := tr.FindSearchByAddress("user-1", "  1 FRONT st, toronto, on ")
	require.NotNil(t, found)
	assert.Equal(t, "1 Front St, Toronto, ON", found.ConfirmedAddress)

	// Raw (pre-confirmation) address matches too.
	found = tr.FindSearchByAddress("user-1", "1 Front St")
	assert.NotNil(t, found)

	assert.Nil(t, tr.FindSearchByAddress("user-1", "999 Nowhere Rd"))
}

func TestClearSessionKeepsHistory(t *testing.T) {
	tr, _ := newTestTracker()
	tr.InitializeSession("user-1")
	runWizard(t, tr, "user-1", "1 Front St")

	tr.ClearSession("user-1")
	assert.Nil(t, tr.CurrentQuery("user-1"))
	assert.Len(t, tr.SearchHistory("user-1"), 1)

	tr.ClearHistory("user-1")
	assert.Empty(t, tr.SearchHistory("user-1"))
}
