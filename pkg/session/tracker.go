package session

import (
	"errors"
	"strings"
	"time"

	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
)

const (
	// MaxHistoryEntries caps the tracked search history per user.
	MaxHistoryEntries = 50

	// MaxIdle is the activity window; a session idle longer is replaced.
	MaxIdle = 24 * time.Hour
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrNoActiveQuery     = errors.New("no search in progress")
	ErrQueryMismatch     = errors.New("query id does not match the active search")
	ErrInvalidTransition = errors.New("step not allowed before its prerequisites")
	ErrNotScored         = errors.New("search cannot complete before score analysis")
)

// StepData carries the step-specific payload merged into the active query.
// Only the fields relevant to the step being updated are read.
type StepData struct {
	Suggestions      []store.Suggestion
	PropertyID       string
	ConfirmedAddress string
	PropertyData     map[string]interface{}
	ScoreData        map[string]interface{}
	ReportURL        string
	Messages         []string
}

// stepPrereq names the step that must be done before a step may run.
// addressSearch has no prerequisite beyond an active query.
var stepPrereq = map[store.QueryStep]store.QueryStep{
	store.StepPropertyDetails:  store.StepAddressSearch,
	store.StepScoreAnalysis:    store.StepPropertyDetails,
	store.StepReportGeneration: store.StepScoreAnalysis,
	store.StepAiMessages:       store.StepScoreAnalysis,
}

var stateRank = map[store.QueryState]int{
	store.StateIdle:             0,
	store.StateSearching:        1,
	store.StateAddressConfirmed: 2,
	store.StateScored:           3,
	store.StateReported:         4,
	store.StateOutreachDone:     5,
}

var stepState = map[store.QueryStep]store.QueryState{
	store.StepAddressSearch:    store.StateSearching,
	store.StepPropertyDetails:  store.StateAddressConfirmed,
	store.StepScoreAnalysis:    store.StateScored,
	store.StepReportGeneration: store.StateReported,
	store.StepAiMessages:       store.StateOutreachDone,
}

// Tracker owns the per-user search session and its bounded history. All state
// lives in the injected store; the tracker itself is stateless and safe to
// share across requests.
type Tracker struct {
	store  store.SessionStore
	logger logger.ILogger
}

func NewTracker(st store.SessionStore, log logger.ILogger) *Tracker {
	return &Tracker{store: st, logger: log}
}

// InitializeSession returns the active session for the user, replacing it
// with a fresh one when none exists or the existing one has been idle for
// more than 24 hours.
func (t *Tracker) InitializeSession(userID string) *store.Session {
	now := time.Now()

	session, found := t.store.Session(userID)
	if found && now.Sub(session.LastActivity) <= MaxIdle {
		session.LastActivity = now
		t.store.SaveSession(session)
		return session
	}

	if found {
		t.logger.Info("SessionTracker", "Session expired, creating new one", map[string]interface{}{
			"user_id":       userID,
			"last_activity": session.LastActivity,
		})
	}

	session = &store.Session{
		SessionID:    uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}
	t.store.SaveSession(session)
	return session
}

// StartNewSearch opens a fresh query for the address and returns its id.
// Any query already in flight is discarded; a session can hold one at most.
func (t *Tracker) StartNewSearch(userID, address string) (string, error) {
	session, found := t.store.Session(userID)
	if !found {
		return "", ErrNoSession
	}

	query := &store.Query{
		QueryID:   uuid.NewString(),
		Address:   address,
		StartedAt: time.Now(),
		Status:    store.QueryStatusSearching,
		State:     store.StateSearching,
		Steps: map[store.QueryStep]bool{
			store.StepAddressSearch:    false,
			store.StepPropertyDetails:  false,
			store.StepScoreAnalysis:    false,
			store.StepReportGeneration: false,
			store.StepAiMessages:       false,
		},
	}

	session.CurrentQuery = query
	session.SearchCount++
	session.LastActivity = query.StartedAt
	t.store.SaveSession(session)

	return query.QueryID, nil
}

// UpdateSearchStep marks a wizard step done on the active query and merges
// its payload. Steps may repeat, but a step whose prerequisite has not run
// is rejected with ErrInvalidTransition.
func (t *Tracker) UpdateSearchStep(userID, queryID string, step store.QueryStep, data StepData) error {
	session, query, err := t.activeQuery(userID, queryID)
	if err != nil {
		return err
	}

	if prereq, ok := stepPrereq[step]; ok && !query.Steps[prereq] {
		return ErrInvalidTransition
	}

	query.Steps[step] = true
	if stateRank[stepState[step]] > stateRank[query.State] {
		query.State = stepState[step]
	}
	mergeStepData(query, step, data)

	session.LastActivity = time.Now()
	t.store.SaveSession(session)
	return nil
}

// CompleteSearch merges the final payload, stamps completion, archives the
// query into history and clears the session's current query.
func (t *Tracker) CompleteSearch(userID, queryID string, final StepData) (*store.Query, error) {
	session, query, err := t.activeQuery(userID, queryID)
	if err != nil {
		return nil, err
	}
	if !query.Steps[store.StepScoreAnalysis] {
		return nil, ErrNotScored
	}

	mergeFinalData(query, final)

	now := time.Now()
	query.CompletedAt = &now
	query.Status = store.QueryStatusCompleted

	history := insertHistory(t.store.History(userID), *query, MaxHistoryEntries)
	t.store.SaveHistory(userID, history)

	session.CurrentQuery = nil
	session.LastActivity = now
	t.store.SaveSession(session)

	return query, nil
}

func (t *Tracker) CurrentQuery(userID string) *store.Query {
	session, found := t.store.Session(userID)
	if !found {
		return nil
	}
	return session.CurrentQuery
}

func (t *Tracker) SearchHistory(userID string) []store.Query {
	return t.store.History(userID)
}

func (t *Tracker) LatestSearch(userID string) *store.Query {
	history := t.store.History(userID)
	if len(history) == 0 {
		return nil
	}
	return &history[0]
}

// FindSearchByAddress returns the most recent completed search matching the
// address, compared case-insensitively against the confirmed address first.
func (t *Tracker) FindSearchByAddress(userID, address string) *store.Query {
	needle := strings.ToLower(strings.TrimSpace(address))
	history := t.store.History(userID)
	for i := range history {
		q := history[i]
		if strings.ToLower(q.ConfirmedAddress) == needle || strings.ToLower(q.Address) == needle {
			return &q
		}
	}
	return nil
}

func (t *Tracker) ClearSession(userID string) {
	t.store.DeleteSession(userID)
}

func (t *Tracker) ClearHistory(userID string) {
	t.store.ClearHistory(userID)
}

func (t *Tracker) activeQuery(userID, queryID string) (*store.Session, *store.Query, error) {
	session, found := t.store.Session(userID)
	if !found {
		return nil, nil, ErrNoSession
	}
	if session.CurrentQuery == nil {
		return nil, nil, ErrNoActiveQuery
	}
	if session.CurrentQuery.QueryID != queryID {
		t.logger.Warn("SessionTracker", "Query id mismatch", map[string]interface{}{
			"user_id": userID,
			"given":   queryID,
			"active":  session.CurrentQuery.QueryID,
		})
		return nil, nil, ErrQueryMismatch
	}
	return session, session.CurrentQuery, nil
}

func mergeStepData(q *store.Query, step store.QueryStep, data StepData) {
	switch step {
	case store.StepAddressSearch:
		if data.Suggestions != nil {
			q.Suggestions = data.Suggestions
		}
	case store.StepPropertyDetails:
		if data.PropertyID != "" {
			q.PropertyID = data.PropertyID
		}
		if data.ConfirmedAddress != "" {
			q.ConfirmedAddress = data.ConfirmedAddress
		}
		if data.PropertyData != nil {
			q.PropertyData = data.PropertyData
		}
	case store.StepScoreAnalysis:
		if data.ScoreData != nil {
			q.ScoreData = data.ScoreData
		}
	case store.StepReportGeneration:
		if data.ReportURL != "" {
			q.ReportURL = data.ReportURL
		}
	case store.StepAiMessages:
		if data.Messages != nil {
			q.Messages = data.Messages
		}
	}
}

func mergeFinalData(q *store.Query, final StepData) {
	if final.ScoreData != nil {
		q.ScoreData = final.ScoreData
	}
	if final.ConfirmedAddress != "" {
		q.ConfirmedAddress = final.ConfirmedAddress
	}
	if final.PropertyData != nil {
		q.PropertyData = final.PropertyData
	}
	if final.ReportURL != "" {
		q.ReportURL = final.ReportURL
	}
	if final.Messages != nil {
		q.Messages = final.Messages
	}
}

// insertHistory prepends the query, dropping older entries for the same
// address and truncating to max. Most recent entry first.
func insertHistory(history []store.Query, q store.Query, max int) []store.Query {
	key := strings.ToLower(q.ConfirmedAddress)
	if key == "" {
		key = strings.ToLower(q.Address)
	}

	kept := make([]store.Query, 0, len(history)+1)
	kept = append(kept, q)
	for _, h := range history {
		hKey := strings.ToLower(h.ConfirmedAddress)
		if hKey == "" {
			hKey = strings.ToLower(h.Address)
		}
		if hKey == key {
			continue
		}
		kept = append(kept, h)
	}

	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}
