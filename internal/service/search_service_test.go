package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/repository/memory"
	"propscore-webapp-be/pkg/addressctx"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/scoring"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newSearchFixture(t *testing.T, upstream http.Handler) (ISearchService, *session.Tracker, *addressctx.Manager) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	st := memory.NewStateStore()
	tracker := session.NewTracker(st, noopLogger{})
	addressCtx := addressctx.NewManager(st, noopLogger{})
	client := scoring.NewClient(srv.URL, false, noopLogger{})

	svc := NewSearchService(tracker, addressCtx, client, nil, nil, noopLogger{})
	return svc, tracker, addressCtx
}

func scoringStub() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/address/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestions":[{"place_id":"p-1","label":"1 Front St, Toronto, ON"}]}`))
	})
	mux.HandleFunc("/v1/properties/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"property":{"bedrooms":3,"property_type":"Detached"}}`))
	})
	mux.HandleFunc("/v1/score", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score":{"likelihood_to_sell":0.82,"grade":"A"}}`))
	})
	return mux
}

func TestSearchWizardHappyPath(t *testing.T) {
	svc, tracker, addressCtx := newSearchFixture(t, scoringStub())
	ctx := context.Background()
	userID := uuid.NewString()

	search, err := svc.SearchAddress(ctx, userID, "", &dto.SearchRequest{Address: "1 Front St"})
	require.NoError(t, err)
	require.Len(t, search.Suggestions, 1)
	assert.False(t, search.Demo)
	assert.NotEmpty(t, search.QueryID)

	property, err := svc.ConfirmProperty(ctx, userID, "", &dto.ConfirmPropertyRequest{
		QueryID:          search.QueryID,
		PropertyID:       "p-1",
		ConfirmedAddress: "1 Front St, Toronto, ON",
	})
	require.NoError(t, err)
	assert.Equal(t, "Detached", property.Property["property_type"])

	score, err := svc.PredictScore(ctx, userID, "", &dto.ScoreRequest{
		QueryID:    search.QueryID,
		PropertyID: "p-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.82, score.Score["likelihood_to_sell"])

	completed, err := svc.CompleteSearch(ctx, userID, &dto.CompleteSearchRequest{QueryID: search.QueryID})
	require.NoError(t, err)
	assert.Equal(t, store.QueryStatusCompleted, completed.Status)

	// Session no longer holds the query; history does.
	assert.Nil(t, tracker.CurrentQuery(userID))
	require.Len(t, tracker.SearchHistory(userID), 1)

	// The address context followed the wizard.
	data := addressCtx.AddressData(userID)
	assert.Equal(t, "1 Front St, Toronto, ON", data.ConfirmedAddress)
	assert.Equal(t, "p-1", data.PropertyID)
	assert.Equal(t, "A", data.ScoreData["grade"])
	require.Len(t, addressCtx.History(userID), 1)
}

func TestSearchFallsBackToDemoOnServerError(t *testing.T) {
	svc, _, _ := newSearchFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	userID := uuid.NewString()

	res, err := svc.SearchAddress(context.Background(), userID, "", &dto.SearchRequest{
		Address:   "1 Front St",
		AllowDemo: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Demo)
	assert.NotEmpty(t, res.Suggestions)
}

func TestSearchSurfacesErrorWithoutDemoOptIn(t *testing.T) {
	svc, tracker, _ := newSearchFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	userID := uuid.NewString()

	_, err := svc.SearchAddress(context.Background(), userID, "", &dto.SearchRequest{Address: "1 Front St"})
	require.Error(t, err)

	var failure *apierror.Failure
	require.ErrorAs(t, err, &failure)
	assert.False(t, failure.Classification.ShowUpgradePrompt)

	// The query stays open; retrying the search step is allowed.
	assert.NotNil(t, tracker.CurrentQuery(userID))
}

func TestSearchUsageLimitNeverFallsBackToDemo(t *testing.T) {
	svc, _, _ := newSearchFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":{"usage_info":{"usage_type":"address_search","display_name":"address search","current_count":10,"limit":10}}}`))
	}))
	userID := uuid.NewString()

	_, err := svc.SearchAddress(context.Background(), userID, "", &dto.SearchRequest{
		Address:   "1 Front St",
		AllowDemo: true,
	})
	require.Error(t, err)

	var failure *apierror.Failure
	require.ErrorAs(t, err, &failure)
	assert.True(t, failure.Classification.ShowUpgradePrompt)
	assert.Contains(t, failure.Classification.ErrorMessage, "10/10")
}

func TestConfirmPropertyRejectsStaleQueryID(t *testing.T) {
	svc, _, _ := newSearchFixture(t, scoringStub())
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := svc.SearchAddress(ctx, userID, "", &dto.SearchRequest{Address: "1 Front St"})
	require.NoError(t, err)

	_, err = svc.ConfirmProperty(ctx, userID, "", &dto.ConfirmPropertyRequest{
		QueryID:          uuid.NewString(),
		PropertyID:       "p-1",
		ConfirmedAddress: "1 Front St, Toronto, ON",
	})
	assert.ErrorIs(t, err, session.ErrQueryMismatch)
}

func TestCompleteSearchRequiresScoredQuery(t *testing.T) {
	svc, _, _ := newSearchFixture(t, scoringStub())
	ctx := context.Background()
	userID := uuid.NewString()

	search, err := svc.SearchAddress(ctx, userID, "", &dto.SearchRequest{Address: "1 Front St"})
	require.NoError(t, err)

	_, err = svc.CompleteSearch(ctx, userID, &dto.CompleteSearchRequest{QueryID: search.QueryID})
	assert.ErrorIs(t, err, session.ErrNotScored)
}
