package service

import (
	"context"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/logger"
	internalWS "propscore-webapp-be/internal/websocket"
	"propscore-webapp-be/pkg/addressctx"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/demo"
	"propscore-webapp-be/pkg/scoring"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
)

// ProgressNotifier pushes step updates to the user's open dashboards.
// internal/websocket.Hub implements it.
type ProgressNotifier interface {
	Send(userID uuid.UUID, update internalWS.ProgressUpdate)
}

type ISearchService interface {
	SearchAddress(ctx context.Context, userID, token string, req *dto.SearchRequest) (*dto.SearchResponse, error)
	ConfirmProperty(ctx context.Context, userID, token string, req *dto.ConfirmPropertyRequest) (*dto.PropertyResponse, error)
	PredictScore(ctx context.Context, userID, token string, req *dto.ScoreRequest) (*dto.ScoreResponse, error)
	CompleteSearch(ctx context.Context, userID string, req *dto.CompleteSearchRequest) (*store.Query, error)
}

type searchService struct {
	tracker    *session.Tracker
	addressCtx *addressctx.Manager
	client     *scoring.Client
	publisher  IPublisherService
	progress   ProgressNotifier
	logger     logger.ILogger
}

func NewSearchService(
	tracker *session.Tracker,
	addressCtx *addressctx.Manager,
	client *scoring.Client,
	publisher IPublisherService,
	progress ProgressNotifier,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		tracker:    tracker,
		addressCtx: addressCtx,
		client:     client,
		publisher:  publisher,
		progress:   progress,
		logger:     log,
	}
}

// SearchAddress opens a new query and fetches autocomplete suggestions.
// Each search replaces any query still in flight.
func (s *searchService) SearchAddress(ctx context.Context, userID, token string, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	s.tracker.InitializeSession(userID)

	queryID, err := s.tracker.StartNewSearch(userID, req.Address)
	if err != nil {
		return nil, err
	}

	isDemo := false
	suggestions, err := s.client.SearchAddress(ctx, token, req.Address)
	if err != nil {
		cls := apierror.Classify(err, req.AllowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		s.logger.Warn("SearchService", "Falling back to demo suggestions", map[string]interface{}{
			"user_id": userID,
			"reason":  cls.ErrorMessage,
		})
		suggestions = demo.Suggestions(req.Address)
		isDemo = true
	}

	if err := s.tracker.UpdateSearchStep(userID, queryID, store.StepAddressSearch, session.StepData{Suggestions: suggestions}); err != nil {
		return nil, err
	}
	s.addressCtx.UpdateAddressData(userID, addressctx.Patch{Address: req.Address, QueryID: queryID})
	s.notify(userID, queryID, store.StepAddressSearch, store.StateSearching)

	return &dto.SearchResponse{
		QueryID:     queryID,
		Suggestions: suggestions,
		Demo:        isDemo,
	}, nil
}

// ConfirmProperty fetches details for the suggestion the user picked and
// records the address-confirmed step.
func (s *searchService) ConfirmProperty(ctx context.Context, userID, token string, req *dto.ConfirmPropertyRequest) (*dto.PropertyResponse, error) {
	isDemo := false
	property, err := s.client.PropertyDetail(ctx, token, req.PropertyID)
	if err != nil {
		cls := apierror.Classify(err, req.AllowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		property = demo.Property(req.PropertyID, req.ConfirmedAddress)
		isDemo = true
	}

	err = s.tracker.UpdateSearchStep(userID, req.QueryID, store.StepPropertyDetails, session.StepData{
		PropertyID:       req.PropertyID,
		ConfirmedAddress: req.ConfirmedAddress,
		PropertyData:     property,
	})
	if err != nil {
		return nil, err
	}

	s.addressCtx.UpdateAddressData(userID, addressctx.Patch{
		ConfirmedAddress: req.ConfirmedAddress,
		PropertyID:       req.PropertyID,
		PropertyData:     property,
		QueryID:          req.QueryID,
	})
	s.notify(userID, req.QueryID, store.StepPropertyDetails, store.StateAddressConfirmed)

	return &dto.PropertyResponse{
		QueryID:          req.QueryID,
		PropertyID:       req.PropertyID,
		ConfirmedAddress: req.ConfirmedAddress,
		Property:         property,
		Demo:             isDemo,
	}, nil
}

func (s *searchService) PredictScore(ctx context.Context, userID, token string, req *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	isDemo := false
	score, err := s.client.PredictScore(ctx, token, req.PropertyID)
	if err != nil {
		cls := apierror.Classify(err, req.AllowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		score = demo.Score()
		isDemo = true
	}

	if err := s.tracker.UpdateSearchStep(userID, req.QueryID, store.StepScoreAnalysis, session.StepData{ScoreData: score}); err != nil {
		return nil, err
	}

	s.addressCtx.UpdateAddressData(userID, addressctx.Patch{ScoreData: score, QueryID: req.QueryID})
	s.notify(userID, req.QueryID, store.StepScoreAnalysis, store.StateScored)

	return &dto.ScoreResponse{
		QueryID: req.QueryID,
		Score:   score,
		Demo:    isDemo,
	}, nil
}

// CompleteSearch archives the query into history and hands it to the event
// pipeline for durable archiving and analytics.
func (s *searchService) CompleteSearch(ctx context.Context, userID string, req *dto.CompleteSearchRequest) (*store.Query, error) {
	completed, err := s.tracker.CompleteSearch(userID, req.QueryID, finalStepData(req.Final))
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSearchCompleted(ctx, userID, *completed); err != nil {
			s.logger.Error("SearchService", "Failed to publish completed search", map[string]interface{}{
				"query_id": completed.QueryID,
				"error":    err.Error(),
			})
		}
	}

	return completed, nil
}

func (s *searchService) notify(userID, queryID string, step store.QueryStep, state store.QueryState) {
	if s.progress == nil {
		return
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return
	}
	s.progress.Send(uid, internalWS.ProgressUpdate{
		QueryID: queryID,
		Step:    step,
		State:   state,
		At:      time.Now(),
	})
}

// finalStepData lifts the free-form completion payload into the typed merge
// the tracker expects. Unknown keys are ignored.
func finalStepData(final map[string]interface{}) session.StepData {
	var data session.StepData
	if final == nil {
		return data
	}
	if v, ok := final["score_data"].(map[string]interface{}); ok {
		data.ScoreData = v
	}
	if v, ok := final["property_data"].(map[string]interface{}); ok {
		data.PropertyData = v
	}
	if v, ok := final["confirmed_address"].(string); ok {
		data.ConfirmedAddress = v
	}
	if v, ok := final["report_url"].(string); ok {
		data.ReportURL = v
	}
	return data
}
