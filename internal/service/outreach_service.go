package service

import (
	"context"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/logger"
	internalWS "propscore-webapp-be/internal/websocket"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/demo"
	"propscore-webapp-be/pkg/scoring"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
)

type IOutreachService interface {
	GenerateMessages(ctx context.Context, userID, token string, req *dto.OutreachRequest) (*dto.OutreachResponse, error)
}

type outreachService struct {
	tracker  *session.Tracker
	client   *scoring.Client
	progress ProgressNotifier
	logger   logger.ILogger
}

func NewOutreachService(tracker *session.Tracker, client *scoring.Client, progress ProgressNotifier, log logger.ILogger) IOutreachService {
	return &outreachService{
		tracker:  tracker,
		client:   client,
		progress: progress,
		logger:   log,
	}
}

func (s *outreachService) GenerateMessages(ctx context.Context, userID, token string, req *dto.OutreachRequest) (*dto.OutreachResponse, error) {
	if req.Tone == "" {
		req.Tone = "professional"
	}
	if req.Channel == "" {
		req.Channel = "email"
	}

	isDemo := false
	messages, err := s.client.GenerateMessages(ctx, token, *req)
	if err != nil {
		cls := apierror.Classify(err, req.AllowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		confirmedAddress := ""
		if current := s.tracker.CurrentQuery(userID); current != nil {
			confirmedAddress = current.ConfirmedAddress
		}
		messages = demo.Messages(confirmedAddress)
		isDemo = true
	}

	if err := s.tracker.UpdateSearchStep(userID, req.QueryID, store.StepAiMessages, session.StepData{Messages: messages}); err != nil {
		return nil, err
	}

	if s.progress != nil {
		if uid, parseErr := uuid.Parse(userID); parseErr == nil {
			s.progress.Send(uid, internalWS.ProgressUpdate{
				QueryID: req.QueryID,
				Step:    store.StepAiMessages,
				State:   store.StateOutreachDone,
				At:      time.Now(),
			})
		}
	}

	return &dto.OutreachResponse{
		QueryID:  req.QueryID,
		Messages: messages,
		Demo:     isDemo,
	}, nil
}
