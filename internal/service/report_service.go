package service

import (
	"context"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/logger"
	internalWS "propscore-webapp-be/internal/websocket"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/scoring"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	"github.com/google/uuid"
)

type IReportService interface {
	GenerateReport(ctx context.Context, userID, token string, req *dto.ReportRequest) (*dto.ReportResponse, error)
}

type reportService struct {
	tracker  *session.Tracker
	client   *scoring.Client
	progress ProgressNotifier
	logger   logger.ILogger
}

func NewReportService(tracker *session.Tracker, client *scoring.Client, progress ProgressNotifier, log logger.ILogger) IReportService {
	return &reportService{
		tracker:  tracker,
		client:   client,
		progress: progress,
		logger:   log,
	}
}

// GenerateReport asks the scoring API to render the property report. On a
// demo fallback there is no backend file; the response carries Demo so the
// client can build its own downloadable copy.
func (s *reportService) GenerateReport(ctx context.Context, userID, token string, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if req.Format == "" {
		req.Format = "pdf"
	}

	isDemo := false
	reportURL, err := s.client.GenerateReport(ctx, token, *req)
	if err != nil {
		cls := apierror.Classify(err, req.AllowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		s.logger.Warn("ReportService", "Falling back to demo report", map[string]interface{}{
			"user_id": userID,
			"reason":  cls.ErrorMessage,
		})
		reportURL = ""
		isDemo = true
	}

	if err := s.tracker.UpdateSearchStep(userID, req.QueryID, store.StepReportGeneration, session.StepData{ReportURL: reportURL}); err != nil {
		return nil, err
	}

	if s.progress != nil {
		if uid, parseErr := uuid.Parse(userID); parseErr == nil {
			s.progress.Send(uid, internalWS.ProgressUpdate{
				QueryID: req.QueryID,
				Step:    store.StepReportGeneration,
				State:   store.StateReported,
				At:      time.Now(),
			})
		}
	}

	return &dto.ReportResponse{
		QueryID:   req.QueryID,
		ReportURL: reportURL,
		Format:    req.Format,
		Demo:      isDemo,
	}, nil
}
