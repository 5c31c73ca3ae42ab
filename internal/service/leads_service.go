package service

import (
	"context"
	"io"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/demo"
	"propscore-webapp-be/pkg/events"
	pktNats "propscore-webapp-be/pkg/nats"
	"propscore-webapp-be/pkg/scoring"
)

// uploadTimeout bounds the lead-list ranking call. Large lists take minutes;
// this is the only long deadline in the app.
const uploadTimeout = 3 * time.Minute

type ILeadsService interface {
	UploadAndRank(ctx context.Context, userID, token, filename string, file io.Reader, allowDemo bool) (*dto.LeadsUploadResponse, error)
}

type leadsService struct {
	client    *scoring.Client
	analytics *pktNats.Publisher
	logger    logger.ILogger
}

func NewLeadsService(client *scoring.Client, analytics *pktNats.Publisher, log logger.ILogger) ILeadsService {
	return &leadsService{
		client:    client,
		analytics: analytics,
		logger:    log,
	}
}

// UploadAndRank streams the lead list to the scoring API and returns the
// ranked result. On an allowed fallback it substitutes demo leads plus an
// inline CSV so the download button still works.
func (s *leadsService) UploadAndRank(ctx context.Context, userID, token, filename string, file io.Reader, allowDemo bool) (*dto.LeadsUploadResponse, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	result, err := s.client.UploadLeads(uploadCtx, token, filename, file)
	if err != nil {
		cls := apierror.Classify(err, allowDemo)
		if !cls.FallbackToDemo {
			return nil, &apierror.Failure{Classification: cls}
		}
		s.logger.Warn("LeadsService", "Falling back to demo leads", map[string]interface{}{
			"user_id": userID,
			"reason":  cls.ErrorMessage,
		})
		leads := demo.RankedLeads()
		result = &dto.LeadsUploadResponse{
			Leads:      leads,
			TotalRows:  len(leads),
			Demo:       true,
			DemoCSV:    demo.RankedLeadsCSV(),
			UploadName: filename,
		}
	}

	if s.analytics != nil {
		event := events.NewLeadsRanked(userID, result.TotalRows, result.Demo)
		if err := s.analytics.Publish(ctx, event); err != nil {
			s.logger.Warn("LeadsService", "Failed to publish analytics event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return result, nil
}
