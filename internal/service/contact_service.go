package service

import (
	"context"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/internal/pkg/mailer"
	"propscore-webapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IContactService interface {
	SubmitMessage(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error)
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewContactService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, logger logger.ILogger) IContactService {
	return &contactService{
		uowFactory: uowFactory,
		mailer:     emailService,
		logger:     logger,
	}
}

func (s *contactService) SubmitMessage(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	msg := &entity.ContactMessage{
		Id:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if s.uowFactory != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ContactMessageRepository().Create(ctx, msg); err != nil {
			s.logger.Error("contact-service", "failed to persist contact message", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, err
		}
	}

	// Forwarding failures are logged but do not fail the submission; the
	// message is already stored.
	if s.mailer != nil {
		if err := s.mailer.SendContactMessage(msg); err != nil {
			s.logger.Warn("contact-service", "failed to forward contact message", map[string]interface{}{
				"message_id": msg.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.ContactResponse{
		Id:         msg.Id.String(),
		ReceivedAt: msg.CreatedAt,
	}, nil
}
