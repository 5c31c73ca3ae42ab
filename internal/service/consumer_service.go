package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/repository/unitofwork"
	"propscore-webapp-be/pkg/events"
	pktNats "propscore-webapp-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the SEARCH_COMPLETED topic: each completed query is
// archived to Postgres and forwarded to the analytics bus. Both sinks are
// optional; archiving is skipped without a database and analytics without
// NATS.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	analytics  *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	analytics *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		analytics:  analytics,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload searchCompletedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Consumer: malformed SEARCH_COMPLETED payload: %v", err)
		return
	}

	if cs.uowFactory != nil {
		if err := cs.archive(ctx, payload); err != nil {
			log.Printf("Consumer: failed to archive query %s: %v", payload.Query.QueryID, err)
		}
	}

	if cs.analytics != nil {
		event := events.NewSearchCompleted(payload.UserID, payload.Query)
		if err := cs.analytics.Publish(ctx, event); err != nil {
			log.Printf("Consumer: failed to publish analytics event: %v", err)
		}
	}
}

func (cs *consumerService) archive(ctx context.Context, payload searchCompletedPayload) error {
	userId, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}
	queryId, err := uuid.Parse(payload.Query.QueryID)
	if err != nil {
		return err
	}

	completedAt := time.Now()
	if payload.Query.CompletedAt != nil {
		completedAt = *payload.Query.CompletedAt
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	return uow.SearchArchiveRepository().Create(ctx, &entity.SearchArchive{
		Id:               uuid.New(),
		UserId:           userId,
		QueryId:          queryId,
		Address:          payload.Query.Address,
		ConfirmedAddress: payload.Query.ConfirmedAddress,
		PropertyId:       payload.Query.PropertyID,
		PropertyData:     payload.Query.PropertyData,
		ScoreData:        payload.Query.ScoreData,
		ReportURL:        payload.Query.ReportURL,
		StartedAt:        payload.Query.StartedAt,
		CompletedAt:      completedAt,
	})
}
