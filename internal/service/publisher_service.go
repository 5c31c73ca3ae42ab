package service

import (
	"context"
	"encoding/json"

	"propscore-webapp-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// searchCompletedPayload is the wire format on the SEARCH_COMPLETED topic.
type searchCompletedPayload struct {
	UserID string      `json:"user_id"`
	Query  store.Query `json:"query"`
}

type IPublisherService interface {
	PublishSearchCompleted(ctx context.Context, userID string, query store.Query) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishSearchCompleted(ctx context.Context, userID string, query store.Query) error {
	payload, err := json.Marshal(searchCompletedPayload{UserID: userID, Query: query})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}
