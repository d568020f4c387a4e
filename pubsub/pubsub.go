package pubsub

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type Client struct {
	notificationsTopic *pubsub.Topic
}

func NewClient(
	ctx context.Context,
	projectID,
	notificationsTopicID string,
) (*Client, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &Client{
		notificationsTopic: client.Topic(notificationsTopicID),
	}, nil
}

// EventService publishes transfer events on the notifications topic.
// Publishing is best-effort; failures are logged and never propagated to
// the operation that produced the event.
type EventService struct {
	client *Client
	logger tracker.Logger
}

func NewEventService(client *Client, logger tracker.Logger) *EventService {
	return &EventService{client, logger}
}

func (es *EventService) Publish(event *tracker.Event) {
	topicLogger := es.logger.WithField("topic", "notifications")

	messageData, err := json.Marshal(&notificationEvent{
		UserID:  event.UserID,
		Payload: event.Payload,
	})
	if err != nil {
		topicLogger.Errorf("could not marshal tracker event: [%v]", err)
		return
	}

	ctx := context.Background()

	result := es.client.notificationsTopic.Publish(ctx, &pubsub.Message{
		Data: messageData,
	})

	go func() {
		id, err := result.Get(ctx)
		if err != nil {
			topicLogger.Errorf("could not publish tracker event: [%v]", err)
			return
		}

		topicLogger.Infof("published tracker event with ID: [%v]", id)
	}()
}

type notificationEvent struct {
	UserID  string
	Payload string
}
