package service

import (
	"context"
	"encoding/json"
	"fmt"

	"home-service-booking/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// EventNotifier fans committed booking events out to subscribers.
// Delivery is best-effort; callers log failures and carry on.
type EventNotifier interface {
	Notify(ctx context.Context, event *entity.BookingEvent) error
}

// RedisPublisher is the subset of *redis.Client used for pub/sub
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type redisEventNotifier struct {
	client  RedisPublisher
	channel string
}

// NewRedisEventNotifier publishes every event as JSON on one pub/sub channel
func NewRedisEventNotifier(client RedisPublisher, channel string) EventNotifier {
	return &redisEventNotifier{client: client, channel: channel}
}

func (n *redisEventNotifier) Notify(ctx context.Context, event *entity.BookingEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, b).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", n.channel, err)
	}
	return nil
}

// JSONPublisher is satisfied by messaging.Publisher
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type amqpEventNotifier struct {
	publisher JSONPublisher
}

// NewAMQPEventNotifier publishes every event with routing key "booking.<event_type>"
func NewAMQPEventNotifier(publisher JSONPublisher) EventNotifier {
	return &amqpEventNotifier{publisher: publisher}
}

func (n *amqpEventNotifier) Notify(ctx context.Context, event *entity.BookingEvent) error {
	return n.publisher.PublishJSON(ctx, RoutingKey(event.EventType), event)
}

// RoutingKey maps an event type to its topic routing key
func RoutingKey(eventType entity.EventType) string {
	return "booking." + string(eventType)
}

type noopEventNotifier struct{}

// NewNoopEventNotifier discards events
func NewNoopEventNotifier() EventNotifier {
	return noopEventNotifier{}
}

func (noopEventNotifier) Notify(context.Context, *entity.BookingEvent) error {
	return nil
}
