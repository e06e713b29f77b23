package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ===========================================================================
// Redis Broker
// Publishes and subscribes change events over Redis pub/sub, one Redis
// channel per account.
// ===========================================================================

// accountChannelName returns the Redis channel for an account.
func accountChannelName(accountID uuid.UUID) string {
	return "convodesk:account:" + accountID.String()
}

// RedisBroker implements Publisher and Transport over Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisBroker connects to Redis and verifies the connection.
func NewRedisBroker(redisURL string, log *zap.Logger) (*RedisBroker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisBroker{client: client, log: log}, nil
}

// NewRedisBrokerWithClient wraps an existing Redis client.
func NewRedisBrokerWithClient(client *redis.Client, log *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, log: log}
}

// Close closes the Redis connection.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}

func (b *RedisBroker) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	channel := accountChannelName(event.AccountID)
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		b.log.Warn("redis publish failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// PublishConversationChange signals a conversation mutation to the account.
func (b *RedisBroker) PublishConversationChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	return b.publish(ctx, Event{
		Table:          TableConversations,
		AccountID:      accountID,
		ConversationID: conversationID,
	})
}

// PublishMessageChange signals a new message to the account.
func (b *RedisBroker) PublishMessageChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	return b.publish(ctx, Event{
		Table:          TableMessages,
		AccountID:      accountID,
		ConversationID: conversationID,
	})
}

// Subscribe opens the account's event feed. The context bounds connection
// establishment only; the subscription lives until Close or a connection
// failure.
func (b *RedisBroker) Subscribe(ctx context.Context, accountID uuid.UUID) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, accountChannelName(accountID))

	// Wait for the subscription confirmation so the caller gets a usable
	// feed or an error, never a silently dead handle.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe account %s: %w", accountID, err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan Event, 64),
		log:    b.log,
	}
	go sub.pump()
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan Event
	log    *zap.Logger
}

// pump decodes raw messages into events in arrival order. When the
// underlying channel closes (Close or connection loss), events is closed
// so consumers observe the termination.
func (s *redisSubscription) pump() {
	defer close(s.events)
	for msg := range s.pubsub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.log.Warn("dropping malformed realtime event",
				zap.String("channel", msg.Channel),
				zap.Error(err),
			)
			continue
		}
		s.events <- event
	}
}

func (s *redisSubscription) Events() <-chan Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
