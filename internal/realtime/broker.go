// Package realtime fans new chat messages out to live subscribers over Redis Pub/Sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/pawmatch/internal/db"
)

// Channel is the Redis channel carrying inserts for one conversation.
func Channel(conversationID string) string {
	return "conversation:" + conversationID + ":messages"
}

// Broker publishes persisted messages and hands out per-conversation subscriptions.
type Broker struct {
	client *redis.Client
	log    *slog.Logger
}

func NewBroker(client *redis.Client, log *slog.Logger) *Broker {
	return &Broker{client: client, log: log}
}

// Publish announces a persisted message to every subscriber of its conversation.
func (b *Broker) Publish(ctx context.Context, msg *db.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message event: %w", err)
	}
	if err := b.client.Publish(ctx, Channel(msg.ConversationID), payload).Err(); err != nil {
		return fmt.Errorf("publish message event: %w", err)
	}
	return nil
}

// Subscription is a live registration. Cancel must be called to release the Redis connection.
type Subscription struct {
	ps   *redis.PubSub
	once sync.Once
	done chan struct{}
}

// Subscribe registers onMessage for messages inserted into conversationID.
//
// Behavior:
//   - Returns only after Redis confirmed the subscription, so any message published afterwards is delivered.
//   - onMessage runs on a single goroutine, once per message, in publish order.
//   - Cancelling ctx cancels the subscription.
//   - onMessage must not call Cancel.
func (b *Broker) Subscribe(ctx context.Context, conversationID string, onMessage func(db.Message)) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, Channel(conversationID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", conversationID, err)
	}

	sub := &Subscription{ps: ps, done: make(chan struct{})}
	ch := ps.Channel()

	go func() {
		defer close(sub.done)
		for m := range ch {
			var msg db.Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				b.log.Warn("dropping malformed message event", "channel", m.Channel, "err", err)
				continue
			}
			onMessage(msg)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			sub.Cancel()
		case <-sub.done:
		}
	}()

	return sub, nil
}

// Cancel stops delivery and waits until no further onMessage call can happen. Safe to call repeatedly.
func (s *Subscription) Cancel() {
	s.once.Do(func() { _ = s.ps.Close() })
	<-s.done
}

// Done is closed once delivery has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
