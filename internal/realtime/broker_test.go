package realtime_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/realtime"
	"github.com/oggyb/pawmatch/internal/testutil"
)

type collector struct {
	mu   sync.Mutex
	msgs []db.Message
}

func (c *collector) add(m db.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
}

func (c *collector) ids() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.msgs))
	for _, m := range c.msgs {
		out = append(out, m.ID)
	}
	return out
}

func setupBroker(t *testing.T) *realtime.Broker {
	t.Helper()
	rc, _ := testutil.Redis(t)
	return realtime.NewBroker(rc.Client, testutil.Logger())
}

func TestSubscribeDeliversInOrderForOneConversation(t *testing.T) {
	ctx := context.Background()
	b := setupBroker(t)

	var got collector
	sub, err := b.Subscribe(ctx, "c1", got.add)
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, b.Publish(ctx, &db.Message{ID: "m1", ConversationID: "c1", Content: "hi"}))
	require.NoError(t, b.Publish(ctx, &db.Message{ID: "x1", ConversationID: "other", Content: "nope"}))
	require.NoError(t, b.Publish(ctx, &db.Message{ID: "m2", ConversationID: "c1", Content: "there"}))

	require.Eventually(t, func() bool { return len(got.ids()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"m1", "m2"}, got.ids())
}

func TestCancelStopsDelivery(t *testing.T) {
	ctx := context.Background()
	b := setupBroker(t)

	var got collector
	sub, err := b.Subscribe(ctx, "c1", got.add)
	require.NoError(t, err)

	sub.Cancel()
	sub.Cancel() // idempotent

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription still running after Cancel")
	}

	require.NoError(t, b.Publish(ctx, &db.Message{ID: "m1", ConversationID: "c1"}))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.ids())
}

func TestContextCancelEndsSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := setupBroker(t)

	sub, err := b.Subscribe(ctx, "c1", func(db.Message) {})
	require.NoError(t, err)

	cancel()

	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not stop on context cancel")
	}
}
