package pubsub

import (
	"context"
	"sync"
)

type subscription struct {
	ctx      context.Context
	callback EventHandler
}

// Mock is an in process pubsub client. Published events are delivered synchronously to local subscribers.
type Mock struct {
	mu     sync.RWMutex
	topics map[string][]subscription
}

// NewMock returns a new mock pubsub client
func NewMock() *Mock {
	return &Mock{topics: make(map[string][]subscription)}
}

// Publish mock
func (m *Mock) Publish(ctx context.Context, topic string, payload Event) error {
	msg, err := payload.Marshal()
	if err != nil {
		return err
	}
	m.mu.RLock()
	subs := append([]subscription(nil), m.topics[topic]...)
	m.mu.RUnlock()
	for _, s := range subs {
		if s.ctx.Err() != nil {
			continue
		}
		dispatch(s.ctx, s.callback, msg)
	}
	return nil
}

// Subscribe mock
func (m *Mock) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[topic] = append(m.topics[topic], subscription{ctx: ctx, callback: callback})
}

// Close mock
func (m *Mock) Close() error {
	return nil
}
