package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/metrics"
	"github.com/polygonid/wallet-mediator/pkg/pubsub"
)

// DefaultQueueSize is the number of events buffered per subscriber when none is configured
const DefaultQueueSize = 10

type subscriber struct {
	id     string
	events chan domain.Event
}

func (s *subscriber) ID() string {
	return s.id
}

func (s *subscriber) Events() <-chan domain.Event {
	return s.events
}

// Broadcaster fans events out to the subscribers of a wallet.
// A full subscriber queue drops the event instead of blocking the producer.
type Broadcaster struct {
	mu        sync.Mutex
	subs      map[string]map[string]*subscriber
	queueSize int
	metrics   *metrics.Metrics
	backbone  pubsub.Publisher
	channel   string
}

// New returns an in process broadcaster
func New(queueSize int, m *metrics.Metrics) *Broadcaster {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Broadcaster{
		subs:      make(map[string]map[string]*subscriber),
		queueSize: queueSize,
		metrics:   m,
	}
}

var _ ports.Broadcaster = (*Broadcaster)(nil)

// UseBackbone makes Broadcast go through the pubsub channel so every instance listening on it
// delivers the event to its own subscribers. The subscription lasts until ctx is cancelled.
func (b *Broadcaster) UseBackbone(ctx context.Context, ps pubsub.Client, channel string) {
	ps.Subscribe(ctx, channel, b.receive)
	b.mu.Lock()
	b.backbone = ps
	b.channel = channel
	b.mu.Unlock()
}

// Subscribe registers a new queue for walletID
func (b *Broadcaster) Subscribe(walletID string) ports.Subscription {
	sub := &subscriber{
		id:     uuid.NewString(),
		events: make(chan domain.Event, b.queueSize),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[walletID] == nil {
		b.subs[walletID] = make(map[string]*subscriber)
	}
	b.subs[walletID][sub.id] = sub
	return sub
}

// Unsubscribe removes the queue and closes it. Unknown subscriptions are ignored.
func (b *Broadcaster) Unsubscribe(walletID string, sub ports.Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[walletID]
	s, ok := subs[sub.ID()]
	if !ok {
		return
	}
	delete(subs, s.id)
	close(s.events)
	if len(subs) == 0 {
		delete(b.subs, walletID)
	}
}

// Subscribers returns the number of queues registered for walletID
func (b *Broadcaster) Subscribers(walletID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[walletID])
}

// Broadcast sends a timestamped event to every subscriber of walletID
func (b *Broadcaster) Broadcast(ctx context.Context, walletID string, typ domain.EventType, data any) {
	event := domain.Event{Type: typ, Data: data, Timestamp: time.Now().UTC()}

	b.mu.Lock()
	backbone, channel := b.backbone, b.channel
	b.mu.Unlock()

	if backbone != nil {
		err := backbone.Publish(ctx, channel, &envelope{WalletID: walletID, Event: event})
		if err == nil {
			return
		}
		log.Warn(ctx, "publishing event, delivering locally", "err", err, "type", typ)
	}
	b.deliver(ctx, walletID, event)
}

func (b *Broadcaster) deliver(ctx context.Context, walletID string, event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs[walletID] {
		select {
		case s.events <- event:
		default:
			b.metrics.IncBroadcastDropped()
			log.Warn(ctx, "subscriber queue full, dropping event", "subscriber", s.id, "type", event.Type)
		}
	}
}

func (b *Broadcaster) receive(ctx context.Context, msg pubsub.Message) error {
	var env envelope
	if err := env.Unmarshal(msg); err != nil {
		return err
	}
	b.deliver(ctx, env.WalletID, env.Event)
	return nil
}

// envelope is the backbone message
type envelope struct {
	WalletID string       `json:"wallet_id"`
	Event    domain.Event `json:"event"`
}

func (e *envelope) Marshal() (pubsub.Message, error) {
	return json.Marshal(e)
}

func (e *envelope) Unmarshal(msg pubsub.Message) error {
	return json.Unmarshal(msg, e)
}
