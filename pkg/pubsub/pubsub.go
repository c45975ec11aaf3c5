package pubsub

import (
	"context"
	"fmt"

	"github.com/polygonid/wallet-mediator/internal/config"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/redis"
)

// Event defines the payload
type Event interface {
	Marshal() (msg Message, err error)
	Unmarshal(msg Message) error
}

// Message is the payload received in a pubsub subscriber. The input for callback functions
type Message []byte

// Publisher sends topics to the pubsub
type Publisher interface {
	Publish(ctx context.Context, topic string, payload Event) error
}

// EventHandler is the type that functions that handle an Event must comply.
type EventHandler func(context.Context, Message) error

// Subscriber subscribes to the pubsub topics
type Subscriber interface {
	// Subscribe registers callback for topic. Messages are delivered until ctx is cancelled.
	Subscribe(ctx context.Context, topic string, callback EventHandler)
}

// Client is formed by the publisher and subscriber
type Client interface {
	Publisher
	Subscriber
	Close() error
}

// NewPubSub - creates a new pubsub client on top of the configured redis or valkey server
func NewPubSub(ctx context.Context, cfg config.Cache) (Client, error) {
	switch cfg.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.URL)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.URL)
			return nil, err
		}
		return NewRedis(rdb), nil
	case config.CacheProviderValKey:
		client, err := redis.OpenValKey(ctx, cfg.URL)
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.URL)
			return nil, err
		}
		return NewValKeyClient(client), nil
	}
	return nil, fmt.Errorf("provider <%s> cannot back a pubsub", cfg.Provider)
}

// dispatch runs callback recovering from panics so one faulty handler does not stop the subscription
func dispatch(ctx context.Context, callback EventHandler, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "pubsub callback panicked", "panic", r)
		}
	}()
	if err := callback(ctx, msg); err != nil {
		log.Error(ctx, "executing callback function", "err", err)
	}
}
