package pubsub

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// RedisClient struct
type RedisClient struct {
	conn *redis.Client
}

// NewRedis returns a redis pubsub client
func NewRedis(rdb *redis.Client) Client {
	return &RedisClient{rdb}
}

// Publish publishes a new topic payload
func (rdb *RedisClient) Publish(ctx context.Context, topic string, payload Event) error {
	msg, err := payload.Marshal()
	if err != nil {
		return err
	}
	return rdb.conn.Publish(ctx, topic, []byte(msg)).Err()
}

// Subscribe adds a topic to the subscriber. It returns once the server has confirmed the subscription.
func (rdb *RedisClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	sub := rdb.conn.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		log.Error(ctx, "subscribing to topic", "err", err, "topic", topic)
		_ = sub.Close()
		return
	}
	ch := sub.Channel()
	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if event.Channel != topic {
					log.Error(ctx, "msg channel != topic", "channel", event.Channel, "topic", topic)
					continue
				}
				dispatch(ctx, callback, Message(event.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close closes the redis connection
func (rdb *RedisClient) Close() error {
	return rdb.conn.Close()
}
