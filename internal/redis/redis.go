package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/valkey-io/valkey-go"
)

// Open opens a connection to redis and returns it
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := Status(ctx, rdb); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Status returns nil of redis status is ok. Otherwise a redis status err
func Status(ctx context.Context, rdb *redis.Client) error {
	if pingCmd := rdb.Ping(ctx); pingCmd.Err() != nil {
		return pingCmd.Err()
	}
	return nil
}

// OpenValKey connects to a valkey server listening on addr (host:port)
func OpenValKey(ctx context.Context, addr string) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}, DisableCache: true})
	if err != nil {
		return nil, fmt.Errorf("connecting to valkey: %w", err)
	}
	if err := ValKeyStatus(ctx, client); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// ValKeyStatus returns nil if the valkey server answers a ping
func ValKeyStatus(ctx context.Context, client valkey.Client) error {
	return client.Do(ctx, client.B().Ping().Build()).Error()
}
