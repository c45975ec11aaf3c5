package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/config"
)

type session struct {
	ID       string `json:"id"`
	WalletID string `json:"wallet_id"`
}

func caches(t *testing.T) (map[string]Cache, *miniredis.Miniredis) {
	t.Helper()
	ctx := context.Background()
	s := miniredis.RunT(t)
	rdb, err := NewCacheClient(ctx, config.Cache{Provider: config.CacheProviderRedis, URL: "redis://" + s.Addr()})
	require.NoError(t, err)
	mem, err := NewCacheClient(ctx, config.Cache{Provider: config.CacheProviderMemory})
	require.NoError(t, err)
	return map[string]Cache{"memory": mem, "redis": rdb}, s
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	all, _ := caches(t)
	for name, c := range all {
		t.Run(name, func(t *testing.T) {
			in := session{ID: "s1", WalletID: "w1"}
			require.NoError(t, c.Set(ctx, "struct", in, time.Minute))
			require.NoError(t, c.Set(ctx, "pointer", &in, time.Minute))
			require.NoError(t, c.Set(ctx, "string", "token", ForEver))

			var out session
			require.True(t, c.Get(ctx, "struct", &out))
			assert.Equal(t, in, out)

			var fromPtr session
			require.True(t, c.Get(ctx, "pointer", &fromPtr))
			assert.Equal(t, in, fromPtr)

			var token string
			require.True(t, c.Get(ctx, "string", &token))
			assert.Equal(t, "token", token)

			assert.True(t, c.Exists(ctx, "string"))
			assert.False(t, c.Exists(ctx, "missing"))
			assert.False(t, c.Get(ctx, "missing", &token))

			require.NoError(t, c.Delete(ctx, "string"))
			require.NoError(t, c.Delete(ctx, "string"))
			assert.False(t, c.Exists(ctx, "string"))
		})
	}
}

func TestMemory_GetTypeMismatch(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "k", 42, time.Minute))
	var s string
	assert.False(t, c.Get(ctx, "k", &s))
	assert.False(t, c.Get(ctx, "k", s))
}

func TestRedis_Expiration(t *testing.T) {
	ctx := context.Background()
	all, s := caches(t)
	c := all["redis"]
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	s.FastForward(2 * time.Minute)
	var v string
	assert.False(t, c.Get(ctx, "k", &v))
}

func TestNewCacheClient_Unknown(t *testing.T) {
	_, err := NewCacheClient(context.Background(), config.Cache{Provider: "memcached"})
	assert.Error(t, err)
}

func TestCache_Ping(t *testing.T) {
	ctx := context.Background()
	all, s := caches(t)
	for name, c := range all {
		assert.NoError(t, c.Ping(ctx), name)
	}
	s.Close()
	assert.Error(t, all["redis"].Ping(ctx))
	assert.NoError(t, all["memory"].Ping(ctx))
}
