package ports

import (
	"context"
	"encoding/json"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// ModifyFunc computes the next value of an entry from the current one.
// current is nil when the entry does not exist. Returning a nil next value deletes the entry.
type ModifyFunc func(current json.RawMessage, tags domain.Tags) (next any, nextTags domain.Tags, err error)

// TenantStore is the storage namespace of one tenant.
// Lookups never fail: a missing entry and an unreadable one are both reported as absent.
type TenantStore interface {
	Tenant() string
	Fetch(ctx context.Context, category domain.Category, key string) (json.RawMessage, bool)
	Store(ctx context.Context, category domain.Category, key string, value any, tags domain.Tags) error
	Update(ctx context.Context, category domain.Category, key string, value any, tags domain.Tags) error
	Append(ctx context.Context, category domain.Category, key string, item any, tags domain.Tags) error
	Modify(ctx context.Context, category domain.Category, key string, fn ModifyFunc) error
	Delete(ctx context.Context, category domain.Category, key string) error
	FetchAllByTag(ctx context.Context, category domain.Category, tags domain.Tags) []json.RawMessage
}

// TenantStoreProvider opens tenant namespaces
type TenantStoreProvider interface {
	Open(tenant string) TenantStore
	Provision(ctx context.Context, tenant string) error
	Remove(ctx context.Context, tenant string) error
	Ping(ctx context.Context) error
	Close() error
}
