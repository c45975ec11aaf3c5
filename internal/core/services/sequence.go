package services

import (
	"context"
	"encoding/json"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/repositories"
)

// Helpers for the entries holding a json list of records. Every change is a single atomic Modify.

// listItems decodes the sequence stored under key. A missing or malformed entry is an empty list.
func listItems[T any](ctx context.Context, store ports.TenantStore, category domain.Category, key string) []T {
	items := []T{}
	raw, ok := store.Fetch(ctx, category, key)
	if !ok {
		return items
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn(ctx, "undecodable sequence", "err", err, "category", category)
		return []T{}
	}
	return items
}

// upsertItem replaces the first item for which same is true, appending item when there is none
func upsertItem[T any](ctx context.Context, store ports.TenantStore, category domain.Category, key string, item T, same func(T) bool) error {
	return store.Modify(ctx, category, key, func(current json.RawMessage, tags domain.Tags) (any, domain.Tags, error) {
		items, err := decodeItems[T](current)
		if err != nil {
			return nil, nil, err
		}
		for i := range items {
			if same(items[i]) {
				items[i] = item
				return items, tags, nil
			}
		}
		return append(items, item), tags, nil
	})
}

// insertItem appends item unless an item for which same is true is already present. Reports whether it was added.
func insertItem[T any](ctx context.Context, store ports.TenantStore, category domain.Category, key string, item T, same func(T) bool) (bool, error) {
	added := false
	err := store.Modify(ctx, category, key, func(current json.RawMessage, tags domain.Tags) (any, domain.Tags, error) {
		items, err := decodeItems[T](current)
		if err != nil {
			return nil, nil, err
		}
		for _, it := range items {
			if same(it) {
				return nil, nil, repositories.ErrUnchanged
			}
		}
		added = true
		return append(items, item), tags, nil
	})
	return added, err
}

// updateItem applies fn to the first item for which same is true. Reports whether an item was found.
func updateItem[T any](ctx context.Context, store ports.TenantStore, category domain.Category, key string, same func(T) bool, fn func(*T)) (bool, error) {
	found := false
	err := store.Modify(ctx, category, key, func(current json.RawMessage, tags domain.Tags) (any, domain.Tags, error) {
		items, err := decodeItems[T](current)
		if err != nil {
			return nil, nil, err
		}
		for i := range items {
			if same(items[i]) {
				fn(&items[i])
				found = true
				return items, tags, nil
			}
		}
		return nil, nil, repositories.ErrUnchanged
	})
	return found, err
}

// removeItems drops every item for which same is true. Reports whether something was removed.
func removeItems[T any](ctx context.Context, store ports.TenantStore, category domain.Category, key string, same func(T) bool) (bool, error) {
	removed := false
	err := store.Modify(ctx, category, key, func(current json.RawMessage, tags domain.Tags) (any, domain.Tags, error) {
		if current == nil {
			return nil, nil, repositories.ErrUnchanged
		}
		items, err := decodeItems[T](current)
		if err != nil {
			return nil, nil, err
		}
		kept := make([]T, 0, len(items))
		for _, it := range items {
			if same(it) {
				continue
			}
			kept = append(kept, it)
		}
		if len(kept) == len(items) {
			return nil, nil, repositories.ErrUnchanged
		}
		removed = true
		return kept, tags, nil
	})
	return removed, err
}

func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	items := []T{}
	if raw == nil {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, repositories.ErrNotASequence
	}
	return items, nil
}
