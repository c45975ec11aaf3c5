package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

type memoryKey struct {
	category domain.Category
	key      string
}

type memoryEntry struct {
	entry
	seq int64
}

type memoryProfile struct {
	entries map[memoryKey]*memoryEntry
}

type memoryBackend struct {
	mu       sync.RWMutex
	profiles map[string]*memoryProfile
	seq      int64
	locks    *keyLocks
}

// NewMemoryProfiles returns a tenant store kept in process memory
func NewMemoryProfiles(sealer *Sealer) *Profiles {
	return newProfiles(&memoryBackend{
		profiles: make(map[string]*memoryProfile),
		locks:    newKeyLocks(),
	}, sealer)
}

func (m *memoryBackend) createProfile(_ context.Context, tenant string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[tenant]; !ok {
		m.profiles[tenant] = &memoryProfile{entries: make(map[memoryKey]*memoryEntry)}
	}
	return nil
}

func (m *memoryBackend) removeProfile(_ context.Context, tenant string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, tenant)
	return nil
}

func (m *memoryBackend) get(_ context.Context, tenant string, category domain.Category, key string) (entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[tenant]
	if !ok {
		return entry{}, false, nil
	}
	e, ok := p.entries[memoryKey{category, key}]
	if !ok {
		return entry{}, false, nil
	}
	return copyEntry(e.entry), true, nil
}

func (m *memoryBackend) list(_ context.Context, tenant string, category domain.Category, tags domain.Tags) ([]entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[tenant]
	if !ok {
		return nil, nil
	}
	matches := make([]*memoryEntry, 0)
	for k, e := range p.entries {
		if k.category == category && matchTags(e.tags, tags) {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })
	out := make([]entry, 0, len(matches))
	for _, e := range matches {
		out = append(out, copyEntry(e.entry))
	}
	return out, nil
}

func (m *memoryBackend) withKey(ctx context.Context, tenant string, category domain.Category, key string, fn func(tx keyTx) error) error {
	unlock := m.locks.lock(tenant, category, key)
	defer unlock()

	m.mu.RLock()
	_, ok := m.profiles[tenant]
	m.mu.RUnlock()
	if !ok {
		return ErrTenantNotFound
	}
	return fn(&memoryKeyTx{backend: m, tenant: tenant, key: memoryKey{category, key}})
}

func (m *memoryBackend) ping(context.Context) error {
	return nil
}

func (m *memoryBackend) close() error {
	return nil
}

type memoryKeyTx struct {
	backend *memoryBackend
	tenant  string
	key     memoryKey
}

func (tx *memoryKeyTx) get(ctx context.Context) (entry, bool, error) {
	return tx.backend.get(ctx, tx.tenant, tx.key.category, tx.key.key)
}

func (tx *memoryKeyTx) put(_ context.Context, e entry, _ bool) error {
	m := tx.backend
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[tx.tenant]
	if !ok {
		return ErrTenantNotFound
	}
	if current, ok := p.entries[tx.key]; ok {
		current.entry = copyEntry(e)
		return nil
	}
	m.seq++
	p.entries[tx.key] = &memoryEntry{entry: copyEntry(e), seq: m.seq}
	return nil
}

func (tx *memoryKeyTx) del(context.Context) error {
	m := tx.backend
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[tx.tenant]; ok {
		delete(p.entries, tx.key)
	}
	return nil
}

func copyEntry(e entry) entry {
	value := make([]byte, len(e.value))
	copy(value, e.value)
	return entry{value: value, tags: cloneTags(e.tags)}
}
