package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
)

var (
	// ErrNotFound is returned when updating an entry that does not exist
	ErrNotFound = errors.New("entry not found")
	// ErrAlreadyExists is returned when storing an entry under a taken key
	ErrAlreadyExists = errors.New("entry already exists")
	// ErrTenantNotFound is returned when writing into a tenant that was never provisioned
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrInvalidCategory is returned for categories outside the known set
	ErrInvalidCategory = errors.New("invalid category")
	// ErrNotASequence is returned when appending to an entry that is not a json list
	ErrNotASequence = errors.New("entry is not a sequence")
	// ErrUnchanged can be returned by a ModifyFunc to leave the entry as it is
	ErrUnchanged = errors.New("entry unchanged")
)

// entry is a stored row. value is sealed.
type entry struct {
	value []byte
	tags  domain.Tags
}

// keyTx gives exclusive access to one (tenant, category, key) entry
type keyTx interface {
	get(ctx context.Context) (entry, bool, error)
	put(ctx context.Context, e entry, exists bool) error
	del(ctx context.Context) error
}

// backend is the raw persistence of a Profiles store.
// withKey must run fn with no other withKey call on the same coordinates in flight.
type backend interface {
	createProfile(ctx context.Context, tenant string) error
	removeProfile(ctx context.Context, tenant string) error
	get(ctx context.Context, tenant string, category domain.Category, key string) (entry, bool, error)
	list(ctx context.Context, tenant string, category domain.Category, tags domain.Tags) ([]entry, error)
	withKey(ctx context.Context, tenant string, category domain.Category, key string, fn func(tx keyTx) error) error
	ping(ctx context.Context) error
	close() error
}

// Profiles is a multi tenant, tag indexed key value store with values sealed at rest
type Profiles struct {
	backend backend
	sealer  *Sealer
}

func newProfiles(b backend, sealer *Sealer) *Profiles {
	return &Profiles{backend: b, sealer: sealer}
}

// Open returns the namespace of tenant. Writes fail with ErrTenantNotFound until the tenant is provisioned.
func (p *Profiles) Open(tenant string) ports.TenantStore {
	return &tenantStore{tenant: tenant, profiles: p}
}

// Provision creates the tenant namespace. Provisioning an existing tenant is not an error.
func (p *Profiles) Provision(ctx context.Context, tenant string) error {
	if tenant == "" {
		return errors.New("empty tenant")
	}
	return p.backend.createProfile(ctx, tenant)
}

// Remove deletes the tenant with all of its entries
func (p *Profiles) Remove(ctx context.Context, tenant string) error {
	return p.backend.removeProfile(ctx, tenant)
}

// Ping checks the backend is reachable
func (p *Profiles) Ping(ctx context.Context) error {
	return p.backend.ping(ctx)
}

// Close releases the backend
func (p *Profiles) Close() error {
	return p.backend.close()
}

type tenantStore struct {
	tenant   string
	profiles *Profiles
}

func (s *tenantStore) Tenant() string {
	return s.tenant
}

func (s *tenantStore) Fetch(ctx context.Context, category domain.Category, key string) (json.RawMessage, bool) {
	if !category.Valid() {
		return nil, false
	}
	e, found, err := s.profiles.backend.get(ctx, s.tenant, category, key)
	if err != nil {
		log.Warn(ctx, "fetching entry", "err", err, "tenant", s.tenant, "category", category, "key", key)
		return nil, false
	}
	if !found {
		return nil, false
	}
	value, ok := s.open(ctx, category, key, e)
	return value, ok
}

func (s *tenantStore) Store(ctx context.Context, category domain.Category, key string, value any, tags domain.Tags) error {
	return s.write(ctx, category, key, value, tags, func(exists bool) error {
		if exists {
			return ErrAlreadyExists
		}
		return nil
	})
}

func (s *tenantStore) Update(ctx context.Context, category domain.Category, key string, value any, tags domain.Tags) error {
	return s.write(ctx, category, key, value, tags, func(exists bool) error {
		if !exists {
			return ErrNotFound
		}
		return nil
	})
}

func (s *tenantStore) Append(ctx context.Context, category domain.Category, key string, item any, tags domain.Tags) error {
	return s.Modify(ctx, category, key, func(current json.RawMessage, currentTags domain.Tags) (any, domain.Tags, error) {
		var seq []json.RawMessage
		if current != nil {
			if err := json.Unmarshal(current, &seq); err != nil {
				return nil, nil, ErrNotASequence
			}
		}
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, nil, err
		}
		return append(seq, raw), mergeTags(currentTags, tags), nil
	})
}

func (s *tenantStore) Modify(ctx context.Context, category domain.Category, key string, fn ports.ModifyFunc) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	return s.profiles.backend.withKey(ctx, s.tenant, category, key, func(tx keyTx) error {
		e, exists, err := tx.get(ctx)
		if err != nil {
			return err
		}
		var current json.RawMessage
		var tags domain.Tags
		if exists {
			var ok bool
			if current, ok = s.open(ctx, category, key, e); !ok {
				// an unreadable entry is treated as absent and overwritten
				current = nil
			}
			tags = e.tags
		}
		next, nextTags, err := fn(current, cloneTags(tags))
		if errors.Is(err, ErrUnchanged) {
			return nil
		}
		if err != nil {
			return err
		}
		if next == nil {
			if !exists {
				return nil
			}
			return tx.del(ctx)
		}
		sealed, err := s.seal(category, next)
		if err != nil {
			return err
		}
		return tx.put(ctx, entry{value: sealed, tags: nonNilTags(nextTags)}, exists)
	})
}

func (s *tenantStore) Delete(ctx context.Context, category domain.Category, key string) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	err := s.profiles.backend.withKey(ctx, s.tenant, category, key, func(tx keyTx) error {
		return tx.del(ctx)
	})
	if errors.Is(err, ErrTenantNotFound) {
		return nil
	}
	return err
}

func (s *tenantStore) FetchAllByTag(ctx context.Context, category domain.Category, tags domain.Tags) []json.RawMessage {
	if !category.Valid() {
		return []json.RawMessage{}
	}
	entries, err := s.profiles.backend.list(ctx, s.tenant, category, tags)
	if err != nil {
		log.Warn(ctx, "listing entries", "err", err, "tenant", s.tenant, "category", category)
		return []json.RawMessage{}
	}
	values := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if v, ok := s.open(ctx, category, "", e); ok {
			values = append(values, v)
		}
	}
	return values
}

func (s *tenantStore) write(ctx context.Context, category domain.Category, key string, value any, tags domain.Tags, check func(exists bool) error) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	sealed, err := s.seal(category, value)
	if err != nil {
		return err
	}
	return s.profiles.backend.withKey(ctx, s.tenant, category, key, func(tx keyTx) error {
		_, exists, err := tx.get(ctx)
		if err != nil {
			return err
		}
		if err := check(exists); err != nil {
			return err
		}
		return tx.put(ctx, entry{value: sealed, tags: nonNilTags(tags)}, exists)
	})
}

// seal marshals value and encrypts it. The additional data binds the tenant and category,
// so a row copied into another namespace does not open.
func (s *tenantStore) seal(category domain.Category, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	return s.profiles.sealer.Seal(raw, s.aad(category))
}

func (s *tenantStore) open(ctx context.Context, category domain.Category, key string, e entry) (json.RawMessage, bool) {
	raw, err := s.profiles.sealer.Open(e.value, s.aad(category))
	if err != nil {
		log.Warn(ctx, "opening entry", "err", err, "tenant", s.tenant, "category", category, "key", key)
		return nil, false
	}
	if !json.Valid(raw) {
		log.Warn(ctx, "malformed entry", "tenant", s.tenant, "category", category, "key", key)
		return nil, false
	}
	return raw, true
}

func (s *tenantStore) aad(category domain.Category) []byte {
	return []byte(s.tenant + "|" + string(category))
}

func mergeTags(current, extra domain.Tags) domain.Tags {
	out := cloneTags(current)
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func cloneTags(tags domain.Tags) domain.Tags {
	out := make(domain.Tags, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

func nonNilTags(tags domain.Tags) domain.Tags {
	if tags == nil {
		return domain.Tags{}
	}
	return tags
}

func matchTags(tags, filter domain.Tags) bool {
	for k, v := range filter {
		if got, ok := tags[k]; !ok || got != v {
			return false
		}
	}
	return true
}

// keyLocks is a table of per key mutexes. Entries are dropped once nobody holds or waits for them.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (l *keyLocks) lock(tenant string, category domain.Category, key string) (unlock func()) {
	k := tenant + "\x00" + string(category) + "\x00" + key
	l.mu.Lock()
	kl, ok := l.locks[k]
	if !ok {
		kl = &keyLock{}
		l.locks[k] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.Lock()
	return func() {
		kl.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, k)
		}
		l.mu.Unlock()
	}
}
