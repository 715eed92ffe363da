package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/remymerlhiot/cote-sud-api/internal/redisx"
)

// DefaultTTL is how long a downloaded feed is served without refetching.
const DefaultTTL = 15 * time.Minute

// Snapshot is one successful download.
type Snapshot struct {
	Listings []Listing `json:"listings"`
	CachedAt time.Time `json:"cached_at"`
}

// Store keeps the last snapshot. Stale snapshots are never evicted, they
// are what gets served when the vendor is down.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, s Snapshot) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &s
	return nil
}

// RedisStore shares the snapshot between API instances.
type RedisStore struct {
	Client *redisx.Client
	Key    string
}

func NewRedisStore(c *redisx.Client) *RedisStore {
	return &RedisStore{Client: c, Key: "feed:snapshot"}
}

func (r *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	val, found, err := r.Client.Get(ctx, r.Key)
	if err != nil || !found {
		return Snapshot{}, false, err
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode feed snapshot: %w", err)
	}
	return s, true, nil
}

func (r *RedisStore) Save(ctx context.Context, s Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.Key, string(b), 0)
}

// Cache decides freshness on top of a Store.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewCache(store Store, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{store: store, ttl: ttl, now: now}
}

// Get returns the cached snapshot, whether it is still within the TTL and
// whether there was anything at all.
func (c *Cache) Get(ctx context.Context) (snap Snapshot, fresh bool, ok bool, err error) {
	snap, ok, err = c.store.Load(ctx)
	if err != nil || !ok {
		return Snapshot{}, false, false, err
	}
	return snap, c.now().Sub(snap.CachedAt) < c.ttl, true, nil
}

// Put stores listings stamped with the current time.
func (c *Cache) Put(ctx context.Context, listings []Listing) (Snapshot, error) {
	s := Snapshot{Listings: listings, CachedAt: c.now()}
	return s, c.store.Save(ctx, s)
}
