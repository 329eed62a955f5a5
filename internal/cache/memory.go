package cache

import (
	"context"
	"sync"
	"time"
)

// defaultMaxEntries bounds the in-process cache; search keys come from user
// input so the key space is open ended.
const defaultMaxEntries = 1024

// Memory is an in-process TTL cache used when Redis isn't configured. It is
// per instance, so entries are not shared between replicas.
type Memory struct {
	mu  sync.Mutex
	ttl time.Duration
	max int
	m   map[string]entry
	now func() time.Time
}

type entry struct {
	val []byte
	exp time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Memory{
		ttl: ttl,
		max: defaultMaxEntries,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		return nil, ErrMiss
	}
	if !c.now().Before(e.exp) {
		delete(c.m, key)
		return nil, ErrMiss
	}
	return e.val, nil
}

func (c *Memory) Set(_ context.Context, key string, val []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.m[key]; !exists && len(c.m) >= c.max {
		c.evict(now)
	}
	c.m[key] = entry{val: val, exp: now.Add(c.ttl)}
	return nil
}

func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	return nil
}

func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// evict drops expired entries, and if that frees nothing, the entry closest
// to expiry. Caller holds mu.
func (c *Memory) evict(now time.Time) {
	var (
		oldestKey string
		oldestExp time.Time
	)
	for k, e := range c.m {
		if !now.Before(e.exp) {
			delete(c.m, k)
			continue
		}
		if oldestKey == "" || e.exp.Before(oldestExp) {
			oldestKey, oldestExp = k, e.exp
		}
	}
	if len(c.m) >= c.max && oldestKey != "" {
		delete(c.m, oldestKey)
	}
}
