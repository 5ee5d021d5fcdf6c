// Package resource implements the query and mutation halves of every
// backend resource: a per-session cache keyed by namespace and serialized
// parameters, and mutations that invalidate namespaces and emit toasts.
package resource

import (
	"context"
	"strings"
	"sync"
	"time"

	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/common/metrics"
	"backoffice-console/pkg/query"
)

// State of a cached query.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

type entry struct {
	namespace  string
	state      State
	data       interface{}
	err        error
	generation uint64
	fetchedAt  time.Time
}

// Snapshot is the {data, isLoading, error} view of one key.
type Snapshot struct {
	State     State       `json:"state"`
	Data      interface{} `json:"data,omitempty"`
	IsLoading bool        `json:"isLoading"`
	Error     string      `json:"error,omitempty"`
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64 // last generation handed out, shared by every key
	ttl     time.Duration
	now     func() time.Time
	log     logger.Logger
}

// NewCache builds an empty cache. ttl 0 keeps entries until invalidated.
func NewCache(ttl time.Duration, log logger.Logger) *Cache {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

// Key is namespace?serializedParams, or the bare namespace without params.
func Key(namespace string, params query.Object) string {
	qs := query.Serialize(params)
	if qs == "" {
		return namespace
	}
	return namespace + "?" + qs
}

func namespaceOf(key string) string {
	ns, _, _ := strings.Cut(key, "?")
	return ns
}

// Snapshot reports the state of key, StateIdle when nothing was requested.
func (c *Cache) Snapshot(key string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{State: StateIdle}
	}
	s := Snapshot{State: e.state, Data: e.data, IsLoading: e.state == StateLoading}
	if e.err != nil {
		s.Error = e.err.Error()
	}
	return s
}

// Invalidate drops every entry of the given namespaces and returns how many
// were dropped. Fetches still in flight for those keys will not be cached.
func (c *Cache) Invalidate(namespaces ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, e := range c.entries {
		for _, ns := range namespaces {
			if e.namespace == ns {
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	if dropped > 0 {
		c.log.Debug("Cache invalidated", map[string]interface{}{"namespaces": namespaces, "entries": dropped})
	}
	return dropped
}

// Clear drops every entry, used on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) fresh(e *entry) bool {
	return c.ttl <= 0 || c.now().Sub(e.fetchedAt) < c.ttl
}

// begin returns the cached value when usable accepts it, otherwise it moves
// key to loading and hands out the generation of this fetch.
func (c *Cache) begin(key string, usable func(interface{}) bool) (interface{}, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.entries[key]
	if ok && prev.state == StateSuccess && c.fresh(prev) && usable(prev.data) {
		return prev.data, 0, true
	}

	c.seq++
	gen := c.seq
	next := &entry{namespace: namespaceOf(key), state: StateLoading, generation: gen}
	if prev != nil {
		next.data = prev.data
	}
	c.entries[key] = next
	return nil, gen, false
}

// finish stores the outcome unless a newer fetch or an invalidation
// superseded gen. It reports whether the outcome was kept.
func (c *Cache) finish(key string, gen uint64, data interface{}, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.entries[key]
	if !ok || cur.state != StateLoading || cur.generation != gen {
		return false
	}
	e := &entry{namespace: namespaceOf(key), generation: gen, fetchedAt: c.now()}
	if err != nil {
		e.state = StateError
		e.err = err
		e.data = cur.data
	} else {
		e.state = StateSuccess
		e.data = data
	}
	c.entries[key] = e
	return true
}

// Query serves key from the cache or runs fetch. A result superseded by a
// newer fetch of the same key is returned to its caller but never cached.
func Query[T any](ctx context.Context, c *Cache, namespace string, params query.Object, fetch func(context.Context) (T, error)) (T, error) {
	key := Key(namespace, params)

	cached, gen, hit := c.begin(key, func(v interface{}) bool {
		_, ok := v.(T)
		return ok
	})
	if hit {
		metrics.CacheLookups.WithLabelValues(namespace, "hit").Inc()
		return cached.(T), nil
	}
	metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()

	v, err := fetch(ctx)
	if !c.finish(key, gen, v, err) {
		metrics.CacheLookups.WithLabelValues(namespace, "stale").Inc()
		c.log.Debug("Discarded superseded response", map[string]interface{}{"key": key})
	}
	return v, err
}
