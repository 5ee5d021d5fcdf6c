package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"backoffice-console/internal/models"
)

// Store persists one session snapshot. Load returns nil, nil when nothing
// has been saved yet.
type Store interface {
	Load(ctx context.Context) (*models.SessionSnapshot, error)
	Save(ctx context.Context, snap models.SessionSnapshot) error
	Clear(ctx context.Context) error
}

// Backend opens the Store of a given session id.
type Backend interface {
	Open(id string) Store
}

// ==========================
// File
// ==========================

// FileStore keeps the snapshot in a JSON file, the server side equivalent of
// browser local storage.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) (*models.SessionSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	return &snap, nil
}

func (f *FileStore) Save(_ context.Context, snap models.SessionSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) Open(id string) Store {
	return NewFileStore(filepath.Join(b.dir, filepath.Base(id)+".json"))
}

// ==========================
// Redis
// ==========================

// RedisStore keeps the snapshot under a single key, shared by every console
// replica pointing at the same redis.
type RedisStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context) (*models.SessionSnapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", r.key, err)
	}
	return &snap, nil
}

func (r *RedisStore) Save(ctx context.Context, snap models.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.key, err)
	}
	return nil
}

type RedisBackend struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisBackend(client redis.Cmdable, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix, ttl: ttl}
}

func (b *RedisBackend) Open(id string) Store {
	return NewRedisStore(b.client, b.prefix+id, b.ttl)
}

// ==========================
// Memory
// ==========================

type MemoryStore struct {
	mu   sync.Mutex
	snap *models.SessionSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*models.SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, snap models.SessionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &snap
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}

// MemoryBackend hands out one MemoryStore per id and keeps it for reuse.
type MemoryBackend struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{stores: make(map[string]*MemoryStore)}
}

func (b *MemoryBackend) Open(id string) Store {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.stores[id]
	if !ok {
		s = NewMemoryStore()
		b.stores[id] = s
	}
	return s
}
