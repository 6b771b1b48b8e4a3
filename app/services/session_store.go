package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/redis/go-redis/v9"
)

// SessionEntry is the cached state of one logged-in session.
type SessionEntry struct {
	UserID    uint
	ExpiresAt time.Time
}

// SessionStore keeps the fast lookup state for active sessions with an
// explicit lifecycle: Create on login, Lookup on every authenticated
// request, Evict on logout. Expired entries are removed by the store
// itself, either by a janitor goroutine or by TTL.
type SessionStore interface {
	Create(ctx context.Context, token string, userID uint, expiresAt time.Time) error
	// Lookup returns nil for unknown and expired tokens.
	Lookup(ctx context.Context, token string) (*SessionEntry, error)
	Evict(ctx context.Context, token string) error
	Close() error
}

// memorySessionStore keeps sessions in process memory. A janitor goroutine
// sweeps expired entries so the map cannot grow without bound.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]SessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemorySessionStore creates an in-memory session store and starts its
// janitor.
func NewMemorySessionStore(janitorInterval time.Duration) SessionStore {
	store := &memorySessionStore{
		sessions: map[string]SessionEntry{},
		stop:     make(chan struct{}),
	}
	go store.janitor(janitorInterval)
	return store
}

func (s *memorySessionStore) Create(_ context.Context, token string, userID uint, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = SessionEntry{UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (s *memorySessionStore) Lookup(_ context.Context, token string) (*SessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.ExpiresAt.Before(utils.UTCNow()) {
		// Expired but not yet swept; evict eagerly.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}
	return &entry, nil
}

func (s *memorySessionStore) Evict(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memorySessionStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *memorySessionStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := utils.UTCNow()
			s.mu.Lock()
			for token, entry := range s.sessions {
				if entry.ExpiresAt.Before(now) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

// redisSessionStore keeps sessions in Redis; expiry rides on key TTLs.
type redisSessionStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, keyPrefix string) SessionStore {
	if keyPrefix == "" {
		keyPrefix = "session:"
	}
	return &redisSessionStore{client: client, keyPrefix: keyPrefix}
}

func (s *redisSessionStore) Create(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return s.client.Set(ctx, s.keyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *redisSessionStore) Lookup(ctx context.Context, token string) (*SessionEntry, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.keyPrefix+token)
	ttlCmd := pipe.TTL(ctx, s.keyPrefix+token)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	userID, err := strconv.ParseUint(getCmd.Val(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session entry: %w", err)
	}
	return &SessionEntry{
		UserID:    uint(userID),
		ExpiresAt: utils.UTCNow().Add(ttlCmd.Val()),
	}, nil
}

func (s *redisSessionStore) Evict(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.keyPrefix+token).Err()
}

func (s *redisSessionStore) Close() error {
	return s.client.Close()
}
