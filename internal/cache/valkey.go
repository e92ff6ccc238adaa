package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked session token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Config struct {
	Enabled   bool
	Addr      string
	Password  string
	KeyPrefix string
}

type ValkeyClient struct {
	client    *redis.Client
	keyPrefix string
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:    rdb,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Revoke stores the token id with a TTL matching the token's remaining life.
// Non-positive TTLs are no-ops: the token is already expired.
func (v *ValkeyClient) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := v.client.Set(ctx, v.keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}
	return nil
}

func (v *ValkeyClient) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := v.client.Exists(ctx, v.keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("cache lookup error: %w", err)
	}
	return n > 0, nil
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// MemoryRevocationStore is the in-process fallback used when Valkey is
// disabled.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (m *MemoryRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && exp.After(m.now()), nil
}
