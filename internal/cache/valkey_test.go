package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValkeyRevocation(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewValkeyClient(Config{Addr: mr.Addr(), KeyPrefix: "test:revoked:"})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	revoked, err := client.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, client.Revoke(ctx, "abc", time.Minute))
	assert.True(t, mr.Exists("test:revoked:abc"))

	revoked, err = client.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = client.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestValkeyRevokeExpiredTokenIsNoop(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewValkeyClient(Config{Addr: mr.Addr(), KeyPrefix: "p:"})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Revoke(context.Background(), "old", -time.Second))
	assert.False(t, mr.Exists("p:old"))
}

func TestNewValkeyClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewValkeyClient(Config{Addr: addr})
	assert.Error(t, err)
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "abc", time.Minute))
	revoked, _ := store.IsRevoked(ctx, "abc")
	assert.True(t, revoked)

	now = now.Add(time.Minute)
	revoked, _ = store.IsRevoked(ctx, "abc")
	assert.False(t, revoked)
}
