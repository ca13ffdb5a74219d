package tokenstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/shopfront/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() {
		mr.Close()
	})

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisVault_StoreLoadClear(t *testing.T) {
	ctx := context.Background()
	vault := NewRedisVault(setupTestRedis(t), "shopfront:session:token")

	_, err := vault.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotPersisted)

	require.NoError(t, vault.Store(ctx, "header.payload.sig"))

	token, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", token)

	require.NoError(t, vault.Clear(ctx))

	_, err = vault.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotPersisted)
}

func TestRedisVault_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	vault := NewRedisVault(setupTestRedis(t), "shopfront:session:token")

	require.NoError(t, vault.Clear(ctx))
	require.NoError(t, vault.Clear(ctx))
}

func TestRedisVault_StoreOverwrites(t *testing.T) {
	ctx := context.Background()
	vault := NewRedisVault(setupTestRedis(t), "shopfront:session:token")

	require.NoError(t, vault.Store(ctx, "first"))
	require.NoError(t, vault.Store(ctx, "second"))

	token, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}
