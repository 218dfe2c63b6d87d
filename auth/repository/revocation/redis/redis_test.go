package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	redisKit "github.com/moneybook/expense-tracker/kit/redis"
	redisContainer "github.com/moneybook/expense-tracker/kit/testing/redis/container"
)

func TestRevocationStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skip container test in short mode")
	}

	ctx := context.Background()
	container, err := redisContainer.CreateRedis(ctx)
	assert.Nil(t, err)
	defer container.Terminate(ctx)

	cache, err := redisKit.CreateCache(container.GetURI(), "", 0)
	assert.Nil(t, err)

	store := CreateRevocationStore(cache)

	revoked, err := store.IsRevoked(ctx, "token-a")
	assert.Nil(t, err)
	assert.False(t, revoked)

	assert.Nil(t, store.Revoke(ctx, "token-a", time.Minute))

	revoked, err = store.IsRevoked(ctx, "token-a")
	assert.Nil(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-b")
	assert.Nil(t, err)
	assert.False(t, revoked)

	// Expired tokens need no revocation entry at all.
	assert.Nil(t, store.Revoke(ctx, "token-expired", -time.Minute))
	revoked, err = store.IsRevoked(ctx, "token-expired")
	assert.Nil(t, err)
	assert.False(t, revoked)
}
