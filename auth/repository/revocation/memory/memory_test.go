package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := CreateRevocationStore()

	revoked, err := store.IsRevoked(ctx, "token-a")
	assert.Nil(t, err)
	assert.False(t, revoked)

	assert.Nil(t, store.Revoke(ctx, "token-a", time.Minute))

	revoked, err = store.IsRevoked(ctx, "token-a")
	assert.Nil(t, err)
	assert.True(t, revoked)

	// Revocation is by exact string, a different token for the same subject
	// stays valid.
	revoked, err = store.IsRevoked(ctx, "token-b")
	assert.Nil(t, err)
	assert.False(t, revoked)
}

func TestRevocationStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := CreateRevocationStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Nil(t, store.Revoke(ctx, "shared-token", time.Minute))
		}()
		go func() {
			defer wg.Done()
			_, err := store.IsRevoked(ctx, "shared-token")
			assert.Nil(t, err)
		}()
	}
	wg.Wait()

	revoked, err := store.IsRevoked(ctx, "shared-token")
	assert.Nil(t, err)
	assert.True(t, revoked)
}
