package memory

import (
	"context"
	"sync"
	"time"

	"github.com/moneybook/expense-tracker/domain"
)

// revocationStore is the process-local revocation set. Entries live for the
// process lifetime and are lost on restart; acceptable for a single
// instance since every token also carries its own expiry.
type revocationStore struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func CreateRevocationStore() domain.RevocationStore {
	return &revocationStore{
		revoked: make(map[string]struct{}),
	}
}

func (r *revocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = struct{}{}
	return nil
}

func (r *revocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[token]
	return ok, nil
}
