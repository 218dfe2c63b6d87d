package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	redisKit "github.com/moneybook/expense-tracker/kit/redis"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

const revokedTokenKeyPrefix = "revoked-token:"

// revocationStore keeps revoked tokens in redis so revocation survives
// restarts and is shared across instances. Entries expire with the token.
type revocationStore struct {
	cache *redisKit.Cache
}

func CreateRevocationStore(cache *redisKit.Cache) domain.RevocationStore {
	return &revocationStore{cache: cache}
}

func (r *revocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.cache.Set(ctx, revokedTokenKey(token), "1", ttl); err != nil {
		return errors.Wrap(err, "set revoked token failed")
	}
	return nil
}

func (r *revocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, exists, err := r.cache.Get(ctx, revokedTokenKey(token))
	if err != nil {
		return false, errors.Wrap(err, "get revoked token failed")
	}
	return exists, nil
}

func revokedTokenKey(token string) string {
	return revokedTokenKeyPrefix + utilKit.GetSHA256(token)
}
