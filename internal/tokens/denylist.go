// Package tokens keeps the ids of revoked tokens in redis until they would have expired anyway.
package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "consultorio:tokens:revocados:"

var ErrEmptyID = errors.New("tokens: empty token id")

type Denylist struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewDenylist(rdb redis.Cmdable) *Denylist {
	return &Denylist{rdb: rdb, now: time.Now}
}

// Revoke marks jti as revoked until expiresAt. Already expired tokens are ignored.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrEmptyID
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, keyPrefix+jti, 1, ttl).Err()
}

// RevokeOnce revokes jti and reports whether this call was the one that did it.
// It returns false when jti was already revoked or has expired.
func (d *Denylist) RevokeOnce(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	if jti == "" {
		return false, ErrEmptyID
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return false, nil
	}
	return d.rdb.SetNX(ctx, keyPrefix+jti, 1, ttl).Result()
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, ErrEmptyID
	}
	n, err := d.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
