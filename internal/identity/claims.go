package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/vastra/pkg/docstore"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
)

// RoleDefault is assigned to callers with no stored claim.
const RoleDefault = "user"

// RoleAdmin gates product mutations.
const RoleAdmin = "admin"

// RoleProvider resolves and stores the role claim attached to an identity.
type RoleProvider interface {
	Role(ctx context.Context, uid string) (string, error)
	SetRole(ctx context.Context, uid, role string) error
}

const (
	claimKeyPrefix = "claims:"
	claimTTL       = 24 * time.Hour
)

// ClaimStore keeps role claims in Redis, out of band of the user documents,
// as the counterpart of the identity provider's custom claims. A Redis miss
// falls back to the users collection and backfills the claim.
type ClaimStore struct {
	rdb   *redis.Client
	users docstore.Collection
}

func NewClaimStore(rdb *redis.Client, users docstore.Collection) *ClaimStore {
	return &ClaimStore{rdb: rdb, users: users}
}

func (s *ClaimStore) Role(ctx context.Context, uid string) (string, error) {
	if s.rdb != nil {
		role, err := s.rdb.Get(ctx, claimKeyPrefix+uid).Result()
		if err == nil && role != "" {
			metrics.ClaimLookups.WithLabelValues("redis").Inc()
			return role, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			return "", err
		}
	}

	var doc struct {
		Role string `bson:"role"`
	}
	err := s.users.Get(ctx, uid, &doc)
	if errors.Is(err, docstore.ErrNotFound) || (err == nil && doc.Role == "") {
		metrics.ClaimLookups.WithLabelValues("default").Inc()
		return RoleDefault, nil
	}
	if err != nil {
		return "", err
	}

	metrics.ClaimLookups.WithLabelValues("store").Inc()
	if s.rdb != nil {
		// Backfill is best effort; the users collection stays authoritative.
		_ = s.rdb.Set(ctx, claimKeyPrefix+uid, doc.Role, claimTTL).Err()
	}
	return doc.Role, nil
}

func (s *ClaimStore) SetRole(ctx context.Context, uid, role string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, claimKeyPrefix+uid, role, claimTTL).Err()
}
