// internal/repository/cached_user_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gurkanbulca/taskmanager/internal/cache"
	"github.com/gurkanbulca/taskmanager/internal/models"
)

const userEmailKeyPrefix = "user:email:"

// cachedUser is the cache representation of a user. models.User hides the
// hash from JSON, so it cannot be stored directly.
type cachedUser struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
}

// CachedUserRepository caches positive email lookups. Users are never
// updated or deleted, so an entry cannot go stale; misses are not cached
// because the email may be registered later.
type CachedUserRepository struct {
	next  UserStore
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedUserRepository(next UserStore, c cache.Cache, ttl time.Duration) *CachedUserRepository {
	return &CachedUserRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

func (r *CachedUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u, err := r.next.Create(ctx, email, passwordHash)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := r.cache.Get(ctx, userEmailKeyPrefix+email)
	switch {
	case err == nil:
		var cu cachedUser
		if jsonErr := json.Unmarshal([]byte(raw), &cu); jsonErr == nil {
			return &models.User{ID: cu.ID, Email: cu.Email, HashedPassword: cu.HashedPassword}, nil
		}
		log.Printf("[WARN] dropping undecodable user cache entry for %s", email)
		_ = r.cache.Del(ctx, userEmailKeyPrefix+email)
	case !errors.Is(err, cache.ErrMiss):
		log.Printf("[WARN] user cache read failed: %v", err)
	}

	u, err := r.next.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachedUserRepository) store(ctx context.Context, u *models.User) {
	raw, err := json.Marshal(cachedUser{ID: u.ID, Email: u.Email, HashedPassword: u.HashedPassword})
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, userEmailKeyPrefix+u.Email, string(raw), r.ttl); err != nil {
		log.Printf("[WARN] user cache write failed: %v", err)
	}
}
