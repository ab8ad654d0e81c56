package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

const userKeyPrefix = "users:id:"

type cachedUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CachedUserRepo serves FindByID from redis and evicts entries on every write.
// Redis failures are logged and the wrapped repository answers instead.
type CachedUserRepo struct {
	next   repository.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedUserRepo(next repository.UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedUserRepo {
	return &CachedUserRepo{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("repository", "user_cache")),
	}
}

func userKey(id int64) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, id)
}

func (r *CachedUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	if user, ok := r.get(ctx, id); ok {
		return user, nil
	}

	user, err := r.next.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	r.set(ctx, user)
	return user, nil
}

func (r *CachedUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *CachedUserRepo) Create(ctx context.Context, name, email, password string) (*entity.User, error) {
	return r.next.Create(ctx, name, email, password)
}

func (r *CachedUserRepo) ListAll(ctx context.Context) ([]entity.User, error) {
	return r.next.ListAll(ctx)
}

// Update and Delete evict before and after the write. The second eviction drops
// entries a concurrent FindByID stored while the write was in flight.
func (r *CachedUserRepo) Update(ctx context.Context, id int64, fields entity.UpdateFields) (*entity.User, error) {
	r.evict(ctx, id)
	user, err := r.next.Update(ctx, id, fields)
	r.evict(ctx, id)
	return user, err
}

func (r *CachedUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.evict(ctx, id)
	deleted, err := r.next.Delete(ctx, id)
	r.evict(ctx, id)
	return deleted, err
}

func (r *CachedUserRepo) Login(ctx context.Context, email, password string) (*entity.User, error) {
	return r.next.Login(ctx, email, password)
}

func (r *CachedUserRepo) get(ctx context.Context, id int64) (*entity.User, bool) {
	data, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("reading cached user", zap.Int64("user_id", id), zap.Error(err))
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		r.logger.Warn("decoding cached user", zap.Int64("user_id", id), zap.Error(err))
		return nil, false
	}

	return &entity.User{
		ID:           cu.ID,
		Name:         cu.Name,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}, true
}

func (r *CachedUserRepo) set(ctx context.Context, user *entity.User) {
	data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		r.logger.Warn("encoding cached user", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}

	if err := r.client.Set(ctx, userKey(user.ID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("writing cached user", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func (r *CachedUserRepo) evict(ctx context.Context, id int64) {
	if err := r.client.Del(ctx, userKey(id)).Err(); err != nil {
		r.logger.Warn("evicting cached user", zap.Int64("user_id", id), zap.Error(err))
	}
}
