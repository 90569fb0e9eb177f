package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/config"
	"github.com/spec-kit/mosquito-alert/internal/domain"
	"github.com/spec-kit/mosquito-alert/internal/store"
)

// RedisStore persists the session user as a JSON string under the shared
// session key. It is the backend of choice when the service runs behind more
// than one process.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, logger: logger}
}

// Load reads the stored user, returning (nil, nil) when none exists.
func (r *RedisStore) Load(ctx context.Context) (*domain.User, error) {
	data, err := r.client.Get(ctx, store.SessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		r.logger.Warn("discarding corrupt session record", zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// Save writes the user record; a nil user clears it.
func (r *RedisStore) Save(ctx context.Context, user *domain.User) error {
	if user == nil {
		return r.Clear(ctx)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, store.SessionKey, data, 0).Err()
}

// Clear removes the stored record.
func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, store.SessionKey).Err()
}

// Ping verifies Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisStore) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
