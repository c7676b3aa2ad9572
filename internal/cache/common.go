package cache

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/riskgate/riskgate/internal/configuration"
	"github.com/riskgate/riskgate/internal/models"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

type RueidisCache struct {
	client rueidis.Client
}

// NewCache builds the configured cache backend. The memory backend keeps the
// counters in-process; it is only suitable for single-instance deployments.
func NewCache(config models.CacheConfiguration) ICache {
	switch config.Type {
	case "redis", "valkey":
		cache, err := newRueidisCache(
			config.Redis.Hosts,
			config.Redis.Password,
			config.Redis.TLSEnabled,
			config.Redis.TLSServerName,
			config.Type,
		)
		if err != nil {
			zap.L().Fatal("Failed to initialize cache", zap.Error(err))
		}
		return cache
	default:
		zap.L().Warn("Using in-memory cache; counters are not shared across instances")
		return NewMemoryCache()
	}
}

func newRueidisCache(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	errorContext string,
) (*RueidisCache, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", errorContext, err)
	}
	return &RueidisCache{client: client}, nil
}

func (r *RueidisCache) GetTOTPAttempts(userID string) (int, error) {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID)

	count, err := r.client.Do(ctx, r.client.B().Get().Key(key).Build()).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return int(count), nil
}

func (r *RueidisCache) IncrementTOTPAttempts(userID string) error {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID)

	_, err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return err
	}

	return r.client.Do(
		ctx,
		r.client.B().Expire().Key(key).Seconds(int64(configuration.TOTPLockoutSeconds)).Build(),
	).Error()
}

func (r *RueidisCache) ResetTOTPAttempts(userID string) error {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID)

	return r.client.Do(ctx, r.client.B().Del().Key(key).Build()).Error()
}

func (r *RueidisCache) IsTOTPCodeUsed(userID string, code string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheTOTPUsedKey, userID, code)

	result, err := r.client.Do(ctx, r.client.B().Exists().Key(key).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

func (r *RueidisCache) MarkTOTPCodeUsed(userID string, code string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheTOTPUsedKey, userID, code)

	// SET key value NX EX ttl
	// Returns OK if set, nil (RedisNil) if not set (already exists)
	err := r.client.Do(
		ctx,
		r.client.B().Set().Key(key).Value("1").Nx().ExSeconds(int64(configuration.TOTPCodeTTL)).Build(),
	).Error()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *RueidisCache) Close() {
	r.client.Close()
}
