package services

import (
	"context"
	"errors"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/cache"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

// ErrCacheMiss is returned by the cached getters when nothing is stored.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	CacheAmbulance(ctx context.Context, ambulance *models.Ambulance) error
	GetCachedAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error)
	InvalidateAmbulance(ctx context.Context, ambulanceID string) error
}

// CacheStore is the subset of the Redis client the cache service needs.
type CacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheService struct {
	store  CacheStore
	isMiss func(error) bool
	ttl    time.Duration
	logger *logger.Logger
}

func NewCacheService(redisCache *cache.RedisCache, ttl time.Duration, log *logger.Logger) CacheService {
	return newCacheService(redisCache, cache.IsMiss, ttl, log)
}

func newCacheService(store CacheStore, isMiss func(error) bool, ttl time.Duration, log *logger.Logger) *cacheService {
	if ttl <= 0 {
		ttl = utils.AmbulanceCacheTTL
	}
	return &cacheService{
		store:  store,
		isMiss: isMiss,
		ttl:    ttl,
		logger: log,
	}
}

func (s *cacheService) CacheAmbulance(ctx context.Context, ambulance *models.Ambulance) error {
	return s.store.Set(ctx, ambulanceCacheKey(ambulance.AmbulanceID), ambulance, s.ttl)
}

func (s *cacheService) GetCachedAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	var ambulance models.Ambulance
	if err := s.store.Get(ctx, ambulanceCacheKey(ambulanceID), &ambulance); err != nil {
		if s.isMiss(err) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return &ambulance, nil
}

func (s *cacheService) InvalidateAmbulance(ctx context.Context, ambulanceID string) error {
	return s.store.Delete(ctx, ambulanceCacheKey(ambulanceID))
}

// noopCacheService is used when Redis is disabled. Every read misses.
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) CacheAmbulance(ctx context.Context, ambulance *models.Ambulance) error {
	return nil
}

func (noopCacheService) GetCachedAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	return nil, ErrCacheMiss
}

func (noopCacheService) InvalidateAmbulance(ctx context.Context, ambulanceID string) error {
	return nil
}

func ambulanceCacheKey(ambulanceID string) string {
	return utils.AmbulanceCacheKeyPrefix + ambulanceID
}
