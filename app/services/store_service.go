package services

import (
	"context"
	"time"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/cache"
	"github.com/lacantina/backend/pkg/metrics"
)

const (
	storeStatusCacheKey = "store:status"
	storeStatusCacheTTL = 5 * time.Second
)

type storeStore interface {
	Get(ctx context.Context) (*models.StoreStatus, error)
	Set(ctx context.Context, isOpen bool, updatedBy string, notes string) (*models.StoreStatus, error)
}

// StoreService exposes the open/closed gate consulted before every
// order creation.
type StoreService struct {
	repo storeStore
}

func NewStoreService(repo storeStore) *StoreService {
	return &StoreService{repo: repo}
}

// GetStatus returns the current gate state, creating the default closed
// record on first read. Reads are cached briefly since the order path
// hits this on every request.
func (s *StoreService) GetStatus(ctx context.Context) (*models.StoreStatus, error) {
	var cached models.StoreStatus
	if cache.Get(storeStatusCacheKey, &cached) {
		return &cached, nil
	}

	status, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	gauge(status.IsOpen)
	_ = cache.Set(storeStatusCacheKey, status, storeStatusCacheTTL)
	return status, nil
}

// SetStatus flips the gate and records who did it.
func (s *StoreService) SetStatus(ctx context.Context, isOpen bool, actorID, notes string) (*models.StoreStatus, error) {
	status, err := s.repo.Set(ctx, isOpen, actorID, notes)
	if err != nil {
		return nil, err
	}

	gauge(status.IsOpen)
	_ = cache.Del(storeStatusCacheKey)
	return status, nil
}

func gauge(open bool) {
	if open {
		metrics.StoreOpen.Set(1)
	} else {
		metrics.StoreOpen.Set(0)
	}
}
