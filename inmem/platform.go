package inmem

import (
	"sync"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type PlatformRepository struct {
	platformsMutex sync.RWMutex
	platforms      map[string]*tracker.Platform
}

func NewPlatformRepository(platforms ...*tracker.Platform) *PlatformRepository {
	repository := &PlatformRepository{
		platforms: make(map[string]*tracker.Platform),
	}

	for _, platform := range platforms {
		repository.platforms[platform.ID] = platform
	}

	return repository
}

func (pr *PlatformRepository) Exists(id string) (bool, error) {
	pr.platformsMutex.RLock()
	defer pr.platformsMutex.RUnlock()

	_, exists := pr.platforms[id]

	return exists, nil
}

func (pr *PlatformRepository) Platform(id string) (*tracker.Platform, error) {
	pr.platformsMutex.RLock()
	defer pr.platformsMutex.RUnlock()

	platform, exists := pr.platforms[id]
	if !exists {
		return nil, nil
	}

	platformCopy := *platform

	return &platformCopy, nil
}
