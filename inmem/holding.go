package inmem

import (
	"sync"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

// HoldingRepository keeps holdings in memory. Atomically serializes
// writers but does not roll back on failure, which is acceptable for a
// single-process development setup and for tests.
type HoldingRepository struct {
	txMutex sync.Mutex

	holdingsMutex sync.RWMutex
	holdings      map[string]*tracker.Holding
}

func NewHoldingRepository() *HoldingRepository {
	return &HoldingRepository{
		holdings: make(map[string]*tracker.Holding),
	}
}

func (hr *HoldingRepository) Save(holding *tracker.Holding) error {
	hr.holdingsMutex.Lock()
	defer hr.holdingsMutex.Unlock()

	hr.holdings[holding.ID.String()] = copyHolding(holding)

	return nil
}

func (hr *HoldingRepository) SaveAll(holdings ...*tracker.Holding) error {
	hr.holdingsMutex.Lock()
	defer hr.holdingsMutex.Unlock()

	for _, holding := range holdings {
		hr.holdings[holding.ID.String()] = copyHolding(holding)
	}

	return nil
}

func (hr *HoldingRepository) FindByID(id string) (*tracker.Holding, error) {
	hr.holdingsMutex.RLock()
	defer hr.holdingsMutex.RUnlock()

	holding, exists := hr.holdings[id]
	if !exists {
		return nil, nil
	}

	return copyHolding(holding), nil
}

func (hr *HoldingRepository) FindByUserAssetPlatform(
	userID, assetID, platform string,
) (*tracker.Holding, error) {
	hr.holdingsMutex.RLock()
	defer hr.holdingsMutex.RUnlock()

	for _, holding := range hr.holdings {
		if holding.UserID == userID &&
			holding.AssetID == assetID &&
			holding.Platform == platform {
			return copyHolding(holding), nil
		}
	}

	return nil, nil
}

func (hr *HoldingRepository) DeleteByID(id string) error {
	hr.holdingsMutex.Lock()
	defer hr.holdingsMutex.Unlock()

	delete(hr.holdings, id)

	return nil
}

func (hr *HoldingRepository) Atomically(
	fn func(repository tracker.HoldingRepository) error,
) error {
	hr.txMutex.Lock()
	defer hr.txMutex.Unlock()

	return fn(hr)
}

func copyHolding(holding *tracker.Holding) *tracker.Holding {
	holdingCopy := *holding
	return &holdingCopy
}
