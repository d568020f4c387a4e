package inmem

import (
	"sort"
	"sync"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type AssetRepository struct {
	assetsMutex sync.RWMutex
	assets      map[string]*tracker.Asset
}

func NewAssetRepository() *AssetRepository {
	return &AssetRepository{
		assets: make(map[string]*tracker.Asset),
	}
}

func (ar *AssetRepository) FindByID(id string) (*tracker.Asset, error) {
	ar.assetsMutex.RLock()
	defer ar.assetsMutex.RUnlock()

	asset, exists := ar.assets[id]
	if !exists {
		return nil, nil
	}

	return copyAsset(asset), nil
}

func (ar *AssetRepository) Save(asset *tracker.Asset) error {
	ar.assetsMutex.Lock()
	defer ar.assetsMutex.Unlock()

	ar.assets[asset.ID] = copyAsset(asset)

	return nil
}

func (ar *AssetRepository) FindAll() ([]*tracker.Asset, error) {
	ar.assetsMutex.RLock()
	defer ar.assetsMutex.RUnlock()

	assets := make([]*tracker.Asset, 0, len(ar.assets))
	for _, asset := range ar.assets {
		assets = append(assets, copyAsset(asset))
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].ID < assets[j].ID
	})

	return assets, nil
}

func copyAsset(asset *tracker.Asset) *tracker.Asset {
	assetCopy := *asset
	return &assetCopy
}
