package tracker

import (
	"context"
	"fmt"
	"time"
)

// AssetStalenessThreshold is the window after which cached market data is
// considered stale on the next read.
const AssetStalenessThreshold = 10 * time.Minute

// MarketService is a read-through cache over asset market data. Staleness
// is evaluated lazily on reads; there is no background refresh.
type MarketService struct {
	assetRepository AssetRepository
	assetProvider   AssetProvider
	clock           Clock
	logger          Logger
}

func NewMarketService(
	assetRepository AssetRepository,
	assetProvider AssetProvider,
	clock Clock,
	logger Logger,
) *MarketService {
	return &MarketService{
		assetRepository: assetRepository,
		assetProvider:   assetProvider,
		clock:           clock,
		logger:          logger,
	}
}

func (ms *MarketService) GetAsset(
	ctx context.Context,
	assetID string,
) (*Asset, error) {
	assetID = NormalizeAssetID(assetID)

	asset, err := ms.assetRepository.FindByID(assetID)
	if err != nil {
		return nil, fmt.Errorf(
			"could not read asset [%v] from cache: [%v]",
			assetID,
			err,
		)
	}

	if asset == nil {
		return ms.fetchAndCache(ctx, assetID)
	}

	if !asset.IsStale(ms.clock.Now(), AssetStalenessThreshold) {
		return asset, nil
	}

	return ms.refresh(ctx, asset), nil
}

// GetAllAssets lists whatever is cached. Listing never calls the provider
// and never checks staleness.
func (ms *MarketService) GetAllAssets() ([]*Asset, error) {
	assets, err := ms.assetRepository.FindAll()
	if err != nil {
		return nil, fmt.Errorf("could not list cached assets: [%v]", err)
	}

	return assets, nil
}

func (ms *MarketService) fetchAndCache(
	ctx context.Context,
	assetID string,
) (*Asset, error) {
	data, err := ms.assetProvider.FetchAsset(ctx, assetID)
	if err != nil {
		// A cold miss with a failing provider surfaces as not-found,
		// never as a raw transport error.
		ms.logger.Errorf(
			"could not fetch asset [%v] from provider: [%v]",
			assetID,
			err,
		)
		return nil, NewNotFoundError("asset [%v] not found", assetID)
	}

	if data == nil {
		return nil, NewNotFoundError("asset [%v] not found", assetID)
	}

	asset := &Asset{
		ID:            assetID,
		Symbol:        data.Symbol,
		Name:          data.Name,
		ImageURL:      data.ImageURL,
		Prices:        data.Prices,
		LastUpdatedAt: ms.clock.Now(),
	}

	if err := ms.assetRepository.Save(asset); err != nil {
		return nil, fmt.Errorf("could not cache asset [%v]: [%v]", assetID, err)
	}

	return asset, nil
}

// refresh never fails: when the provider errors out or returns nothing,
// the existing stale asset is served unchanged and the timestamp stays
// untouched, so the asset remains stale on the next read too.
func (ms *MarketService) refresh(ctx context.Context, asset *Asset) *Asset {
	data, err := ms.assetProvider.FetchAsset(ctx, asset.ID)
	if err != nil {
		ms.logger.Warningf(
			"could not refresh asset [%v], serving stale data: [%v]",
			asset.ID,
			err,
		)
		return asset
	}

	if data == nil {
		ms.logger.Warningf(
			"provider returned no data for asset [%v], serving stale data",
			asset.ID,
		)
		return asset
	}

	asset.Prices = data.Prices
	if len(data.ImageURL) > 0 && data.ImageURL != asset.ImageURL {
		asset.ImageURL = data.ImageURL
	}
	asset.LastUpdatedAt = ms.clock.Now()

	if err := ms.assetRepository.Save(asset); err != nil {
		ms.logger.Errorf(
			"could not persist refreshed asset [%v]: [%v]",
			asset.ID,
			err,
		)
	}

	return asset
}
