package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Prices groups the provider quotes for one asset. Prices keep whatever
// precision the provider returns; only holding quantities are rounded.
type Prices struct {
	USD decimal.Decimal
	EUR decimal.Decimal
	BTC decimal.Decimal
}

// Asset is the cached market data for one crypto instrument. Its id is
// the canonical id assigned by the pricing provider.
type Asset struct {
	ID            string
	Symbol        string
	Name          string
	ImageURL      string
	Prices        Prices
	LastUpdatedAt time.Time
}

// IsStale is derived at read time and never stored.
func (a *Asset) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(a.LastUpdatedAt) > threshold
}

type AssetRepository interface {
	// FindByID returns (nil, nil) when the asset is not cached.
	FindByID(id string) (*Asset, error)

	Save(asset *Asset) error

	FindAll() ([]*Asset, error)
}

// AssetData is the provider-shaped result of a price fetch.
type AssetData struct {
	ID       string
	Symbol   string
	Name     string
	ImageURL string
	Prices   Prices
}

type AssetProvider interface {
	// FetchAsset returns (nil, nil) when the provider has no data for
	// the given id.
	FetchAsset(ctx context.Context, id string) (*AssetData, error)
}

// NormalizeAssetID maps caller-supplied ids onto the provider's canonical
// lowercase form.
func NormalizeAssetID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
