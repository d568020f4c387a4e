package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	gecko "github.com/superoo7/go-gecko/v3"
	"github.com/superoo7/go-gecko/v3/types"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

const requestTimeout = 1 * time.Minute

const (
	usdCurrency = "usd"
	eurCurrency = "eur"
	btcCurrency = "btc"
)

// AssetProvider fetches asset market data from the CoinGecko API. The
// request timeout is owned here; callers never block longer than that.
type AssetProvider struct {
	client *gecko.Client
}

func NewAssetProvider() *AssetProvider {
	httpClient := &http.Client{Timeout: requestTimeout}

	return &AssetProvider{client: gecko.NewClient(httpClient)}
}

func (ap *AssetProvider) FetchAsset(
	ctx context.Context,
	id string,
) (*tracker.AssetData, error) {
	coin, err := ap.client.CoinsID(id, false, false, true, false, false, false)
	if err != nil {
		return nil, fmt.Errorf("could not fetch coin [%v]: [%v]", id, err)
	}

	if coin == nil || coin.MarketData == nil {
		return nil, nil
	}

	return &tracker.AssetData{
		ID:       coin.ID,
		Symbol:   coin.Symbol,
		Name:     coin.Name,
		ImageURL: coin.Image.Large,
		Prices: tracker.Prices{
			USD: currentPrice(coin.MarketData.CurrentPrice, usdCurrency),
			EUR: currentPrice(coin.MarketData.CurrentPrice, eurCurrency),
			BTC: currentPrice(coin.MarketData.CurrentPrice, btcCurrency),
		},
	}, nil
}

func currentPrice(prices types.AllCurrencies, currency string) decimal.Decimal {
	return decimal.NewFromFloat(prices[currency])
}
