package inmem

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

func TestAssetRepository_SaveAndFind(t *testing.T) {
	repository := NewAssetRepository()

	asset := asset(t, "bitcoin", "100000.50")

	if err := repository.Save(asset); err != nil {
		t.Fatal(err)
	}

	actual, err := repository.FindByID("bitcoin")
	if err != nil {
		t.Fatal(err)
	}

	if actual == nil {
		t.Fatal("expected asset, got none")
	}

	if actual.ID != asset.ID ||
		!actual.Prices.USD.Equal(asset.Prices.USD) ||
		!actual.LastUpdatedAt.Equal(asset.LastUpdatedAt) {
		t.Errorf(
			"unexpected asset\n"+
				"expected: [%+v]\n"+
				"actual:   [%+v]",
			asset,
			actual,
		)
	}
}

func TestAssetRepository_SaveOverwrites(t *testing.T) {
	repository := NewAssetRepository()

	if err := repository.Save(asset(t, "bitcoin", "100000.50")); err != nil {
		t.Fatal(err)
	}

	if err := repository.Save(asset(t, "bitcoin", "105000.00")); err != nil {
		t.Fatal(err)
	}

	actual, err := repository.FindByID("bitcoin")
	if err != nil {
		t.Fatal(err)
	}

	if !actual.Prices.USD.Equal(decimal.RequireFromString("105000.00")) {
		t.Errorf(
			"unexpected price\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			"105000.00",
			actual.Prices.USD,
		)
	}
}

func TestAssetRepository_FindMissing(t *testing.T) {
	repository := NewAssetRepository()

	actual, err := repository.FindByID("no-such-coin")
	if err != nil {
		t.Fatal(err)
	}

	if actual != nil {
		t.Errorf("expected no asset, got [%+v]", actual)
	}
}

func TestAssetRepository_FindAll(t *testing.T) {
	repository := NewAssetRepository()

	if err := repository.Save(asset(t, "ethereum", "4000.00")); err != nil {
		t.Fatal(err)
	}

	if err := repository.Save(asset(t, "bitcoin", "100000.50")); err != nil {
		t.Fatal(err)
	}

	assets, err := repository.FindAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(assets) != 2 {
		t.Fatalf(
			"unexpected assets count\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			2,
			len(assets),
		)
	}

	// FindAll lists assets ordered by id.
	if assets[0].ID != "bitcoin" || assets[1].ID != "ethereum" {
		t.Errorf(
			"unexpected assets order: [%v], [%v]",
			assets[0].ID,
			assets[1].ID,
		)
	}
}

func asset(t *testing.T, id, usdPrice string) *tracker.Asset {
	return &tracker.Asset{
		ID:       id,
		Symbol:   id,
		Name:     id,
		ImageURL: "image-url",
		Prices: tracker.Prices{
			USD: decimal.RequireFromString(usdPrice),
			EUR: decimal.RequireFromString(usdPrice),
			BTC: decimal.RequireFromString("1"),
		},
		LastUpdatedAt: time.Date(2021, 6, 11, 15, 0, 0, 0, time.UTC),
	}
}
