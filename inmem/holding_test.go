package inmem

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

func TestHoldingRepository_SaveAndFind(t *testing.T) {
	repository := NewHoldingRepository()

	holding := holding(t, "user-1", "bitcoin", "BINANCE", "10.00")

	if err := repository.Save(holding); err != nil {
		t.Fatal(err)
	}

	actual, err := repository.FindByID(holding.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	assertHoldingsEqual(t, holding, actual)

	actual, err = repository.FindByUserAssetPlatform(
		"user-1",
		"bitcoin",
		"BINANCE",
	)
	if err != nil {
		t.Fatal(err)
	}

	assertHoldingsEqual(t, holding, actual)
}

func TestHoldingRepository_FindMissing(t *testing.T) {
	repository := NewHoldingRepository()

	actual, err := repository.FindByID(uuid.New().String())
	if err != nil {
		t.Fatal(err)
	}

	if actual != nil {
		t.Errorf("expected no holding, got [%+v]", actual)
	}

	actual, err = repository.FindByUserAssetPlatform(
		"user-1",
		"bitcoin",
		"BINANCE",
	)
	if err != nil {
		t.Fatal(err)
	}

	if actual != nil {
		t.Errorf("expected no holding, got [%+v]", actual)
	}
}

func TestHoldingRepository_SaveIsolatesStoredCopy(t *testing.T) {
	repository := NewHoldingRepository()

	holding := holding(t, "user-1", "bitcoin", "BINANCE", "10.00")

	if err := repository.Save(holding); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's instance must not leak into the store.
	holding.Subtract(decimal.RequireFromString("5.00"))

	actual, err := repository.FindByID(holding.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if !actual.Quantity.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf(
			"unexpected stored quantity\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			"10.00",
			actual.Quantity.StringFixed(2),
		)
	}
}

func TestHoldingRepository_DeleteByID(t *testing.T) {
	repository := NewHoldingRepository()

	holding := holding(t, "user-1", "bitcoin", "BINANCE", "10.00")

	if err := repository.Save(holding); err != nil {
		t.Fatal(err)
	}

	if err := repository.DeleteByID(holding.ID.String()); err != nil {
		t.Fatal(err)
	}

	actual, err := repository.FindByID(holding.ID.String())
	if err != nil {
		t.Fatal(err)
	}

	if actual != nil {
		t.Errorf("expected no holding after deletion, got [%+v]", actual)
	}
}

func TestHoldingRepository_Atomically(t *testing.T) {
	repository := NewHoldingRepository()

	first := holding(t, "user-1", "bitcoin", "BINANCE", "10.00")
	second := holding(t, "user-1", "bitcoin", "COINBASE", "5.00")

	err := repository.Atomically(
		func(txRepository tracker.HoldingRepository) error {
			return txRepository.SaveAll(first, second)
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	for _, expected := range []*tracker.Holding{first, second} {
		actual, err := repository.FindByID(expected.ID.String())
		if err != nil {
			t.Fatal(err)
		}

		assertHoldingsEqual(t, expected, actual)
	}
}

func assertHoldingsEqual(
	t *testing.T,
	expected *tracker.Holding,
	actual *tracker.Holding,
) {
	if actual == nil {
		t.Errorf("expected holding [%v], got none", expected.ID)
		return
	}

	if expected.ID.String() != actual.ID.String() ||
		expected.UserID != actual.UserID ||
		expected.AssetID != actual.AssetID ||
		expected.Platform != actual.Platform ||
		!expected.Quantity.Equal(actual.Quantity) {
		t.Errorf(
			"unexpected holding\n"+
				"expected: [%+v]\n"+
				"actual:   [%+v]",
			expected,
			actual,
		)
	}
}

func holding(
	t *testing.T,
	userID, assetID, platform, quantity string,
) *tracker.Holding {
	return &tracker.Holding{
		ID:       uuid.New(),
		UserID:   userID,
		AssetID:  assetID,
		Platform: platform,
		Quantity: decimal.RequireFromString(quantity),
	}
}
