package tracker

import "github.com/shopspring/decimal"

// QuantityScale is the number of fractional digits a holding quantity
// carries. Every mutation re-rounds to this scale, half-up.
const QuantityScale = 2

// Holding is a user's quantity of one asset kept on one platform. At most
// one holding should exist per (user, asset, platform) tuple; callers are
// expected to look up an existing holding before creating a new one.
type Holding struct {
	ID       ID
	UserID   string
	AssetID  string
	Platform string
	Quantity decimal.Decimal
}

type HoldingRepository interface {
	Save(holding *Holding) error

	SaveAll(holdings ...*Holding) error

	// FindByID returns (nil, nil) when no holding has the given id.
	FindByID(id string) (*Holding, error)

	// FindByUserAssetPlatform returns (nil, nil) when the tuple has
	// no holding.
	FindByUserAssetPlatform(userID, assetID, platform string) (*Holding, error)

	DeleteByID(id string) error

	// Atomically runs fn against a repository whose writes commit as
	// one unit, or not at all.
	Atomically(fn func(repository HoldingRepository) error) error
}

func NewHolding(
	idService IDService,
	userID, assetID, platform string,
	quantity decimal.Decimal,
) (*Holding, error) {
	if !quantity.IsPositive() {
		return nil, NewValidationError(
			"holding quantity must be positive, got [%v]",
			quantity,
		)
	}

	return &Holding{
		ID:       idService.NewID(),
		UserID:   userID,
		AssetID:  assetID,
		Platform: platform,
		Quantity: quantity.Round(QuantityScale),
	}, nil
}

func (h *Holding) UpdateQuantity(quantity decimal.Decimal) {
	h.Quantity = quantity.Round(QuantityScale)
}

func (h *Holding) Add(amount decimal.Decimal) {
	h.Quantity = h.Quantity.Add(amount).Round(QuantityScale)
}

// Subtract does not guard against a negative result. Balance sufficiency
// is policy and belongs to callers; this primitive is mechanism only.
func (h *Holding) Subtract(amount decimal.Decimal) {
	h.Quantity = h.Quantity.Sub(amount).Round(QuantityScale)
}

func (h *Holding) HasSufficientBalance(amount decimal.Decimal) bool {
	return h.Quantity.GreaterThanOrEqual(amount)
}

func (h *Holding) IsZeroBalance() bool {
	return h.Quantity.IsZero()
}
