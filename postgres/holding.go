package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgtype"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type HoldingRepository struct {
	client    *Client
	idService tracker.IDService

	// tx is set on the transaction-bound copy handed to Atomically
	// closures; when nil, queries run against the plain connection.
	tx database
}

func NewHoldingRepository(
	client *Client,
	idService tracker.IDService,
) *HoldingRepository {
	return &HoldingRepository{client: client, idService: idService}
}

func (hr *HoldingRepository) database() database {
	if hr.tx != nil {
		return hr.tx
	}

	return hr.client.instance()
}

func (hr *HoldingRepository) Save(holding *tracker.Holding) error {
	query := `INSERT INTO holding (id, user_id, asset_id, platform, quantity)
		VALUES (:id, :user_id, :asset_id, :platform, :quantity)
		ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity`

	_, err := hr.database().NamedExec(query, new(holdingRow).wrap(holding))
	if err != nil {
		return fmt.Errorf(
			"could not execute command for holding [%v]: [%v]",
			holding.ID,
			err,
		)
	}

	return nil
}

func (hr *HoldingRepository) SaveAll(holdings ...*tracker.Holding) error {
	for _, holding := range holdings {
		if err := hr.Save(holding); err != nil {
			return err
		}
	}

	return nil
}

func (hr *HoldingRepository) FindByID(id string) (*tracker.Holding, error) {
	query := `SELECT id, user_id, asset_id, platform, quantity
		FROM holding WHERE id = $1`

	var row holdingRow

	err := hr.database().Get(&row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"could not execute query for holding [%v]: [%v]",
			id,
			err,
		)
	}

	return row.unwrap(hr.idService)
}

func (hr *HoldingRepository) FindByUserAssetPlatform(
	userID, assetID, platform string,
) (*tracker.Holding, error) {
	query := `SELECT id, user_id, asset_id, platform, quantity
		FROM holding WHERE user_id = $1 AND asset_id = $2 AND platform = $3`

	var row holdingRow

	err := hr.database().Get(&row, query, userID, assetID, platform)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"could not execute query for holding tuple [%v/%v/%v]: [%v]",
			userID,
			assetID,
			platform,
			err,
		)
	}

	return row.unwrap(hr.idService)
}

func (hr *HoldingRepository) DeleteByID(id string) error {
	query := `DELETE FROM holding WHERE id = $1`

	_, err := hr.database().Exec(query, id)
	if err != nil {
		return fmt.Errorf(
			"could not execute command for holding [%v]: [%v]",
			id,
			err,
		)
	}

	return nil
}

// Atomically runs fn against a transaction-bound repository. A nested
// call inside an already transaction-bound repository reuses the ongoing
// transaction.
func (hr *HoldingRepository) Atomically(
	fn func(repository tracker.HoldingRepository) error,
) error {
	if hr.tx != nil {
		return fn(hr)
	}

	tx, err := hr.client.instance().Beginx()
	if err != nil {
		return fmt.Errorf("could not begin transaction: [%v]", err)
	}

	txRepository := &HoldingRepository{
		client:    hr.client,
		idService: hr.idService,
		tx:        tx,
	}

	if err := fn(txRepository); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: [%v]", err)
	}

	return nil
}

type holdingRow struct {
	ID       string         `db:"id"`
	UserID   string         `db:"user_id"`
	AssetID  string         `db:"asset_id"`
	Platform string         `db:"platform"`
	Quantity pgtype.Numeric `db:"quantity"`
}

func (hr *holdingRow) wrap(holding *tracker.Holding) *holdingRow {
	hr.ID = holding.ID.String()
	hr.UserID = holding.UserID
	hr.AssetID = holding.AssetID
	hr.Platform = holding.Platform
	hr.Quantity = decimalToNumeric(holding.Quantity)

	return hr
}

func (hr *holdingRow) unwrap(
	idService tracker.IDService,
) (*tracker.Holding, error) {
	id, err := idService.NewIDFromString(hr.ID)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert holding [%v] from pg row: [%v]",
			hr.ID,
			err,
		)
	}

	quantity, err := numericToDecimal(hr.Quantity)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert holding [%v] from pg row: [%v]",
			hr.ID,
			err,
		)
	}

	return &tracker.Holding{
		ID:       id,
		UserID:   hr.UserID,
		AssetID:  hr.AssetID,
		Platform: hr.Platform,
		Quantity: quantity,
	}, nil
}
