package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgtype"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type AssetRepository struct {
	client *Client
}

func NewAssetRepository(client *Client) *AssetRepository {
	return &AssetRepository{client: client}
}

func (ar *AssetRepository) FindByID(id string) (*tracker.Asset, error) {
	query := `SELECT id, symbol, name, image_url, usd_price, eur_price,
       		btc_price, last_updated_at
		FROM asset WHERE id = $1`

	var row assetRow

	err := ar.client.instance().Get(&row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"could not execute query for asset [%v]: [%v]",
			id,
			err,
		)
	}

	return row.unwrap()
}

func (ar *AssetRepository) Save(asset *tracker.Asset) error {
	query := `INSERT INTO asset (id, symbol, name, image_url, usd_price,
        	eur_price, btc_price, last_updated_at)
		VALUES (:id, :symbol, :name, :image_url, :usd_price,
		        :eur_price, :btc_price, :last_updated_at)
		ON CONFLICT (id) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			image_url = EXCLUDED.image_url,
			usd_price = EXCLUDED.usd_price,
			eur_price = EXCLUDED.eur_price,
			btc_price = EXCLUDED.btc_price,
			last_updated_at = EXCLUDED.last_updated_at`

	_, err := ar.client.instance().NamedExec(query, new(assetRow).wrap(asset))
	if err != nil {
		return fmt.Errorf(
			"could not execute command for asset [%v]: [%v]",
			asset.ID,
			err,
		)
	}

	return nil
}

func (ar *AssetRepository) FindAll() ([]*tracker.Asset, error) {
	query := `SELECT id, symbol, name, image_url, usd_price, eur_price,
       		btc_price, last_updated_at
		FROM asset ORDER BY id ASC`

	var rows []assetRow

	err := ar.client.instance().Select(&rows, query)
	if err != nil {
		return nil, fmt.Errorf("could not execute query for assets: [%v]", err)
	}

	assets := make([]*tracker.Asset, 0, len(rows))

	for _, row := range rows {
		asset, err := row.unwrap()
		if err != nil {
			return nil, err
		}

		assets = append(assets, asset)
	}

	return assets, nil
}

type assetRow struct {
	ID            string         `db:"id"`
	Symbol        string         `db:"symbol"`
	Name          string         `db:"name"`
	ImageURL      string         `db:"image_url"`
	USDPrice      pgtype.Numeric `db:"usd_price"`
	EURPrice      pgtype.Numeric `db:"eur_price"`
	BTCPrice      pgtype.Numeric `db:"btc_price"`
	LastUpdatedAt time.Time      `db:"last_updated_at"`
}

func (ar *assetRow) wrap(asset *tracker.Asset) *assetRow {
	ar.ID = asset.ID
	ar.Symbol = asset.Symbol
	ar.Name = asset.Name
	ar.ImageURL = asset.ImageURL
	ar.USDPrice = decimalToNumeric(asset.Prices.USD)
	ar.EURPrice = decimalToNumeric(asset.Prices.EUR)
	ar.BTCPrice = decimalToNumeric(asset.Prices.BTC)
	ar.LastUpdatedAt = asset.LastUpdatedAt

	return ar
}

func (ar *assetRow) unwrap() (*tracker.Asset, error) {
	usdPrice, err := numericToDecimal(ar.USDPrice)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert asset [%v] from pg row: [%v]",
			ar.ID,
			err,
		)
	}

	eurPrice, err := numericToDecimal(ar.EURPrice)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert asset [%v] from pg row: [%v]",
			ar.ID,
			err,
		)
	}

	btcPrice, err := numericToDecimal(ar.BTCPrice)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert asset [%v] from pg row: [%v]",
			ar.ID,
			err,
		)
	}

	return &tracker.Asset{
		ID:       ar.ID,
		Symbol:   ar.Symbol,
		Name:     ar.Name,
		ImageURL: ar.ImageURL,
		Prices: tracker.Prices{
			USD: usdPrice,
			EUR: eurPrice,
			BTC: btcPrice,
		},
		LastUpdatedAt: ar.LastUpdatedAt,
	}, nil
}
