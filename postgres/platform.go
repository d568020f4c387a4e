package postgres

import (
	"database/sql"
	"fmt"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type PlatformRepository struct {
	client *Client
}

func NewPlatformRepository(client *Client) *PlatformRepository {
	return &PlatformRepository{client: client}
}

func (pr *PlatformRepository) Exists(id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM platform WHERE id = $1)`

	var exists bool

	err := pr.client.instance().Get(&exists, query, id)
	if err != nil {
		return false, fmt.Errorf(
			"could not execute query for platform [%v]: [%v]",
			id,
			err,
		)
	}

	return exists, nil
}

func (pr *PlatformRepository) Platform(id string) (*tracker.Platform, error) {
	query := `SELECT id, name FROM platform WHERE id = $1`

	var row platformRow

	err := pr.client.instance().Get(&row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"could not execute query for platform [%v]: [%v]",
			id,
			err,
		)
	}

	return &tracker.Platform{ID: row.ID, Name: row.Name}, nil
}

type platformRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
