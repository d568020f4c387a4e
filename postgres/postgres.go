package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgtype"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type Config struct {
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
}

func (c *Config) connectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Address,
		c.Name,
		c.SSLMode,
	)
}

type Client struct {
	database *sqlx.DB
}

func NewClient(ctx context.Context, config *Config) (*Client, error) {
	database, err := sqlx.Connect("pgx", config.connectionString())
	if err != nil {
		return nil, fmt.Errorf("could not connect database: [%v]", err)
	}

	go func() {
		<-ctx.Done()
		_ = database.Close()
	}()

	return &Client{database: database}, nil
}

func (c *Client) instance() *sqlx.DB {
	return c.database
}

func RunMigration(logger tracker.Logger, config *Config) error {
	if len(config.MigrationDir) == 0 {
		logger.Infof("postgres migration disabled")
		return nil
	}

	logger.Infof("starting postgres migration")

	migration, err := migrate.New(
		"file://"+config.MigrationDir,
		config.connectionString(),
	)
	if err != nil {
		return err
	}

	err = migration.Up()
	if err != nil {
		if err == migrate.ErrNoChange {
			logger.Infof("postgres migration skipped as there are no changes")
			return nil
		}

		return err
	}

	logger.Infof("postgres migration performed successfully")

	return nil
}

// database is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx, so that
// repositories can run the same queries inside and outside a transaction.
type database interface {
	NamedExec(query string, arg interface{}) (sql.Result, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
}

func decimalToNumeric(value decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:    value.Coefficient(),
		Exp:    value.Exponent(),
		Status: pgtype.Present,
	}
}

func numericToDecimal(value pgtype.Numeric) (decimal.Decimal, error) {
	if value.Status != pgtype.Present {
		return decimal.Decimal{}, fmt.Errorf("numeric value is not present")
	}

	return decimal.NewFromBigInt(value.Int, value.Exp), nil
}
