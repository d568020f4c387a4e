package main

import (
	"github.com/sherifabdlnaby/configuro"
)

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging  Logging
	Server   Server
	Database Database
	Pubsub   Pubsub

	// Platforms seeds the in-memory platform registry when the
	// database is disabled. With postgres, the platform table is the
	// registry and this list is ignored.
	Platforms []string
}

type Logging struct {
	Level  string
	Format string
}

type Server struct {
	Address string
}

type Database struct {
	Enabled      bool
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
}

type Pubsub struct {
	Enabled   bool
	ProjectID string
	TopicID   string
}

func readConfig() (*Config, error) {
	loader, err := configuro.NewConfig()
	if err != nil {
		return nil, err
	}

	// Default config values.
	config := &Config{
		Logging: Logging{
			Level: "info",
		},
		Server: Server{
			Address: ":8080",
		},
		Database: Database{
			Address:      "localhost:5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "postgres",
			SSLMode:      "disable",
			MigrationDir: "database/migrations",
		},
		Platforms: []string{"BINANCE", "COINBASE", "TREZOR"},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	err = loader.Validate(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
