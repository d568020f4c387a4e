package main

import (
	"context"
	"fmt"
	"os"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
	"github.com/clee0412/crypto-balance-tracker-sub000/coingecko"
	"github.com/clee0412/crypto-balance-tracker-sub000/httpapi"
	"github.com/clee0412/crypto-balance-tracker-sub000/inmem"
	"github.com/clee0412/crypto-balance-tracker-sub000/logrus"
	"github.com/clee0412/crypto-balance-tracker-sub000/postgres"
	"github.com/clee0412/crypto-balance-tracker-sub000/pubsub"
	"github.com/clee0412/crypto-balance-tracker-sub000/uuid"
)

func main() {
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	config, err := readConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "could not read config: [%v]", err)
		os.Exit(1)
	}

	logger := logrus.ConfigureStandardLogger(
		config.Logging.Format,
		config.Logging.Level,
	)

	idService := &uuid.IDService{}

	holdingRepository, platformRepository, assetRepository, err :=
		connectRepositories(ctx, logger, config, idService)
	if err != nil {
		logger.Fatalf("could not connect repositories: [%v]", err)
	}

	eventService, err := connectEventService(ctx, logger, &config.Pubsub)
	if err != nil {
		logger.Fatalf("could not connect event service: [%v]", err)
	}

	transferService := tracker.NewTransferService(
		holdingRepository,
		platformRepository,
		idService,
		eventService,
		logger,
	)

	marketService := tracker.NewMarketService(
		assetRepository,
		coingecko.NewAssetProvider(),
		tracker.SystemClock{},
		logger,
	)

	server := httpapi.NewServer(transferService, marketService, logger)

	logger.Infof("starting server at [%v]", config.Server.Address)

	if err := server.Run(config.Server.Address); err != nil {
		logger.Fatalf("server terminated: [%v]", err)
	}
}

func connectRepositories(
	ctx context.Context,
	logger tracker.Logger,
	config *Config,
	idService tracker.IDService,
) (
	tracker.HoldingRepository,
	tracker.PlatformRepository,
	tracker.AssetRepository,
	error,
) {
	if !config.Database.Enabled {
		logger.Infof("database disabled; using in-memory repositories")

		platforms := make([]*tracker.Platform, 0, len(config.Platforms))
		for _, platform := range config.Platforms {
			platforms = append(
				platforms,
				&tracker.Platform{ID: platform, Name: platform},
			)
		}

		return inmem.NewHoldingRepository(),
			inmem.NewPlatformRepository(platforms...),
			inmem.NewAssetRepository(),
			nil
	}

	postgresConfig := &postgres.Config{
		Address:      config.Database.Address,
		User:         config.Database.User,
		Password:     config.Database.Password,
		Name:         config.Database.Name,
		SSLMode:      config.Database.SSLMode,
		MigrationDir: config.Database.MigrationDir,
	}

	if err := postgres.RunMigration(logger, postgresConfig); err != nil {
		return nil, nil, nil, fmt.Errorf(
			"could not run postgres migration: [%v]",
			err,
		)
	}

	client, err := postgres.NewClient(ctx, postgresConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(
			"could not create postgres client: [%v]",
			err,
		)
	}

	return postgres.NewHoldingRepository(client, idService),
		postgres.NewPlatformRepository(client),
		postgres.NewAssetRepository(client),
		nil
}

func connectEventService(
	ctx context.Context,
	logger tracker.Logger,
	config *Pubsub,
) (tracker.EventService, error) {
	if !config.Enabled {
		logger.Infof("pubsub disabled; transfer events will not be published")
		return nil, nil
	}

	client, err := pubsub.NewClient(ctx, config.ProjectID, config.TopicID)
	if err != nil {
		return nil, fmt.Errorf("could not create pubsub client: [%v]", err)
	}

	return pubsub.NewEventService(client, logger), nil
}
