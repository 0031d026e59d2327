package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakewell-labs/staking-vault/internal/api"
	"github.com/stakewell-labs/staking-vault/internal/config"
	"github.com/stakewell-labs/staking-vault/internal/db"
	dbmodel "github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/ledger"
	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/observability/tracing"
	"github.com/stakewell-labs/staking-vault/internal/queue"
	"github.com/stakewell-labs/staking-vault/internal/services"
	"github.com/stakewell-labs/staking-vault/internal/token"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking vault server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var tokenClient token.TokenInterface
	tokenClient, err = token.NewInMemoryLedgerFromConfig(&cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating token client")
	}
	tokenClient = token.NewTokenClientWithMetrics(tokenClient)

	stakingLedger, err := ledger.New(&cfg.Ledger, tokenClient)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating staking ledger")
	}

	// event publishing is disabled when no queue is configured
	var emitter events.Emitter = events.NoopEmitter{}
	if cfg.Queue != nil {
		emitter, err = queue.NewQueueManager(cfg.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize queue manager")
		}
	}
	defer emitter.Shutdown()

	service := services.NewService(cfg, dbClient, stakingLedger, tokenClient, emitter)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	if err := service.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while restoring ledger state")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	service.StartUnlockChecker(ctx)
	service.StartStatsPoller(ctx)

	return api.New(cfg, service).Start(ctx)
}
