package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/petsitly/SitterSearchRanking/backend/internal/adapters/database"
	"github.com/petsitly/SitterSearchRanking/backend/internal/application/services"
	"github.com/petsitly/SitterSearchRanking/backend/internal/infrastructure/clients/postgres"
	"github.com/petsitly/SitterSearchRanking/backend/internal/infrastructure/observability"
	"github.com/petsitly/SitterSearchRanking/backend/pkg/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <stays.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	csvPath := flag.Arg(0)
	if csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.App.ServiceName, cfg.App.Env)
	log := observability.RunLogger(uuid.New().String())

	// Setup DB
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	// Reset store: a fresh import assumes an empty schema.
	schema := database.NewSchemaAdapter(pgClient.DB())
	if err := schema.Reset(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to reset schema")
	}
	log.Info().Msg("schema reset")

	sessions := database.NewSessionFactory(pgClient)

	// Import: raw rows -> identities -> entities, one transaction.
	importSvc := services.NewImportService(sessions, log)
	summary, err := importSvc.Run(ctx, csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	// Aggregate: merge review stats into sitters, second transaction.
	statsSvc := services.NewReviewStatsService(sessions, log)
	if err := statsSvc.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("review aggregation failed")
	}

	// Score and report.
	scoringSvc := services.NewSitterScoringService(database.NewSitterAdapter(pgClient.DB()), log)
	scored, err := scoringSvc.ScoreAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("scoring failed")
	}

	reportSvc := services.NewReportService(log)
	if err := reportSvc.Write(scored, cfg.Report.Path); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}

	log.Info().
		Int("rows", summary.RowsRead).
		Int("sitters", summary.SittersCreated).
		Dur("duration", time.Since(start)).
		Msg("import run complete")
}
