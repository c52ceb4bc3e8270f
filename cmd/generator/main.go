package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	browsing "github.com/wyfcoding/ecomsynth/internal/browsing/domain"
	catalogapp "github.com/wyfcoding/ecomsynth/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	"github.com/wyfcoding/ecomsynth/internal/export/jsonfile"
	exportmysql "github.com/wyfcoding/ecomsynth/internal/export/mysql"
	"github.com/wyfcoding/ecomsynth/internal/export/publisher"
	generation "github.com/wyfcoding/ecomsynth/internal/generation/application"
	inventory "github.com/wyfcoding/ecomsynth/internal/inventory/domain"
	sessiondomain "github.com/wyfcoding/ecomsynth/internal/session/domain"
	txndomain "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/config"
	"github.com/wyfcoding/ecomsynth/pkg/db"
	"github.com/wyfcoding/ecomsynth/pkg/logger"
	"github.com/wyfcoding/ecomsynth/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/generator/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	targets := cfg.Generator.Targets()
	logger.Info(ctx, "initializing dataset generation",
		"preset", cfg.Generator.Preset,
		"users", targets.Users,
		"products", targets.Products,
		"categories", targets.Categories,
		"sessions", targets.Sessions,
		"transactions", targets.Transactions,
		"timespan_days", cfg.Generator.TimespanDays,
		"seed", cfg.Generator.Seed,
	)

	rng := rand.New(rand.NewSource(cfg.Generator.Seed))

	// Catalog bootstrap: frozen before any session runs.
	bootstrap := catalogapp.NewBootstrapService(rng, cfg.Generator.TimespanDays)
	categories := bootstrap.GenerateCategories(targets.Categories)
	logger.Info(ctx, "categories generated", "count", len(categories))
	products := bootstrap.GenerateProducts(targets.Products, categories)
	logger.Info(ctx, "products generated", "count", len(products))
	users := bootstrap.GenerateUsers(targets.Users)
	logger.Info(ctx, "users generated", "count", len(users))

	ledger := inventory.NewLedger(products)
	initialStock := ledger.TotalStock()

	machine := browsing.NewMachine(rng)
	resolver := browsing.NewContentResolver(rng, products, categories, ledger)
	sessions := sessiondomain.NewSynthesizer(rng, users, machine, resolver, ledger, cfg.Generator.TimespanDays)
	transactions := txndomain.NewSynthesizer(rng, ledger, users, products, cfg.Generator.TimespanDays, cfg.Generator.DiscountProbability)

	driver := generation.NewDriver(rng, sessions, transactions, generation.Config{
		TargetSessions:        targets.Sessions,
		TargetTransactions:    targets.Transactions,
		StandaloneProbability: cfg.Generator.StandaloneProbability,
	})

	logger.Info(ctx, "generating sessions and transactions")
	logGeneration := logger.LogDuration(ctx, "generation loop finished")
	result := driver.Run(ctx)
	logGeneration()

	writer := jsonfile.NewWriter(cfg.Generator.OutputDir, cfg.Generator.ChunkSize)
	finalProducts := ledger.Products()

	logger.Info(ctx, "saving datasets", "output_dir", cfg.Generator.OutputDir)
	if err := writer.WriteUsers(users); err != nil {
		logger.Fatal(ctx, "failed to write users", "error", err)
	}
	if err := writer.WriteProducts(finalProducts); err != nil {
		logger.Fatal(ctx, "failed to write products", "error", err)
	}
	if err := writer.WriteCategories(categories); err != nil {
		logger.Fatal(ctx, "failed to write categories", "error", err)
	}
	if err := writer.WriteTransactions(result.Transactions); err != nil {
		logger.Fatal(ctx, "failed to write transactions", "error", err)
	}
	chunks, err := writer.WriteSessions(result.Sessions)
	if err != nil {
		logger.Fatal(ctx, "failed to write sessions", "error", err)
	}

	if cfg.Kafka.Enabled {
		if err := publishRecords(ctx, cfg, result); err != nil {
			logger.Error(ctx, "kafka publish failed", "error", err)
		}
	}

	if cfg.Database.Enabled {
		if err := loadDatabase(ctx, cfg, users, finalProducts, categories, result); err != nil {
			logger.Error(ctx, "database load failed", "error", err)
		}
	}

	logger.Info(ctx, "dataset generation complete",
		"sessions", len(result.Sessions),
		"target_sessions", targets.Sessions,
		"transactions", len(result.Transactions),
		"target_transactions", targets.Transactions,
		"session_files", chunks,
		"iterations", result.Iterations,
		"converged", result.Converged(),
		"initial_stock", initialStock,
		"remaining_stock", ledger.TotalStock(),
	)
}

func publishRecords(ctx context.Context, cfg *config.Config, result *generation.Result) error {
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		return err
	}
	defer producer.Close()

	pub := publisher.NewRecordPublisher(producer, cfg.Kafka.SessionTopic, cfg.Kafka.TransactionTopic)
	if err := pub.PublishSessions(ctx, result.Sessions); err != nil {
		return err
	}
	return pub.PublishTransactions(ctx, result.Transactions)
}

func loadDatabase(ctx context.Context, cfg *config.Config, users []*catalogdomain.User, products []*catalogdomain.Product, categories []*catalogdomain.Category, result *generation.Result) error {
	database, err := db.Init(db.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer database.Close()

	repo := exportmysql.NewDatasetRepository(database, cfg.Database.BatchSize)
	if err := repo.Migrate(); err != nil {
		return err
	}
	if err := repo.SaveUsers(ctx, users); err != nil {
		return err
	}
	if err := repo.SaveProducts(ctx, products); err != nil {
		return err
	}
	if err := repo.SaveCategories(ctx, categories); err != nil {
		return err
	}
	return repo.SaveTransactions(ctx, result.Transactions)
}
