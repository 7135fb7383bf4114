package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/handlers"
	"github.com/Ramsey-B/fern/internal/repositories/leaverequest"
	"github.com/Ramsey-B/fern/internal/repositories/member"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/importer"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/tracing/exporters"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLogs,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to set up tracing, continuing without it")
	}
	if shutdownTracing != nil {
		defer shutdownTracing()
	}

	dbDep := &databaseDependency{cfg: cfg, logger: logger}
	producerDep := &producerDependency{cfg: cfg, logger: logger}

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(dbDep)
	if cfg.KafkaEnabled {
		boot.AddDependency(producerDep)
	}

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	defer func() {
		if err := boot.Stop(context.Background()); err != nil {
			logger.WithError(err).Error("Shutdown left dependencies dirty")
		}
	}()

	memberRepo := member.NewRepository(dbDep.db, logger)
	leaveRepo := leaverequest.NewRepository(dbDep.db, logger)

	classifier := matching.NewClassifier(matching.NewDefaultScorer())
	previewService := importer.NewPreviewService(logger, memberRepo, leaveRepo, classifier, cfg.ImportWorkerCount)
	emitter := events.NewEmitter(producerDep.producer, logger)

	e := buildServer(cfg, logger, previewService, leaveRepo, memberRepo, emitter)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.WithField("addr", addr).Info("HTTP server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
}

func buildServer(
	cfg config.Config,
	logger ectologger.Logger,
	previewService *importer.PreviewService,
	leaveRepo *leaverequest.Repository,
	memberRepo *member.Repository,
	emitter *events.Emitter,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.HTTPErrorHandler = middleware.Error(logger)
	e.Validator = middleware.NewRequestValidator()

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.Recover())

	handlers.NewHealthHandler().Register(e)

	api := e.Group("/api/v1")
	handlers.NewImportHandler(previewService, leaveRepo, emitter, logger).Register(api.Group("/imports"))
	handlers.NewMemberHandler(memberRepo, logger).Register(api.Group("/members"))

	return e
}

// setupTracing wires the otel tracer provider when tracing is enabled.
func setupTracing(ctx context.Context, cfg config.Config) (func(), error) {
	if !cfg.TracingEnabled {
		return nil, nil
	}

	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingOTLPEndpoint,
		Protocol: cfg.TracingOTLPProtocol,
		Insecure: true,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", cfg.AppName),
		)),
	)
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}, nil
}

// databaseDependency connects to Postgres and applies migrations.
type databaseDependency struct {
	cfg    config.Config
	logger ectologger.Logger
	db     database.DB
}

func (d *databaseDependency) GetName() string { return "postgres" }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	db, err := database.Connect(ctx, database.ConnectConfig{
		Host:            d.cfg.DatabaseHost,
		Port:            d.cfg.DatabasePort,
		User:            d.cfg.DatabaseUserName,
		Password:        d.cfg.DatabasePassword,
		Name:            d.cfg.DatabaseName,
		SSLMode:         d.cfg.DatabaseSSLMode,
		MaxOpenConns:    d.cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    d.cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: d.cfg.DatabaseConnMaxLifetime,
	}, d.logger)
	if err != nil {
		return err
	}
	d.db = db

	driver, err := migratepg.WithInstance(db.Unsafe().DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	migrations := database.NewMigrationService(d.logger, &database.MigrationConfig{
		MigrationFolderPath: d.cfg.DatabaseMigrationFolderPath,
		Version:             uint(d.cfg.DatabaseMigrationVersion),
		Force:               d.cfg.DatabaseMigrationForce,
	})
	return migrations.Migrate(d.cfg.DatabaseName, driver)
}

func (d *databaseDependency) Stop(context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// producerDependency owns the Kafka producer lifecycle.
type producerDependency struct {
	cfg      config.Config
	logger   ectologger.Logger
	producer *kafka.Producer
}

func (p *producerDependency) GetName() string { return "kafka-producer" }
func (p *producerDependency) DependsOn() []string { return nil }

func (p *producerDependency) Start(context.Context) error {
	p.producer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      p.cfg.KafkaBrokers,
		Topic:        p.cfg.KafkaOutputTopic,
		BatchSize:    p.cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(p.cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: p.cfg.KafkaRequiredAcks,
		Compression:  p.cfg.KafkaCompression,
	}, p.logger)
	return nil
}

func (p *producerDependency) Stop(context.Context) error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
