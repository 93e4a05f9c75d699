package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tasmil-labs/tasmilindexer/internal/config"
	"github.com/tasmil-labs/tasmilindexer/internal/logging"
	"github.com/tasmil-labs/tasmilindexer/internal/orchestrator"
	"github.com/tasmil-labs/tasmilindexer/internal/storage"
	"github.com/tasmil-labs/tasmilindexer/internal/txstream"
	"github.com/tasmil-labs/tasmilindexer/internal/version"
	"github.com/tasmil-labs/tasmilindexer/internal/window"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	_ "go.uber.org/automaxprocs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

const (
	programName = "tasmilindexer"
)

var cmdlineFlags struct {
	configFile string
	version    bool
}

func main() {
	flag.StringVar(&cmdlineFlags.configFile, "config", "", "path to config file to load")
	flag.BoolVar(&cmdlineFlags.version, "version", false, "show version")
	flag.Parse()

	if cmdlineFlags.version {
		fmt.Printf("%s %s\n", programName, version.GetVersionString())
		os.Exit(0)
	}

	cfg, err := config.Load(cmdlineFlags.configFile)
	if err != nil {
		fmt.Printf("Failed to load config: %s\n", err)
		os.Exit(1)
	}

	logging.Configure()
	logger := logging.GetLogger()
	defer func() {
		if err := logger.Sync(); err != nil {
			return
		}
	}()

	if cfg.Debug.ListenPort > 0 {
		http.Handle("/metrics", promhttp.Handler())
		logger.Infof("starting debug listener on %s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort)
		go func() {
			err := http.ListenAndServe(fmt.Sprintf("%s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort), nil)
			if err != nil {
				logger.Fatalf("failed to start debug listener: %s", err)
			}
		}()
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	if err != nil {
		logger.Fatalw("failed to build trace exporter", "error", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	otel.SetTracerProvider(tracerProvider)
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Errorw("failed to shut down tracer provider", "error", err)
		}
	}()

	db, err := gorm.Open(postgres.Open(cfg.Database.ConnectionString), &gorm.Config{})
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	if err := db.Use(tracing.NewPlugin()); err != nil {
		logger.Fatalw("failed to install gorm tracing plugin", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalw("failed to get underlying sql.DB", "error", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.ConnectionPoolSize)

	writer := storage.NewWriter(db)
	if err := writer.AutoMigrate(); err != nil {
		logger.Fatalw("failed to migrate storage schema", "error", err)
	}

	winManager := window.NewManager(db)
	if err := winManager.Bootstrap(context.Background()); err != nil {
		// Bootstrap failures are logged, not fatal, per the propagation
		// policy: a reset that can't complete leaves stale data visible
		// rather than stopping the process entirely.
		logger.Errorw("rolling window bootstrap failed", "error", err)
	}

	stream := txstream.NewGRPCStream(cfg.Stream)
	orch := orchestrator.New(writer, winManager)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	progress := make(chan string)
	go func() {
		if err := orch.Run(ctx, stream, progress); err != nil {
			logger.Errorw("orchestrator stopped", "error", err)
		}
		close(progress)
	}()

	for update := range progress {
		logger.Info(update)
	}
}
