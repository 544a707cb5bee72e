// Package server wires the job portal together: database and migrations,
// CV file storage, notification delivery, the Prometheus endpoint and the
// gRPC server, and shuts them down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/filestore"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/notify"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/jobportal/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	metrics  *metrics.Metrics
	services gs.Services
	closers  []func() error
}

// OpenDB opens the Postgres pool and applies pending migrations.
func OpenDB(ctx context.Context, dsn string, rm repomanager.RepositoryManager) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := OpenDB(ctx, c.DatabaseDSN, rm)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:  c,
		logger:  logger,
		metrics: metrics.New(),
		closers: []func() error{db.Close},
	}

	store, err := newFileStore(c)
	if err != nil {
		_ = app.close()
		return nil, err
	}

	var pushers []notify.Pusher
	if c.RedisURL != "" {
		client, err := notify.NewRedisClient(ctx, c.RedisURL)
		if err != nil {
			_ = app.close()
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		pushers = append(pushers, notify.NewRedisPublisher(client))
	}
	sink := notify.NewStoreSink(db, rm, logger, pushers...)

	app.services = gs.Services{
		Identity:      services.NewIdentityService(db, rm),
		Auth:          services.NewAuthService(db, rm, c, logger),
		Jobs:          services.NewJobService(db, rm, app.metrics, logger),
		Applications:  services.NewApplicationService(db, rm, sink, app.metrics, logger),
		CVs:           services.NewCVService(db, rm, store),
		SavedJobs:     services.NewSavedJobService(db, rm),
		Notifications: services.NewNotificationService(db, rm),
		Dashboard:     services.NewDashboardService(db, rm),
		Admin:         services.NewAdminService(db, rm, sink, app.metrics, logger),
	}

	return app, nil
}

func newFileStore(c *config.Config) (filestore.Store, error) {
	switch c.FileStoreBackend {
	case config.FileStoreS3:
		return filestore.NewS3Store(filestore.S3Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
			Expiry:       c.PresignExpiry,
		}), nil
	case config.FileStoreMinio:
		return filestore.NewMinioStore(filestore.MinioOptions{
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			Expiry:    c.PresignExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown file store backend %q", c.FileStoreBackend)
	}
}

func (app *App) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	return errors.Join(errs...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.metrics, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is done, then
// releases the database and Redis connections.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.close(); err != nil {
		app.logger.Error(context.Background(), "shutdown error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
