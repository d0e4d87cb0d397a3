package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"house_rental/internal/config"
	"house_rental/internal/handlers"
	"house_rental/internal/logger"
	"house_rental/internal/repository"
	"house_rental/internal/repository/db"
	"house_rental/internal/repository/mongostore"
	"house_rental/internal/server"
	"house_rental/internal/service"
	"house_rental/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer func() { _ = log.Sync() }()

	repos, closeStore, err := openStore(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.DB.Driver, "err", err)
	}
	defer closeStore()

	files, err := storage.NewOS(cfg.Upload.Dir)
	if err != nil {
		log.Fatalw("failed to prepare upload dir", "dir", cfg.Upload.Dir, "err", err)
	}

	limits := service.UploadLimits{
		MaxFiles:       cfg.Upload.MaxFiles,
		MaxHousePhotos: cfg.Upload.MaxHousePhotos,
		MaxFileBytes:   cfg.Upload.MaxFileBytes,
	}
	services := service.NewService(repos, service.Deps{
		Storage: files,
		Log:     log,
		Auth:    service.AuthConfig{SigningKey: []byte(cfg.JWT.Secret), TokenTTL: cfg.JWT.TTL},
		Upload:  limits,
	})
	apiHandler := handlers.NewHandler(services, log).
		WithUploads(files.HTTPFS()).
		WithUploadLimits(limits)

	handler, err := server.WithCORS(apiHandler.InitRoutes(), cfg.CORS.AllowedOrigins)
	if err != nil {
		log.Fatalw("invalid cors configuration", "origins", cfg.CORS.AllowedOrigins, "err", err)
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, handler, log)

	waitForShutdown(srv, log)
}

// openStore connects the configured backend and returns its repositories.
func openStore(cfg config.DBConfig, log *logger.Logger) (*repository.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		database := client.Database(cfg.MongoDB)
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Infow("store_ready", "driver", cfg.Driver, "db", cfg.MongoDB)
		return mongostore.NewRepository(database), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Errorw("failed to disconnect mongo", "err", err)
			}
		}, nil

	default:
		conn, err := db.InitDB(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("store_ready", "driver", cfg.Driver, "path", cfg.Path)
		return repository.NewRepository(conn), func() {
			if err := conn.Close(); err != nil {
				log.Errorw("failed to close sqlite", "err", err)
			}
		}, nil
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server_starting", "port", port)
		if err := srv.Run(port, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
