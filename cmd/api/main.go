package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-lost-found/internal/adapters/auth/jwtauth"
	"pet-lost-found/internal/adapters/locks/redislock"
	"pet-lost-found/internal/adapters/messaging/twilio"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/platform/config"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/router"

	"github.com/joho/godotenv"
)

// @title Pet Lost & Found API
// @version 1.0
// @description Alertas de mascotas perdidas, avistamientos y difusión por WhatsApp.
// @BasePath /
func main() {
	// .env es opcional (dev)
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.NewFromEnv().Error("failed to load config", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	opts := router.Options{
		Logger: log,
		Config: *cfg,
	}

	// Postgres opcional: sin DSN corre con repos in-memory
	if cfg.Database.DSN != "" {
		if cfg.Database.RunMigrations {
			if err := pg.RunMigrations(cfg.Database.DSN, log); err != nil {
				return err
			}
		}
		db, err := pg.Open(cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			ConnMaxLife:  cfg.Database.ConnMaxLife,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	rdb, err := redislock.NewClient(context.Background(), redislock.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		opts.Guard = redislock.NewGuard(rdb)
	}

	if cfg.Twilio.Enabled() {
		gw, err := twilio.New(twilio.Config{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			BaseURL:    cfg.Twilio.BaseURL,
			Timeout:    cfg.Twilio.Timeout,
			MaxRetries: cfg.Twilio.MaxRetries,
		}, log)
		if err != nil {
			return err
		}
		opts.Gateway = gw
	} else {
		log.Warn("twilio not configured, messages are only logged", nil)
	}

	if !cfg.DevMode() {
		v, err := jwtauth.NewVerifier(jwtauth.Config{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.Issuer,
		})
		if err != nil {
			return err
		}
		opts.AuthVerifier = v
	} else {
		log.Warn("AUTH_JWT_SECRET not set, accepting X-Debug-Phone", nil)
	}

	app := router.New(opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", map[string]any{"error": err})
	}

	// difusiones en curso terminan antes de cerrar la base
	app.Wait()
	log.Info("server stopped", nil)
	return nil
}
