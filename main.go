package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"power-store/config"
	"power-store/controller"
	"power-store/entities"
	"power-store/middleware"
	"power-store/repository"
	"power-store/router"
	"power-store/service"
	"power-store/utils"
	"power-store/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("power store stopped", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	store := repository.NewRedisStore(rdb, cfg.KeyPrefix(), repository.StoreOptions{
		MaxRetries: cfg.TxMaxRetries,
		MaxKeys:    cfg.TxMaxKeys,
	}, logger)

	var activity service.ActivityLog
	if cfg.MySQLDSN != "" {
		db, err := repository.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if activity, err = repository.NewMySQLActivityLog(ctx, db); err != nil {
			return err
		}
		logger.Info("activity log backed by mysql")
	}

	engine := service.NewEngine(store, entities.DefaultCatalog(), service.Options{
		Activity:      activity,
		IsAdmin:       service.SingleAdmin(cfg.AdminUserID),
		StartingCoins: cfg.StartingCoins,
		Logger:        logger,
	})
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	hub := ws.NewHub(engine, tokens, logger)
	ctl := controller.New(engine, hub, tokens, logger)

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.InitRouter(r, ctl, hub, tokens)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("app", cfg.AppID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// corsConfig allows every origin unless CORS_ORIGINS narrows it.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
