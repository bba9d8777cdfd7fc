package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nailbook-backend/cache"
	"nailbook-backend/config"
	"nailbook-backend/controllers"
	"nailbook-backend/repository"
	"nailbook-backend/routes"
	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting", cfg.LogFields()...)

	db, err := config.ConnectDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()

	store := repository.New(db)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := utils.RegisterValidations(); err != nil {
		return fmt.Errorf("register validations: %w", err)
	}

	zone, err := utils.NewShopZone(cfg.Shop.Timezone)
	if err != nil {
		return err
	}

	reportCache, closeCache, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	users := services.NewUserService(store, logger)
	catalog := services.NewCatalogService(store, logger)
	techs := services.NewNailTechService(store, logger)
	revenue := services.NewRevenueService(store, reportCache, cfg.Redis.ReportTTL, zone, logger)
	appointments := services.NewAppointmentService(store, store, users, techs, revenue, zone, logger).
		WithHours(services.ShopHours{
			OpenHour:  cfg.Shop.OpenHour,
			CloseHour: cfg.Shop.CloseHour,
			StepMin:   cfg.Shop.SlotStep,
		})
	dashboard := services.NewDashboardService(store, revenue, zone)

	var sender services.SMSSender
	if cfg.Twilio.Enabled() {
		sender = services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	}
	reminders := services.NewReminderService(store, sender, zone, logger)

	var scheduler *cron.Cron
	if reminders.Enabled() {
		scheduler, err = reminders.StartScheduler(cfg.Twilio.ReminderSpec)
		if err != nil {
			return fmt.Errorf("start reminder scheduler: %w", err)
		}
		defer func() { <-scheduler.Stop().Done() }()
	} else {
		logger.Info("sms reminders disabled")
	}

	r := routes.SetupRouter(cfg, logger, routes.Controllers{
		Appointments: controllers.NewAppointmentController(appointments),
		Services:     controllers.NewServiceController(catalog),
		NailTechs:    controllers.NewNailTechController(techs),
		Reports:      controllers.NewReportController(revenue),
		Dashboard:    controllers.NewDashboardController(dashboard),
		Reminders:    controllers.NewReminderController(reminders),
		Auth:         controllers.NewAuthController(users, cfg.Auth.WebhookSecret),
		Health:       controllers.NewHealthController(store),
	})
	printRoutes(logger, r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCache prefers redis and falls back to an in-process cache when no
// address is configured.
func openCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("report cache: in-memory")
		return cache.NewMemory(), func() {}, nil
	}

	rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("report cache: redis", zap.String("addr", cfg.Redis.Addr))
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}, nil
}

func printRoutes(logger *zap.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
