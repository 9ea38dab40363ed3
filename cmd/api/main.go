package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/plannerhq/eventra-backend/api/routes"
	"github.com/plannerhq/eventra-backend/internal/auth"
	"github.com/plannerhq/eventra-backend/internal/budgets"
	"github.com/plannerhq/eventra-backend/internal/comments"
	"github.com/plannerhq/eventra-backend/internal/events"
	"github.com/plannerhq/eventra-backend/internal/inventory"
	"github.com/plannerhq/eventra-backend/internal/notifications"
	"github.com/plannerhq/eventra-backend/internal/quotations"
	"github.com/plannerhq/eventra-backend/internal/tasks"
	"github.com/plannerhq/eventra-backend/internal/users"
	"github.com/plannerhq/eventra-backend/pkg/auth/session"
	"github.com/plannerhq/eventra-backend/pkg/config"
	"github.com/plannerhq/eventra-backend/pkg/db"
	"github.com/plannerhq/eventra-backend/pkg/logger"
	"github.com/plannerhq/eventra-backend/pkg/metrics"
	"github.com/plannerhq/eventra-backend/pkg/migrate"
	"github.com/plannerhq/eventra-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{UserRepo: usersRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(events.ServiceParams{EventRepo: events.NewRepository(gormDB)})
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}

	taskService, err := tasks.NewService(tasks.ServiceParams{TaskRepo: tasks.NewRepository(gormDB)})
	if err != nil {
		logg.Error(context.Background(), "failed to create task service", err)
		os.Exit(1)
	}

	budgetService, err := budgets.NewService(budgets.ServiceParams{BudgetRepo: budgets.NewRepository(gormDB)})
	if err != nil {
		logg.Error(context.Background(), "failed to create budget service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notifications.ServiceParams{NotificationRepo: notifications.NewRepository(gormDB)})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	quotationService, err := quotations.NewService(quotations.ServiceParams{
		QuotationRepo: quotations.NewRepository(gormDB),
		Notifier:      notificationService,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation service", err)
		os.Exit(1)
	}

	commentService, err := comments.NewService(comments.ServiceParams{CommentRepo: comments.NewRepository(gormDB)})
	if err != nil {
		logg.Error(context.Background(), "failed to create comment service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		ItemRepo:     inventory.NewRepository(gormDB),
		Features:     cfg.FeatureFlags,
		Reservations: cfg.Reservations,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, routes.Services{
			Auth:          authService,
			Users:         userService,
			Events:        eventService,
			Tasks:         taskService,
			Budgets:       budgetService,
			Quotations:    quotationService,
			Comments:      commentService,
			Inventory:     inventoryService,
			Notifications: notificationService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
