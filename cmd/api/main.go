package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fashion-oms/oms-service/internal/api/http"
	"github.com/fashion-oms/oms-service/internal/api/http/handlers"
	"github.com/fashion-oms/oms-service/internal/auth"
	"github.com/fashion-oms/oms-service/internal/cache"
	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/email"
	"github.com/fashion-oms/oms-service/internal/events"
	"github.com/fashion-oms/oms-service/internal/observability"
	"github.com/fashion-oms/oms-service/internal/persistence"
	"github.com/fashion-oms/oms-service/internal/repository"
	"github.com/fashion-oms/oms-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	staffCache := cache.NewStaffListCache(redis.Client, logger)
	dispatcher := events.NewInMemoryDispatcher()
	sender := email.NewClient(email.Config{
		APIKey:  cfg.Email.APIKey,
		BaseURL: cfg.Email.APIBaseURL,
		From:    cfg.Email.From,
	})

	authService := service.NewAuthService(*cfg, employeeRepo)
	staffService := service.NewStaffService(employeeRepo, staffCache, dispatcher, logger)
	upgradeService := service.NewRoleUpgradeService(*cfg, service.RoleUpgradeDependencies{
		EmployeeRepo: employeeRepo,
		Sender:       sender,
		StaffCache:   staffCache,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	catalogService := service.NewCatalogService(productRepo, customerRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo, dispatcher, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Email)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService, upgradeService),
		Verify:         handlers.NewVerifyHandler(upgradeService),
		Products:       handlers.NewProductsHandler(catalogService),
		Customers:      handlers.NewCustomersHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Dashboard:      handlers.NewDashboardHandler(orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
