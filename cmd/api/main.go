// @title                       Tiles API
// @version                     1.0
// @description                 Catálogo, inventario por ubicación, traslados y ventas de baldosas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/tiles-api/docs"
	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
	"github.com/jhoicas/tiles-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tiles-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tiles-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tiles-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/tiles-api/internal/interfaces/http"
	"github.com/jhoicas/tiles-api/pkg/config"
	"github.com/jhoicas/tiles-api/pkg/logger"
)

// repos agrupa los adaptadores de almacenamiento elegidos por STORE_DRIVER.
type repos struct {
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	products   repository.ProductRepository
	inventory  repository.InventoryRepository
	movements  repository.StockMovementRepository
	sales      repository.SaleRepository
	reports    repository.StockReportRepository
	txRunner   inventory.TxRunner
	close      func()
}

func openStore(ctx context.Context, cfg config.DBConfig) (*repos, error) {
	if cfg.Driver == config.StoreDriverMemory {
		store := memory.NewStore()
		return &repos{
			brands:     store.Brands(),
			categories: store.Categories(),
			locations:  store.Locations(),
			products:   store.Products(),
			inventory:  store.Inventory(),
			movements:  store.Movements(),
			sales:      store.Sales(),
			reports:    store.Reports(),
			txRunner:   store,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &repos{
		brands:     postgres.NewBrandRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		locations:  postgres.NewLocationRepository(pool),
		products:   postgres.NewProductRepository(pool),
		inventory:  postgres.NewInventoryRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		reports:    postgres.NewStockReportRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Bool("allow_negative", cfg.Inventory.AllowNegative).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	r, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer r.close()

	ledger := inventory.NewLedger(r.txRunner, r.locations, r.movements,
		inventory.LedgerConfig{AllowNegative: cfg.Inventory.AllowNegative},
		log.Component("ledger"))

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	audit := inventory.NewStockAudit(r.inventory, log.Component("stock_audit"))
	sched := scheduler.New(cfg.Inventory.AuditCron, audit, log.Component("scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tiles API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BrandUC:     usecase.NewBrandUseCase(r.brands),
		CategoryUC:  usecase.NewCategoryUseCase(r.categories),
		LocationUC:  usecase.NewLocationUseCase(r.locations),
		ProductUC:   usecase.NewProductUseCase(r.products, r.brands, r.categories),
		InventoryUC: usecase.NewInventoryUseCase(r.inventory, r.products, r.locations),
		SaleUC:      usecase.NewSaleUseCase(r.sales, r.products, r.locations, pdfGenerator),
		Ledger:      ledger,
		Report:      inventory.NewStockReport(r.reports, r.movements, cfg.Inventory.LowStock),
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
