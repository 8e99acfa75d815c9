package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BrandUC     *usecase.BrandUseCase
	CategoryUC  *usecase.CategoryUseCase
	LocationUC  *usecase.LocationUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	SaleUC      *usecase.SaleUseCase
	Ledger      *inventory.Ledger
	Report      *inventory.StockReport
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API. Todo bajo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)

	brands := api.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Post("/", brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", brandHandler.Delete)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock inicial: solo admin crea o elimina registros.
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", adminOnly, inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	reportHandler := NewReportHandler(deps.Report)
	inv.Get("/low-stock", reportHandler.LowStock)
	inv.Get("/summary", reportHandler.Summary)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Delete("/:id", adminOnly, inventoryHandler.Delete)

	movements := api.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.Log)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Delete("/:id", adminOnly, movementHandler.Delete)

	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/pdf", saleHandler.PDF)
	sales.Delete("/:id", adminOnly, saleHandler.Delete)
}
