package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/application/inventory"
)

// ReportHandler tablero de inventario (protegido).
type ReportHandler struct {
	report *inventory.StockReport
}

// NewReportHandler construye el handler.
func NewReportHandler(report *inventory.StockReport) *ReportHandler {
	return &ReportHandler{report: report}
}

// LowStock godoc
// @Summary      Inventario bajo stock
// @Description  Registros con cantidad menor que el umbral (por defecto el configurado), menor cantidad primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        threshold    query  int     false  "Umbral (por defecto INVENTORY_LOW_STOCK_THRESHOLD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Success      200          {object}  dto.LowStockListResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	out, err := h.report.LowStock(c.UserContext(), c.Query("location_id"), int64(threshold), c.QueryInt("limit", dto.DefaultLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de inventario
// @Description  Total de unidades, totales por ubicación y por formato, bajo stock y últimos traslados.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.report.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
