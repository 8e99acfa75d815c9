package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// MovementHandler expone el libro de inventario: traslados y reversiones (protegido).
type MovementHandler struct {
	ledger *inventory.Ledger
	log    zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *inventory.Ledger, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{ledger: ledger, log: log}
}

// Create godoc
// @Summary      Registrar traslado
// @Description  Descuenta la cantidad del origen y la suma al destino (lo crea si no existe).
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.ledger.ApplyMovement(c.UserContext(), inventory.ApplyMovementInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	h.log.Debug().Str("user_id", GetUserID(c)).Str("movement_id", m.ID).Msg("traslado registrado")
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(m))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.ledger.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponse(m))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
	}
	list, err := h.ledger.ListMovements(c.UserContext(), filter, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	})
}

// Delete godoc
// @Summary      Revertir movimiento
// @Description  Devuelve la cantidad al origen, la descuenta del destino y elimina el movimiento.
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	m, err := h.ledger.ReverseMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("movement_id", m.ID).Msg("traslado revertido")
	return c.JSON(toMovementResponse(m))
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		MovementDate:   m.MovementDate,
		Notes:          m.Notes,
	}
}
