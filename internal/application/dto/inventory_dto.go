package dto

import "time"

// CreateInventoryRequest body para POST /api/inventory (stock inicial de un producto en una ubicación).
type CreateInventoryRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"min=0"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	LocationID  string    `json:"location_id"`
	Quantity    int64     `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}

// InventoryListResponse lista paginada de registros de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateMovementRequest body para POST /api/stock-movements.
type CreateMovementRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	FromLocationID string `json:"from_location_id" validate:"required"`
	ToLocationID   string `json:"to_location_id" validate:"required"`
	Quantity       int64  `json:"quantity" validate:"min=1"`
	Notes          string `json:"notes"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	FromLocationID string    `json:"from_location_id"`
	ToLocationID   string    `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	MovementDate   time.Time `json:"movement_date"`
	Notes          string    `json:"notes"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
