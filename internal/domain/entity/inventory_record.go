package entity

import "time"

// InventoryRecord cantidad disponible de un producto en una ubicación.
// Única por (ProductID, LocationID); solo la modifican los movimientos de stock.
type InventoryRecord struct {
	ID          string
	ProductID   string
	LocationID  string
	Quantity    int64
	LastUpdated time.Time
}
