package entity

import "time"

// StockMovement traslado inmutable de Quantity unidades de un producto entre dos ubicaciones.
// Eliminarlo revierte su efecto sobre el inventario.
type StockMovement struct {
	ID             string
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64 // siempre > 0
	MovementDate   time.Time
	Notes          string
}
