package entity

import "github.com/shopspring/decimal"

// Product representa una referencia de baldosa. Code es único.
// El stock no vive aquí: se lleva por ubicación en InventoryRecord.
type Product struct {
	ID          string
	BrandID     string
	CategoryID  string
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
}
