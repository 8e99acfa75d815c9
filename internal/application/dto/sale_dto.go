package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales. Los totales los calcula el servidor.
type CreateSaleRequest struct {
	InvoiceNumber   string                  `json:"invoice_number" validate:"required,max=50"`
	LocationID      string                  `json:"location_id" validate:"required"`
	CustomerName    string                  `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string                  `json:"customer_phone" validate:"max=15"`
	CustomerAddress string                  `json:"customer_address"`
	PaymentMethod   string                  `json:"payment_method" validate:"required,oneof=CASH CARD UPI CHEQUE"`
	SaleDate        *time.Time              `json:"sale_date,omitempty"`
	Items           []CreateSaleItemRequest `json:"items" validate:"required,min=1"`
}

// CreateSaleItemRequest línea de venta. Sin UnitPrice se usa el precio del producto.
type CreateSaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleItemResponse salida de una línea de venta.
type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID              string             `json:"id"`
	InvoiceNumber   string             `json:"invoice_number"`
	LocationID      string             `json:"location_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	SaleDate        time.Time          `json:"sale_date"`
	PaymentMethod   string             `json:"payment_method"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Items           []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
