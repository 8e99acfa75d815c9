package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentCash   = "CASH"
	PaymentCard   = "CARD"
	PaymentUPI    = "UPI"
	PaymentCheque = "CHEQUE"
)

// Sale venta registrada en una ubicación (cabecera de factura).
type Sale struct {
	ID              string
	InvoiceNumber   string
	LocationID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	SaleDate        time.Time
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	Items           []SaleItem
}

// SaleItem línea de venta. TotalPrice = Quantity * UnitPrice.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// IsValidPaymentMethod indica si m es un medio de pago aceptado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentCheque:
		return true
	}
	return false
}
