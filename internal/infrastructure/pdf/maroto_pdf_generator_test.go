package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"52.5":       "52.50",
		"1234":       "1,234.00",
		"1234567.89": "1,234,567.89",
		"-9876.5":    "-9,876.50",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateSalePDF(t *testing.T) {
	sale := &entity.Sale{
		ID: "s1", InvoiceNumber: "INV-0001", LocationID: "shop",
		CustomerName: "Ravi Kumar", CustomerPhone: "9876543210", CustomerAddress: "MG Road\nBengaluru",
		SaleDate: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), PaymentMethod: entity.PaymentCash,
		TotalAmount: decimal.RequireFromString("157.50"),
	}
	lines := []usecase.SaleInvoiceLine{{
		SaleItem: entity.SaleItem{
			ID: "i1", ProductID: "p1", Quantity: 3,
			UnitPrice: decimal.RequireFromString("52.50"), TotalPrice: decimal.RequireFromString("157.50"),
		},
		ProductCode: "KJ-01", ProductName: "Statuario 1200x600",
	}}

	out, err := NewMarotoPDFGenerator("Tiles & Co").GenerateSalePDF(context.Background(), sale,
		&entity.Location{ID: "shop", Name: "Main shop"}, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
