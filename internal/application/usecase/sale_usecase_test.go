package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

type saleDeps struct {
	sales     *saleRepoMock
	products  *productRepoMock
	locations *locationRepoMock
	pdf       *pdfMock
}

func newSaleUC() (*usecase.SaleUseCase, saleDeps) {
	d := saleDeps{new(saleRepoMock), new(productRepoMock), new(locationRepoMock), new(pdfMock)}
	return usecase.NewSaleUseCase(d.sales, d.products, d.locations, d.pdf), d
}

func saleRequest() dto.CreateSaleRequest {
	override := decimal.RequireFromString("40")
	return dto.CreateSaleRequest{
		InvoiceNumber: "INV-0001",
		LocationID:    "shop",
		CustomerName:  "Ravi Kumar",
		PaymentMethod: "upi",
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2, UnitPrice: &override},
		},
	}
}

func TestSaleUseCase_CreateCalculaTotales(t *testing.T) {
	uc, d := newSaleUC()
	ctx := context.Background()
	d.locations.On("GetByID", ctx, "shop").Return(&entity.Location{ID: "shop", Name: "Shop"}, nil)
	d.products.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Price: decimal.RequireFromString("52.50")}, nil)
	d.products.On("GetByID", ctx, "p2").Return(&entity.Product{ID: "p2", Price: decimal.RequireFromString("99.00")}, nil)
	d.sales.On("Create", ctx, mock.AnythingOfType("*entity.Sale")).Return(nil)

	out, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentUPI, out.PaymentMethod)
	require.Len(t, out.Items, 2)
	assert.True(t, decimal.RequireFromString("157.50").Equal(out.Items[0].TotalPrice))
	assert.True(t, decimal.RequireFromString("80").Equal(out.Items[1].TotalPrice))
	assert.True(t, decimal.RequireFromString("237.50").Equal(out.TotalAmount))
	assert.False(t, out.SaleDate.IsZero())
	d.sales.AssertExpectations(t)
}

func TestSaleUseCase_CreateMedioDePagoInvalido(t *testing.T) {
	uc, d := newSaleUC()
	in := saleRequest()
	in.PaymentMethod = "BITCOIN"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	d.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaleUseCase_CreateProductoInexistente(t *testing.T) {
	uc, d := newSaleUC()
	ctx := context.Background()
	d.locations.On("GetByID", ctx, "shop").Return(&entity.Location{ID: "shop"}, nil)
	d.products.On("GetByID", ctx, "p1").Return(nil, nil)

	_, err := uc.Create(ctx, saleRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	d.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaleUseCase_CreateSinLineas(t *testing.T) {
	uc, _ := newSaleUC()
	in := saleRequest()
	in.Items = nil
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_InvoicePDF(t *testing.T) {
	uc, d := newSaleUC()
	ctx := context.Background()
	sale := &entity.Sale{
		ID: "s1", InvoiceNumber: "INV-7", LocationID: "shop",
		Items: []entity.SaleItem{{ID: "i1", ProductID: "p1", Quantity: 1}},
	}
	loc := &entity.Location{ID: "shop", Name: "Shop"}
	d.sales.On("GetByID", ctx, "s1").Return(sale, nil)
	d.locations.On("GetByID", ctx, "shop").Return(loc, nil)
	d.products.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Code: "KJ-01", Name: "Statuario"}, nil)
	d.pdf.On("GenerateSalePDF", ctx, sale, loc, mock.MatchedBy(func(lines []usecase.SaleInvoiceLine) bool {
		return len(lines) == 1 && lines[0].ProductName == "Statuario" && lines[0].ProductCode == "KJ-01"
	})).Return([]byte("%PDF-1.3"), nil)

	b, name, err := uc.InvoicePDF(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-7.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), b)
}

func TestSaleUseCase_InvoicePDFVentaInexistente(t *testing.T) {
	uc, d := newSaleUC()
	ctx := context.Background()
	d.sales.On("GetByID", ctx, "nope").Return(nil, nil)

	_, _, err := uc.InvoicePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.pdf.AssertNotCalled(t, "GenerateSalePDF", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
