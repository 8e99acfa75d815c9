package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// SaleInvoiceLine línea de venta enriquecida con los datos del producto para imprimir.
type SaleInvoiceLine struct {
	entity.SaleItem
	ProductCode string
	ProductName string
}

// SalePDFGenerator puerto para la factura imprimible de una venta.
type SalePDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *entity.Sale, location *entity.Location, lines []SaleInvoiceLine) ([]byte, error)
}

// SaleUseCase registro de ventas. Las ventas no descuentan inventario; eso lo hacen los traslados.
type SaleUseCase struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	pdf          SalePDFGenerator
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	pdf SalePDFGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		repo:         repo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		pdf:          pdf,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create registra la venta con sus líneas. Total de línea = cantidad * precio unitario;
// total de la venta = suma de líneas. Sin precio unitario se toma el del producto.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	invoice := strings.TrimSpace(in.InvoiceNumber)
	customer := strings.TrimSpace(in.CustomerName)
	payment := strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	if invoice == "" || len(invoice) > 50 || customer == "" || len(in.Items) == 0 || !entity.IsValidPaymentMethod(payment) {
		return nil, domain.ErrInvalidInput
	}

	location, err := uc.locationRepo.GetByID(ctx, strings.TrimSpace(in.LocationID))
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrInvalidInput
	}

	sale := &entity.Sale{
		ID:              uuid.New().String(),
		InvoiceNumber:   invoice,
		LocationID:      location.ID,
		CustomerName:    customer,
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: in.CustomerAddress,
		SaleDate:        uc.now(),
		PaymentMethod:   payment,
		TotalAmount:     decimal.Zero,
	}
	if in.SaleDate != nil {
		sale.SaleDate = in.SaleDate.UTC().Truncate(time.Microsecond)
	}

	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, strings.TrimSpace(it.ProductID))
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrInvalidInput
		}
		unit := product.Price
		if it.UnitPrice != nil {
			unit = it.UnitPrice.Round(2)
		}
		if unit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		line := entity.SaleItem{
			ID:         uuid.New().String(),
			SaleID:     sale.ID,
			ProductID:  product.ID,
			Quantity:   it.Quantity,
			UnitPrice:  unit,
			TotalPrice: unit.Mul(decimal.NewFromInt(it.Quantity)),
		}
		sale.Items = append(sale.Items, line)
		sale.TotalAmount = sale.TotalAmount.Add(line.TotalPrice)
	}

	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

func (uc *SaleUseCase) get(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List lista ventas, opcionalmente de una ubicación.
func (uc *SaleUseCase) List(ctx context.Context, locationID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(locationID), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: pageOf(page, len(items))}, nil
}

// Delete anula (elimina) la venta y sus líneas.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// InvoicePDF genera la factura imprimible. Devuelve los bytes y el nombre de archivo.
func (uc *SaleUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	location, err := uc.locationRepo.GetByID(ctx, sale.LocationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ubicación: %w", err)
	}
	if location == nil {
		location = &entity.Location{ID: sale.LocationID, Name: sale.LocationID}
	}

	lines := make([]SaleInvoiceLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		line := SaleInvoiceLine{SaleItem: it, ProductName: "Producto " + it.ProductID}
		if p, pErr := uc.productRepo.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.ProductCode, line.ProductName = p.Code, p.Name
		}
		lines = append(lines, line)
	}

	pdf, err := uc.pdf.GenerateSalePDF(ctx, sale, location, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("factura_%s.pdf", sale.InvoiceNumber), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.SaleResponse{
		ID:              s.ID,
		InvoiceNumber:   s.InvoiceNumber,
		LocationID:      s.LocationID,
		CustomerName:    s.CustomerName,
		CustomerPhone:   s.CustomerPhone,
		CustomerAddress: s.CustomerAddress,
		SaleDate:        s.SaleDate,
		PaymentMethod:   s.PaymentMethod,
		TotalAmount:     s.TotalAmount,
		Items:           items,
	}
}
