// Package pdf genera la factura imprimible de una venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Ubicación (tienda/bodega) │ N° Factura + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Tel / Dirección + Medio de pago           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Descripción | P.Unit | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

var _ usecase.SalePDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa usecase.SalePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	// Shop es el nombre comercial que encabeza la factura.
	Shop string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(shop string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{Shop: shop}
}

// GenerateSalePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalePDF(
	_ context.Context,
	sale *entity.Sale,
	location *entity.Location,
	lines []usecase.SaleInvoiceLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+sale.InvoiceNumber, true).
		WithAuthor(g.Shop, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.Shop, sale, location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale.TotalAmount))
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Goods once sold will not be taken back. Breakage in transit is the buyer's responsibility.",
			props.Text{Size: 7, Color: colorGray, Align: align.Center}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(shop string, sale *entity.Sale, location *entity.Location) core.Row {
	place := location.Name
	if location.Address != "" {
		place += " · " + location.Address
	}
	if location.ContactNumber != "" {
		place += " · Tel " + location.ContactNumber
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(shop, location.Name), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(place, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+sale.SaleDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(sale.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   %s",
				nonEmpty(sale.CustomerPhone, "-"),
				nonEmpty(strings.ReplaceAll(sale.CustomerAddress, "\n", ", "), "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Payment: "+sale.PaymentMethod, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Code", 2, align.Left),
		h("Description", 5, align.Left),
		h("Unit price", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func tableRows(lines []usecase.SaleInvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con dos decimales y separador de miles: 1234567.5 -> "1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
