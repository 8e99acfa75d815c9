package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// Columnas esperadas (la cabecera se ignora):
// marca;categoria;formato;codigo;nombre;precio;descripcion
const minColumns = 6

// Los IDs se derivan del nombre para que regenerar el script no duplique filas.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tiles-api/seed"))

type catalog struct {
	Brands     []entity.Brand
	Categories []entity.Category
	Products   []entity.Product
}

func seedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+strings.ToLower(key))).String()
}

// decodeInput devuelve el contenido en UTF-8. Excel exporta en Windows-1252; si el archivo ya es
// UTF-8 válido (con o sin BOM) se deja igual.
func decodeInput(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var fallback encoding.Encoding = charmap.Windows1252
	if utf8.Valid(raw) {
		fallback = encoding.Nop
	}
	return transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(fallback.NewDecoder())), nil
}

// parseCatalog lee el CSV (separador ';' como lo exporta Excel en es-CO) y arma el catálogo.
// Una categoría se identifica por nombre y formato. Códigos repetidos: gana la última fila.
func parseCatalog(r io.Reader) (*catalog, error) {
	in, err := decodeInput(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	brands := map[string]entity.Brand{}
	categories := map[string]entity.Category{}
	products := map[string]entity.Product{}

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 || len(rec) == 0 || strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("línea %d: %d columnas, se esperaban al menos %d", line, len(rec), minColumns)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		brandName, catName, size, code, name := rec[0], rec[1], strings.ToLower(rec[2]), rec[3], rec[4]
		if brandName == "" || catName == "" || code == "" || name == "" {
			return nil, fmt.Errorf("línea %d: marca, categoría, código y nombre son obligatorios", line)
		}
		if !entity.IsValidTileSize(size) {
			return nil, fmt.Errorf("línea %d: formato %q no soportado", line, rec[2])
		}
		price, err := parsePrice(rec[5])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, rec[5], err)
		}
		desc := ""
		if len(rec) > minColumns {
			desc = rec[6]
		}

		brand := entity.Brand{ID: seedID("brand", brandName), Name: brandName}
		brands[brand.ID] = brand
		cat := entity.Category{ID: seedID("category", catName+"|"+size), Name: catName, Size: size}
		categories[cat.ID] = cat
		products[code] = entity.Product{
			ID:          seedID("product", code),
			BrandID:     brand.ID,
			CategoryID:  cat.ID,
			Code:        code,
			Name:        name,
			Description: desc,
			Price:       price,
		}
	}

	out := &catalog{}
	for _, b := range brands {
		out.Brands = append(out.Brands, b)
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, c)
	}
	for _, p := range products {
		out.Products = append(out.Products, p)
	}
	sort.Slice(out.Brands, func(i, j int) bool { return out.Brands[i].Name < out.Brands[j].Name })
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		return a.Name < b.Name || (a.Name == b.Name && a.Size < b.Size)
	})
	sort.Slice(out.Products, func(i, j int) bool { return out.Products[i].Code < out.Products[j].Code })
	return out, nil
}

// parsePrice acepta "1.234,50" (es-CO) y "1234.50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negativo")
	}
	return d.Round(2), nil
}

func writeSQL(w io.Writer, cat *catalog, source string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Catálogo de baldosas generado desde %s\n\n", source)

	b.WriteString("-- 1. Marcas\n")
	for _, br := range cat.Brands {
		fmt.Fprintf(&b, "INSERT INTO brands (id, name) VALUES ('%s', '%s')\n", br.ID, escapeSQL(br.Name))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n")
	}

	b.WriteString("\n-- 2. Categorías\n")
	for _, c := range cat.Categories {
		fmt.Fprintf(&b, "INSERT INTO tile_categories (id, name, size) VALUES ('%s', '%s', '%s')\n",
			c.ID, escapeSQL(c.Name), c.Size)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n")
	}

	b.WriteString("\n-- 3. Productos (product_code único)\n")
	for _, p := range cat.Products {
		fmt.Fprintf(&b, "INSERT INTO products (id, brand_id, category_id, product_code, name, description, price)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s)\n",
			p.ID, p.BrandID, p.CategoryID, escapeSQL(p.Code), escapeSQL(p.Name), escapeSQL(p.Description), p.Price.StringFixed(2))
		b.WriteString("ON CONFLICT (product_code) DO UPDATE SET brand_id = EXCLUDED.brand_id, category_id = EXCLUDED.category_id,\n")
		b.WriteString("  name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
