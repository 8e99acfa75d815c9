// seed_catalog genera un script SQL para poblar marcas, categorías y productos
// a partir de la lista de precios del proveedor exportada desde Excel (CSV en Windows-1252).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, cat, filepath.Base(csvPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d marcas, %d categorías, %d productos\n",
		outPath, len(cat.Brands), len(cat.Categories), len(cat.Products))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
