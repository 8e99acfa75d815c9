package dto

import "github.com/shopspring/decimal"

// BrandRequest entrada para crear o reemplazar una marca.
type BrandRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BrandListResponse lista paginada de marcas.
type BrandListResponse struct {
	Items []BrandResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CategoryRequest entrada para crear o reemplazar una categoría de baldosa.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Size        string `json:"size" validate:"required,oneof=1200x600 600x600"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        string `json:"size"`
	Description string `json:"description"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ProductRequest entrada para crear o reemplazar un producto.
type ProductRequest struct {
	BrandID     string          `json:"brand_id" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Code        string          `json:"product_code" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	BrandID     string          `json:"brand_id"`
	CategoryID  string          `json:"category_id"`
	Code        string          `json:"product_code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
