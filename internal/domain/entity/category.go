package entity

// Formatos de baldosa soportados.
const (
	TileSize1200x600 = "1200x600"
	TileSize600x600  = "600x600"
)

// Category representa una categoría de baldosas con su formato.
type Category struct {
	ID          string
	Name        string
	Size        string // 1200x600, 600x600
	Description string
}

// IsValidTileSize indica si size es un formato conocido.
func IsValidTileSize(size string) bool {
	return size == TileSize1200x600 || size == TileSize600x600
}
