package entity

// Tipos de ubicación. Informativo: el libro no restringe traslados por tipo.
const (
	LocationTypeGodown = "GODOWN" // bodega
	LocationTypeShop   = "SHOP"   // tienda
)

// Location representa una bodega o tienda donde se guarda inventario.
type Location struct {
	ID            string
	Name          string
	Type          string
	Address       string
	ContactNumber string
}

// IsValidLocationType indica si t es GODOWN o SHOP.
func IsValidLocationType(t string) bool {
	return t == LocationTypeGodown || t == LocationTypeShop
}
