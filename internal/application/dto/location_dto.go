package dto

// LocationRequest entrada para crear o reemplazar una ubicación.
type LocationRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Type          string `json:"location_type" validate:"required,oneof=GODOWN SHOP"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" validate:"max=15"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"location_type"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
