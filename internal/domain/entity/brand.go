package entity

// Brand representa una marca (fabricante) de baldosas.
type Brand struct {
	ID          string
	Name        string
	Description string
}
