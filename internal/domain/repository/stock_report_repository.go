package repository

import "context"

// LowStockItem resultado crudo del repositorio para un registro bajo el umbral.
type LowStockItem struct {
	RecordID     string
	ProductID    string
	ProductCode  string
	ProductName  string
	LocationID   string
	LocationName string
	Quantity     int64
}

// StockTotal unidades agregadas por una clave (ubicación o formato de baldosa).
type StockTotal struct {
	Key      string
	Name     string
	Quantity int64
	Records  int
}

// StockReportRepository consultas de lectura para el tablero de inventario.
type StockReportRepository interface {
	// ListBelow devuelve los registros con cantidad < threshold, menor cantidad primero.
	// locationID vacío considera todas las ubicaciones.
	ListBelow(ctx context.Context, threshold int64, locationID string, limit int) ([]LowStockItem, error)
	// TotalsByLocation suma las cantidades por ubicación; las ubicaciones sin registros salen en 0.
	TotalsByLocation(ctx context.Context) ([]StockTotal, error)
	// TotalsBySize suma las cantidades por formato de baldosa (categoría del producto).
	TotalsBySize(ctx context.Context) ([]StockTotal, error)
}
