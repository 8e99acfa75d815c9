package dto

// LowStockResponse registro de inventario por debajo del umbral, con nombres para mostrar.
type LowStockResponse struct {
	RecordID     string `json:"record_id"`
	ProductID    string `json:"product_id"`
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
}

// LowStockListResponse salida de GET /api/inventory/low-stock.
type LowStockListResponse struct {
	Threshold int64              `json:"threshold"`
	Items     []LowStockResponse `json:"items"`
}

// StockTotalResponse unidades agregadas por ubicación o por formato.
type StockTotalResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Records  int    `json:"records"`
}

// StockSummaryResponse tablero de inventario: totales, bajo stock y últimos traslados.
type StockSummaryResponse struct {
	TotalStock      int64                `json:"total_stock"`
	Threshold       int64                `json:"low_stock_threshold"`
	ByLocation      []StockTotalResponse `json:"by_location"`
	BySize          []StockTotalResponse `json:"by_size"`
	LowStock        []LowStockResponse   `json:"low_stock"`
	RecentMovements []MovementResponse   `json:"recent_movements"`
}
