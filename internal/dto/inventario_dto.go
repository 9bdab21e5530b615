package dto

// InventarioItem is one row of the inventory view: product joined with its
// supplier's name. Proveedor is null for orphaned products. StockBajo is the
// presentation-only low-stock flag (stock_actual <= stock_minimo).
type InventarioItem struct {
	ID          uint    `json:"id_prod"`
	Nombre      string  `json:"nombre"`
	SKU         *string `json:"sku"`
	StockActual int     `json:"stock_actual"`
	StockMinimo int     `json:"stock_minimo"`
	Proveedor   *string `json:"proveedor"`
	StockBajo   bool    `json:"stock_bajo"`
}

type InventarioListResponse struct {
	Data  []InventarioItem `json:"data"`
	Total int              `json:"total"`
}
