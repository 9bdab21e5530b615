package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	SKU          string          `json:"sku"           validate:"required,min=2,max=40"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required,min=0"`
	StockActual  int             `json:"stock_actual"  validate:"min=0"`
	StockMinimo  *int            `json:"stock_minimo"  validate:"omitempty,min=0"`
	ProveedorID  *uint           `json:"id_proveedor"`
}

type ActualizarStockRequest struct {
	StockActual int `json:"stock_actual" validate:"min=0"`
}

type ActualizarPrecioRequest struct {
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           uint            `json:"id_prod"`
	Nombre       string          `json:"nombre"`
	SKU          *string         `json:"sku"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	ProveedorID  *uint           `json:"id_proveedor"`
}

type HistorialPrecioItem struct {
	ID               uint            `json:"id_hist"`
	ProductoID       uint            `json:"id_producto"`
	PrecioRegistrado decimal.Decimal `json:"precio_registrado"`
	Fecha            string          `json:"fecha"`
}

type HistorialPrecioListResponse struct {
	Data  []HistorialPrecioItem `json:"data"`
	Total int                   `json:"total"`
}
