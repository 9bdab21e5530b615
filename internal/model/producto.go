package model

import (
	"github.com/shopspring/decimal"
)

// Producto is a stocked item with a purchase price and a reorder threshold.
// SKU is optional but unique when set (Postgres allows multiple NULLs under
// a unique index). Price changes are audited by the log_precio_update
// trigger, not by application code.
type Producto struct {
	ID           uint            `gorm:"column:id_prod;primaryKey"`
	Nombre       string          `gorm:"not null"`
	SKU          *string         `gorm:"column:sku;uniqueIndex"`
	PrecioCompra decimal.Decimal `gorm:"column:precio_compra;type:decimal(12,2)"`
	StockActual  int             `gorm:"not null;default:0"`
	StockMinimo  int             `gorm:"not null;default:5"`
	ProveedorID  *uint           `gorm:"column:id_proveedor;index"`

	Proveedor *Proveedor        `gorm:"foreignKey:ProveedorID;references:ID;constraint:OnDelete:SET NULL"`
	Historial []HistorialPrecio `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "productos" }
