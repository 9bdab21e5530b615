package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistorialPrecio is an immutable audit entry of a past purchase price.
// Rows are inserted by the storage-level trigger (or by the seeder with an
// explicit fecha) and removed only by the ON DELETE CASCADE of its product.
type HistorialPrecio struct {
	ID               uint            `gorm:"column:id_hist;primaryKey"`
	ProductoID       uint            `gorm:"column:id_producto;not null;index"`
	PrecioRegistrado decimal.Decimal `gorm:"column:precio_registrado;type:decimal(12,2)"`
	Fecha            time.Time       `gorm:"column:fecha;not null;default:now()"`
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
