package repository

import (
	"context"

	"bodega/internal/model"

	"gorm.io/gorm"
)

type HistorialPrecioRepository interface {
	ListByProducto(ctx context.Context, productoID uint) ([]model.HistorialPrecio, error)
}

type historialPrecioRepo struct{ db *gorm.DB }

func NewHistorialPrecioRepository(db *gorm.DB) HistorialPrecioRepository {
	return &historialPrecioRepo{db: db}
}

// ListByProducto returns the audit trail for one product, newest first.
// The table is append-only: rows are written by the storage trigger (or the
// seeder) and removed only by the product's ON DELETE CASCADE.
func (r *historialPrecioRepo) ListByProducto(ctx context.Context, productoID uint) ([]model.HistorialPrecio, error) {
	var rows []model.HistorialPrecio
	err := r.db.WithContext(ctx).
		Where("id_producto = ?", productoID).
		Order("fecha DESC, id_hist DESC").
		Find(&rows).Error
	return rows, err
}
