package repository

import (
	"context"
	"errors"

	"bodega/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioRow is one product projected with its supplier's name via LEFT
// JOIN. Proveedor is nil for orphaned products (supplier deleted or never set).
type InventarioRow struct {
	ID          uint    `gorm:"column:id_prod"`
	Nombre      string  `gorm:"column:nombre"`
	SKU         *string `gorm:"column:sku"`
	StockActual int     `gorm:"column:stock_actual"`
	StockMinimo int     `gorm:"column:stock_minimo"`
	Proveedor   *string `gorm:"column:proveedor"`
}

// ContextoIARow is the minimal projection handed to the language-model
// collaborator: name plus the two stock figures.
type ContextoIARow struct {
	Nombre      string `gorm:"column:nombre" json:"nombre"`
	StockActual int    `gorm:"column:stock_actual" json:"stock_actual"`
	StockMinimo int    `gorm:"column:stock_minimo" json:"stock_minimo"`
}

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	ListInventario(ctx context.Context) ([]InventarioRow, error)
	ListContextoIA(ctx context.Context) ([]ContextoIARow, error)

	// UpdateStock sets stock_actual only. It must never touch precio_compra:
	// the audit trigger watches that column and a stock adjustment is not a
	// price event.
	UpdateStock(ctx context.Context, id uint, stock int) error

	// UpdatePrecio sets precio_compra. The history row is appended by the
	// storage-level trigger, not here.
	UpdatePrecio(ctx context.Context, id uint, precio decimal.Decimal) error

	Delete(ctx context.Context, id uint) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSKUDuplicado
	}
	return err
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	return &p, err
}

func (r *productoRepo) ListInventario(ctx context.Context) ([]InventarioRow, error) {
	var rows []InventarioRow
	err := r.db.WithContext(ctx).
		Table("productos").
		Select("productos.id_prod, productos.nombre, productos.sku, productos.stock_actual, productos.stock_minimo, proveedores.nombre AS proveedor").
		Joins("LEFT JOIN proveedores ON proveedores.id_prov = productos.id_proveedor").
		Order("productos.id_prod ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *productoRepo) ListContextoIA(ctx context.Context) ([]ContextoIARow, error) {
	var rows []ContextoIARow
	err := r.db.WithContext(ctx).
		Model(&model.Producto{}).
		Select("nombre, stock_actual, stock_minimo").
		Order("id_prod ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *productoRepo) UpdateStock(ctx context.Context, id uint, stock int) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id_prod = ?", id).
		Update("stock_actual", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func (r *productoRepo) UpdatePrecio(ctx context.Context, id uint, precio decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id_prod = ?", id).
		Update("precio_compra", precio)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}
