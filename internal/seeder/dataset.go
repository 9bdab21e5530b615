package seeder

import (
	"time"

	"bodega/internal/model"

	"github.com/shopspring/decimal"
)

func str(s string) *string { return &s }
func uid(v uint) *uint     { return &v }

// DemoDataset is the demo/test batch loaded by cmd/seed. Product ids are
// explicit so the id_proveedor mapping is exact regardless of insert order.
func DemoDataset() Dataset {
	fecha := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02 15:04:05", s)
		return t
	}
	return Dataset{
		Proveedores: []model.Proveedor{
			{Nombre: "TecnoChile", Contacto: str("Carlos Ruiz"), Email: str("ventas@tecnochile.cl"), Telefono: str("+56912345678")},
			{Nombre: "Importadora Omega", Contacto: str("Lucía Sanz"), Email: str("lsanz@omega.com"), Telefono: str("+56987654321")},
		},
		Productos: []model.Producto{
			{ID: 1, Nombre: "Monitor 24' LED", SKU: str("MON24-001"), PrecioCompra: decimal.NewFromInt(120000), StockActual: 3, StockMinimo: 5, ProveedorID: uid(1)},
			{ID: 2, Nombre: "Teclado Mecánico RGB", SKU: str("KB-RGB-02"), PrecioCompra: decimal.NewFromInt(45000), StockActual: 15, StockMinimo: 10, ProveedorID: uid(1)},
			{ID: 3, Nombre: "Mouse Gamer G502", SKU: str("MS-G502"), PrecioCompra: decimal.NewFromInt(35000), StockActual: 2, StockMinimo: 8, ProveedorID: uid(1)},
			{ID: 4, Nombre: "Cable HDMI 4K 3m", SKU: str("HDMI-4K3"), PrecioCompra: decimal.NewFromInt(8500), StockActual: 50, StockMinimo: 20, ProveedorID: uid(2)},
			{ID: 5, Nombre: "Hub USB-C 7 en 1", SKU: str("HUB-71"), PrecioCompra: decimal.NewFromInt(28000), StockActual: 4, StockMinimo: 10, ProveedorID: uid(2)},
			{ID: 6, Nombre: "Cargador Notebook Uni", SKU: str("CH-UNI-90"), PrecioCompra: decimal.NewFromInt(15000), StockActual: 12, StockMinimo: 5, ProveedorID: uid(2)},
		},
		Historial: []model.HistorialPrecio{
			{ProductoID: 1, PrecioRegistrado: decimal.NewFromInt(115000), Fecha: fecha("2026-01-15 10:00:00")},
			{ProductoID: 1, PrecioRegistrado: decimal.NewFromInt(118000), Fecha: fecha("2026-02-01 14:30:00")},
			{ProductoID: 3, PrecioRegistrado: decimal.NewFromInt(38000), Fecha: fecha("2026-01-10 09:00:00")},
		},
	}
}
