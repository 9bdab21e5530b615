package model

// Proveedor is a source entity from which products are procured.
// Deleting a supplier never deletes its products — the FK on productos
// nullifies id_proveedor instead (declared on Producto).
type Proveedor struct {
	ID       uint   `gorm:"column:id_prov;primaryKey"`
	Nombre   string `gorm:"not null"`
	Contacto *string
	Email    *string
	Telefono *string

	Productos []Producto `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
