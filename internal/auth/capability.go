// Package auth defines the role and capability model.
// Operations form a closed enumeration and the per-role capability sets are
// fixed at compile time, so a typo can never silently grant access.
package auth

// Role is the access level carried by an authenticated session.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether the string maps to a known role.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// Operation is a named capability a role may be granted.
type Operation int

const (
	OpInventarioLeer Operation = iota
	OpProveedoresListar
	OpProductoCrear
	OpProductoActualizarStock
	OpProductoActualizarPrecio
	OpProductoEliminar
	OpHistorialLeer
	OpConsultaIA
)

// String returns the operation name used in logs and denial messages.
func (op Operation) String() string {
	switch op {
	case OpInventarioLeer:
		return "inventario:leer"
	case OpProveedoresListar:
		return "proveedores:listar"
	case OpProductoCrear:
		return "producto:crear"
	case OpProductoActualizarStock:
		return "producto:actualizar_stock"
	case OpProductoActualizarPrecio:
		return "producto:actualizar_precio"
	case OpProductoEliminar:
		return "producto:eliminar"
	case OpHistorialLeer:
		return "historial:leer"
	case OpConsultaIA:
		return "ia:consulta"
	default:
		return "desconocida"
	}
}

// capabilities is the static table: ADMIN holds every operation, USER holds
// inventory read only.
var capabilities = map[Role]map[Operation]bool{
	RoleAdmin: {
		OpInventarioLeer:           true,
		OpProveedoresListar:        true,
		OpProductoCrear:            true,
		OpProductoActualizarStock:  true,
		OpProductoActualizarPrecio: true,
		OpProductoEliminar:         true,
		OpHistorialLeer:            true,
		OpConsultaIA:               true,
	},
	RoleUser: {
		OpInventarioLeer: true,
	},
}

// Can reports whether the role may invoke the operation.
func (r Role) Can(op Operation) bool {
	return capabilities[r][op]
}
