package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminHoldsEveryOperation(t *testing.T) {
	ops := []Operation{
		OpInventarioLeer,
		OpProveedoresListar,
		OpProductoCrear,
		OpProductoActualizarStock,
		OpProductoActualizarPrecio,
		OpProductoEliminar,
		OpHistorialLeer,
		OpConsultaIA,
	}
	for _, op := range ops {
		assert.True(t, RoleAdmin.Can(op), "ADMIN should hold %s", op)
	}
}

func TestUserHoldsInventoryReadOnly(t *testing.T) {
	assert.True(t, RoleUser.Can(OpInventarioLeer))

	denied := []Operation{
		OpProveedoresListar,
		OpProductoCrear,
		OpProductoActualizarStock,
		OpProductoActualizarPrecio,
		OpProductoEliminar,
		OpHistorialLeer,
		OpConsultaIA,
	}
	for _, op := range denied {
		assert.False(t, RoleUser.Can(op), "USER should not hold %s", op)
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	assert.False(t, Role("SUPERVISOR").Can(OpInventarioLeer))
	assert.False(t, Role("").Can(OpConsultaIA))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
