package repository

import "errors"

// Sentinel errors shared by all repositories. Services and handlers match on
// these with errors.Is — driver-specific errors never escape this package.
var (
	// ErrNoEncontrado maps gorm.ErrRecordNotFound and zero-row updates.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrSKUDuplicado maps a unique-key violation on productos.sku. It is a
	// distinct outcome so callers can report "duplicate sku" instead of a
	// generic failure.
	ErrSKUDuplicado = errors.New("sku duplicado")
)
