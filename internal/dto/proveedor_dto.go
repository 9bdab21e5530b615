package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=120"`
	Contacto *string `json:"contacto"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProveedorOption carries only id + nombre: it exists to populate selection
// controls in the presentation layer.
type ProveedorOption struct {
	ID     uint   `json:"id_prov"`
	Nombre string `json:"nombre"`
}
