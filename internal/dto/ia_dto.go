package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ConsultaIARequest struct {
	Pregunta string `json:"pregunta" validate:"required,min=3,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsultaIAResponse struct {
	Respuesta string `json:"respuesta"`
}
