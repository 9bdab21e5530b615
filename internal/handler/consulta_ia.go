package handler

import (
	"errors"
	"net/http"

	"bodega/internal/apierror"
	"bodega/internal/dto"
	"bodega/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaIAHandler forwards free-text questions, together with the inventory
// projection, to the language-model collaborator.
type ConsultaIAHandler struct{ svc service.IAService }

func NewConsultaIAHandler(svc service.IAService) *ConsultaIAHandler {
	return &ConsultaIAHandler{svc: svc}
}

// Consultar godoc
// @Summary Consulta al analista IA
// @Tags ia
// @Security BearerAuth
// @Param body body dto.ConsultaIARequest true "Pregunta"
// @Success 200 {object} dto.ConsultaIAResponse
// @Failure 502 {object} apierror.APIError
// @Router /v1/ia/consulta [post]
func (h *ConsultaIAHandler) Consultar(c *gin.Context) {
	var req dto.ConsultaIARequest
	if !bindAndValidate(c, &req) {
		return
	}
	respuesta, err := h.svc.Consultar(c.Request.Context(), req.Pregunta)
	if err != nil {
		if errors.Is(err, service.ErrColaboradorNoDisponible) {
			c.JSON(http.StatusBadGateway, apierror.New("Error de conexion: verifique que el servicio de IA este corriendo"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al construir el contexto de inventario"))
		return
	}
	c.JSON(http.StatusOK, dto.ConsultaIAResponse{Respuesta: respuesta})
}
