package handler

import (
	"net/http"

	"bodega/internal/service"

	"github.com/gin-gonic/gin"
)

// HistorialPreciosHandler serves the immutable price audit trail per product.
type HistorialPreciosHandler struct {
	svc service.ProductoService
}

func NewHistorialPreciosHandler(svc service.ProductoService) *HistorialPreciosHandler {
	return &HistorialPreciosHandler{svc: svc}
}

// ListarPorProducto godoc
// @Summary      Historial de precios de un producto
// @Description  Retorna el historial inmutable de cambios de precio, ordenado por fecha descendente.
// @Tags         productos
// @Security     BearerAuth
// @Param        id path int true "ID del producto"
// @Success      200 {object} dto.HistorialPrecioListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/historial [get]
func (h *HistorialPreciosHandler) ListarPorProducto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), id)
	if err != nil {
		writeProductoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
