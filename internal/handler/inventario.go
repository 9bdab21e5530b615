package handler

import (
	"net/http"

	"bodega/internal/apierror"
	"bodega/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Listar godoc
// @Summary Inventario completo con proveedor
// @Description Todos los productos con el nombre de su proveedor (LEFT JOIN) y el indicador de stock bajo.
// @Tags inventario
// @Security BearerAuth
// @Success 200 {object} dto.InventarioListResponse
// @Router /v1/inventario [get]
func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar inventario"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
