package handler

import (
	"errors"
	"net/http"

	"bodega/internal/apierror"
	"bodega/internal/dto"
	"bodega/internal/repository"
	"bodega/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrSKUDuplicado) {
			c.JSON(http.StatusConflict, apierror.New("SKU duplicado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) ActualizarStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarStock(c.Request.Context(), id, req)
	if err != nil {
		writeProductoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ActualizarPrecio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecio(c.Request.Context(), id, req)
	if err != nil {
		writeProductoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeProductoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeProductoError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNoEncontrado) {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
