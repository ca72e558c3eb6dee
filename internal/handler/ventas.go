package handler

import (
	"net/http"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/middleware"
	"github.com/fermanzolido/autitos/internal/model"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar venta
// @Description  Venta minorista atómica: cliente (existente o inline), registro de venta y paso del vehículo a vendido en una sola transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	resp, err := h.svc.Registrar(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar ventas
// @Description  Lista paginada. Los usuarios dealer solo ven sus propias ventas.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Página (default 1)"
// @Param        limit query int false "Registros por página (default 50)"
// @Success      200   {array} dto.VentaResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	ventas, total, err := h.svc.Listar(c.Request.Context(), scope, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ventas, "total": total, "page": filter.Page, "limit": filter.Limit})
}
