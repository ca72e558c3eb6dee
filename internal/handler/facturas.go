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

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// MarcarPagada godoc
// @Summary      Marcar factura como pagada
// @Description  pendiente → pagada exactamente una vez; restaura el crédito disponible del concesionario por el importe.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200 {object} dto.OperacionResponse
// @Failure      409 {object} apierror.Error
// @Router       /v1/facturas/{id}/pagar [post]
func (h *FacturasHandler) MarcarPagada(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarcarPagada(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionResponse{Success: true, Message: "Factura pagada", ID: id.String()})
}

// Listar godoc
// @Summary      Listar facturas
// @Description  Los usuarios dealer solo ven las facturas de su concesionario.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendiente | pagada | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {array} dto.FacturaResponse
// @Router       /v1/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	facturas, total, err := h.svc.Listar(c.Request.Context(), scope, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": facturas, "total": total, "page": filter.Page, "limit": filter.Limit})
}

// DescargarPDF godoc
// @Summary      Descargar documento de factura
// @Description  Sirve el PDF generado por el worker. 404 mientras el documento no exista.
// @Tags         facturas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200
// @Failure      404 {object} apierror.Error
// @Router       /v1/facturas/{id}/pdf [get]
func (h *FacturasHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	path, err := h.svc.ObtenerPDFPath(c.Request.Context(), id, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "factura_"+id.String()+".pdf")
}
