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

type VehiculosHandler struct{ svc service.VehiculoService }

func NewVehiculosHandler(svc service.VehiculoService) *VehiculosHandler {
	return &VehiculosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear vehículo
// @Description  Alta de un vehículo en fábrica. VIN único; registra la primera entrada del historial.
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GuardarVehiculoRequest true "Datos del vehículo"
// @Success      201  {object} dto.VehiculoResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/vehiculos [post]
func (h *VehiculosHandler) Crear(c *gin.Context) {
	var req dto.GuardarVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Guardar vehículo
// @Description  Edición administrativa. Un cambio de estado debe avanzar el ciclo de vida; la llegada a concesionario genera la factura B2B.
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del vehículo"
// @Param        body body dto.GuardarVehiculoRequest true "Datos del vehículo"
// @Success      200  {object} dto.VehiculoResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/vehiculos/{id} [put]
func (h *VehiculosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar vehículo
// @Tags         vehiculos
// @Security     BearerAuth
// @Param        id path string true "UUID del vehículo"
// @Success      204
// @Failure      404 {object} apierror.Error
// @Router       /v1/vehiculos/{id} [delete]
func (h *VehiculosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Obtener godoc
// @Summary      Detalle de vehículo
// @Description  Retorna el vehículo con su historial de estados en orden cronológico.
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del vehículo"
// @Success      200 {object} dto.VehiculoResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/vehiculos/{id} [get]
func (h *VehiculosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	detalle, err := h.svc.Obtener(c.Request.Context(), id, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detalle)
}

// Asignar godoc
// @Summary      Asignar concesionario
// @Description  Asignación manual de un vehículo de fábrica a un concesionario. Solo una vez.
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del vehículo"
// @Param        body body dto.AsignarConcesionarioRequest true "Concesionario destino"
// @Success      200  {object} dto.OperacionResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/vehiculos/{id}/asignar [post]
func (h *VehiculosHandler) Asignar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarConcesionarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	concesionarioID, err := uuid.Parse(req.ConcesionarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, "concesionario_id invalido"))
		return
	}
	if err := h.svc.Asignar(c.Request.Context(), id, concesionarioID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionResponse{Success: true, Message: "Vehiculo asignado", ID: id.String()})
}

// ConfirmarPedido godoc
// @Summary      Confirmar pedido
// @Description  asignado → enTransito debitando el crédito disponible del concesionario por el precio del vehículo.
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del vehículo"
// @Success      200 {object} dto.OperacionResponse
// @Failure      409 {object} apierror.Error
// @Router       /v1/vehiculos/{id}/confirmar [post]
func (h *VehiculosHandler) ConfirmarPedido(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	scope := dealerScope(c)
	if scope == nil {
		respondError(c, apierror.New(apierror.PermissionDenied, "Solo un concesionario puede confirmar pedidos"))
		return
	}
	if err := h.svc.ConfirmarPedido(c.Request.Context(), id, *scope); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionResponse{Success: true, Message: "Pedido confirmado", ID: id.String()})
}

// Recibir godoc
// @Summary      Recibir vehículo
// @Description  enTransito → enConcesionario; genera la factura B2B pendiente y encola la generación del documento.
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del vehículo"
// @Success      200 {object} dto.OperacionResponse
// @Failure      409 {object} apierror.Error
// @Router       /v1/vehiculos/{id}/recibir [post]
func (h *VehiculosHandler) Recibir(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	scope := dealerScope(c)
	if scope == nil {
		respondError(c, apierror.New(apierror.PermissionDenied, "Solo un concesionario puede recibir vehiculos"))
		return
	}
	if err := h.svc.Recibir(c.Request.Context(), id, *scope); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionResponse{Success: true, Message: "Vehiculo recibido", ID: id.String()})
}

// Listar godoc
// @Summary      Listar vehículos
// @Description  Lista paginada. Los usuarios dealer solo ven los vehículos asignados a su concesionario.
// @Tags         vehiculos
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "enFabrica | asignado | enTransito | enConcesionario | vendido | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VehiculoListResponse
// @Router       /v1/vehiculos [get]
func (h *VehiculosHandler) Listar(c *gin.Context) {
	var filter dto.VehiculoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	resp, err := h.svc.Listar(c.Request.Context(), scope, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
