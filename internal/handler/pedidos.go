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

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear pedido a fábrica
// @Description  Un concesionario solicita una marca/modelo. El pedido queda pendiente hasta su emparejamiento.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Marca y modelo solicitados"
// @Success      201  {object} dto.PedidoResponse
// @Router       /v1/pedidos-fabrica [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	scope := dealerScope(c)
	if scope == nil {
		respondError(c, apierror.New(apierror.PermissionDenied, "Solo un concesionario puede crear pedidos"))
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), *scope, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Emparejar godoc
// @Summary      Emparejar pedido
// @Description  Empareja un pedido pendiente con un vehículo en fábrica sin asignar. Exactamente una vez; el vehículo pasa a asignado.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.EmparejarPedidoRequest true "Vehículo a emparejar"
// @Success      200  {object} dto.OperacionResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/pedidos-fabrica/{id}/emparejar [post]
func (h *PedidosHandler) Emparejar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EmparejarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vehiculoID, err := uuid.Parse(req.VehiculoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, "vehiculo_id invalido"))
		return
	}
	if err := h.svc.Emparejar(c.Request.Context(), id, vehiculoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionResponse{Success: true, Message: "Pedido emparejado", ID: id.String()})
}

// Listar godoc
// @Summary      Listar pedidos
// @Description  Los usuarios dealer solo ven sus propios pedidos.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PedidoResponse
// @Router       /v1/pedidos-fabrica [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var scope *uuid.UUID
	if claims != nil && claims.Rol == model.RolDealer {
		scope = dealerScope(c)
	}
	resp, err := h.svc.Listar(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
