package handler

import (
	"net/http"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GuardarClienteRequest true "Datos del cliente"
// @Success      201  {object} dto.ClienteResponse
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.GuardarClienteRequest
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
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "ID del cliente"
// @Param        body body dto.GuardarClienteRequest true "Datos del cliente"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/clientes/{id} [put]
func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarClienteRequest
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
// @Summary      Eliminar cliente
// @Tags         clientes
// @Security     BearerAuth
// @Param        id path string true "ID del cliente"
// @Success      204
// @Failure      404 {object} apierror.Error
// @Router       /v1/clientes/{id} [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
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
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	clientes, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

// CrearInteraccion godoc
// @Summary      Registrar interacción con un cliente
// @Description  Una fecha de seguimiento deja la interacción pendiente; sin fecha queda completada.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearInteraccionRequest true "Detalle de la interacción"
// @Success      201  {object} dto.InteraccionResponse
// @Failure      404  {object} apierror.Error
// @Router       /v1/interacciones [post]
func (h *ClientesHandler) CrearInteraccion(c *gin.Context) {
	var req dto.CrearInteraccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInteraccion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarInteracciones godoc
// @Summary      Historial de interacciones de un cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del cliente"
// @Success      200 {array} dto.InteraccionResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/clientes/{id}/interacciones [get]
func (h *ClientesHandler) ListarInteracciones(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	interacciones, err := h.svc.ListarInteracciones(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interacciones)
}

// CompletarSeguimiento godoc
// @Summary      Completar seguimiento pendiente
// @Tags         clientes
// @Security     BearerAuth
// @Param        id path string true "ID de la interacción"
// @Success      204
// @Failure      409 {object} apierror.Error
// @Router       /v1/interacciones/{id}/completar [post]
func (h *ClientesHandler) CompletarSeguimiento(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CompletarSeguimiento(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
