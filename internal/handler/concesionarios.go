package handler

import (
	"net/http"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/service"

	"github.com/gin-gonic/gin"
)

type ConcesionariosHandler struct{ svc service.ConcesionarioService }

func NewConcesionariosHandler(svc service.ConcesionarioService) *ConcesionariosHandler {
	return &ConcesionariosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear concesionario
// @Description  Alta de concesionario. El crédito disponible arranca igual a la línea de crédito.
// @Tags         concesionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GuardarConcesionarioRequest true "Datos del concesionario"
// @Success      201  {object} dto.ConcesionarioResponse
// @Router       /v1/concesionarios [post]
func (h *ConcesionariosHandler) Crear(c *gin.Context) {
	var req dto.GuardarConcesionarioRequest
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
// @Summary      Guardar concesionario
// @Description  Un cambio de línea de crédito aplica el delta sobre el disponible; una reducción que lo dejaría negativo se rechaza.
// @Tags         concesionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del concesionario"
// @Param        body body dto.GuardarConcesionarioRequest true "Datos del concesionario"
// @Success      200  {object} dto.ConcesionarioResponse
// @Failure      409  {object} apierror.Error
// @Router       /v1/concesionarios/{id} [put]
func (h *ConcesionariosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarConcesionarioRequest
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
// @Summary      Eliminar concesionario
// @Tags         concesionarios
// @Security     BearerAuth
// @Param        id path string true "UUID del concesionario"
// @Success      204
// @Failure      404 {object} apierror.Error
// @Router       /v1/concesionarios/{id} [delete]
func (h *ConcesionariosHandler) Eliminar(c *gin.Context) {
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
// @Summary      Detalle de concesionario
// @Tags         concesionarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del concesionario"
// @Success      200 {object} dto.ConcesionarioResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/concesionarios/{id} [get]
func (h *ConcesionariosHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar concesionarios
// @Tags         concesionarios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ConcesionarioResponse
// @Router       /v1/concesionarios [get]
func (h *ConcesionariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
