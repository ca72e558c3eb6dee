package handler

import (
	"net/http"

	"reflect"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.InvalidArgument, "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates a service error into its HTTP status and envelope.
func respondError(c *gin.Context, err error) {
	ae := apierror.From(err)
	c.JSON(apierror.Status(ae.Code), ae)
}

// parseIDParam reads a UUID path parameter; on failure it writes the 400
// response and returns false.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Newf(apierror.InvalidArgument, "%s invalido", name))
		return uuid.Nil, false
	}
	return id, true
}

// dealerScope returns the dealer the caller is restricted to: the
// concesionario_id claim for dealer users, nil (unrestricted) for admin
// and factory users.
func dealerScope(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.ConcesionarioID == nil {
		return nil
	}
	id, err := uuid.Parse(*claims.ConcesionarioID)
	if err != nil {
		return nil
	}
	return &id
}
