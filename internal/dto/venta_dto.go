package dto

import "github.com/shopspring/decimal"

// ClienteNuevoRequest is the inline customer payload accepted during
// sale registration instead of an existing cliente_id.
type ClienteNuevoRequest struct {
	Nombre          string  `json:"nombre" validate:"required"`
	DNI             string  `json:"dni"    validate:"required"`
	Email           string  `json:"email"  validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

// RegistrarVentaRequest registers a retail sale. Exactly one of
// ClienteID or ClienteNuevo must be present; the service rejects the
// request before any write when neither or both are given.
type RegistrarVentaRequest struct {
	VehiculoID   string               `json:"vehiculo_id"  validate:"required,uuid"`
	ClienteID    *string              `json:"cliente_id"   validate:"omitempty,uuid"`
	ClienteNuevo *ClienteNuevoRequest `json:"cliente_nuevo"`
	PrecioFinal  *decimal.Decimal     `json:"precio_final" validate:"required"`
	// ConcesionarioID is only honored for admin callers; dealers always
	// sell on their own behalf.
	ConcesionarioID *string `json:"concesionario_id" validate:"omitempty,uuid"`

	MetodoFinanciacion *string          `json:"metodo_financiacion" validate:"omitempty,oneof=contado financiado leasing"`
	EntregaMarca       *string          `json:"entrega_marca"`
	EntregaModelo      *string          `json:"entrega_modelo"`
	EntregaVIN         *string          `json:"entrega_vin"`
	EntregaValor       *decimal.Decimal `json:"entrega_valor"`
}

type VentaResponse struct {
	ID              string          `json:"id"`
	VehiculoID      string          `json:"vehiculo_id"`
	ClienteID       string          `json:"cliente_id"`
	ConcesionarioID string          `json:"concesionario_id"`
	PrecioFinal     decimal.Decimal `json:"precio_final"`
	FechaVenta      string          `json:"fecha_venta"`
}

type VentaFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}
