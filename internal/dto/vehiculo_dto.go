package dto

import "github.com/shopspring/decimal"

// GuardarVehiculoRequest creates or updates a vehicle (POST / PUT).
// Estado is optional on creation (defaults to enFabrica); on update a
// changed estado must move the lifecycle forward.
type GuardarVehiculoRequest struct {
	Marca            string          `json:"marca"   validate:"required"`
	Modelo           string          `json:"modelo"  validate:"required"`
	Version          *string         `json:"version"`
	VIN              string          `json:"vin"     validate:"required,min=11"`
	Color            *string         `json:"color"`
	Precio           decimal.Decimal `json:"precio"  validate:"required,gt=0"`
	Estado           string          `json:"estado"  validate:"omitempty,oneof=enFabrica asignado enTransito enConcesionario vendido"`
	FechaFabricacion *string         `json:"fecha_fabricacion" validate:"omitempty,datetime=2006-01-02"`
}

type AsignarConcesionarioRequest struct {
	ConcesionarioID string `json:"concesionario_id" validate:"required,uuid"`
}

type VehiculoFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=enFabrica asignado enTransito enConcesionario vendido all"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type HistorialEstadoResponse struct {
	Estado string `json:"estado"`
	Fecha  string `json:"fecha"`
}

type VehiculoResponse struct {
	ID                string                    `json:"id"`
	Marca             string                    `json:"marca"`
	Modelo            string                    `json:"modelo"`
	Version           *string                   `json:"version,omitempty"`
	VIN               string                    `json:"vin"`
	Color             *string                   `json:"color,omitempty"`
	Precio            decimal.Decimal           `json:"precio"`
	Estado            string                    `json:"estado"`
	ConcesionarioID   *string                   `json:"concesionario_id,omitempty"`
	FechaEntregaFinal *string                   `json:"fecha_entrega_final,omitempty"`
	Historial         []HistorialEstadoResponse `json:"historial"`
	CreatedAt         string                    `json:"created_at"`
}

type VehiculoListResponse struct {
	Data  []VehiculoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// OperacionResponse is the uniform success envelope for lifecycle
// operations that do not return a full entity.
type OperacionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
