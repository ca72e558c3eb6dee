package dto

import "github.com/shopspring/decimal"

type FacturaResponse struct {
	ID              string          `json:"id"`
	VehiculoID      string          `json:"vehiculo_id"`
	ConcesionarioID string          `json:"concesionario_id"`
	Precio          decimal.Decimal `json:"precio"`
	Estado          string          `json:"estado"`
	Fecha           string          `json:"fecha"`
	PDFUrl          *string         `json:"pdf_url,omitempty"`
}

type FacturaFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=pendiente pagada all"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}
