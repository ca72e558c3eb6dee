package dto

import "github.com/shopspring/decimal"

// GuardarConcesionarioRequest creates or updates a dealer. On update, a
// changed linea_credito applies its delta to the available credit rather
// than recomputing it, preserving amounts already encumbered by
// confirmed unsettled orders.
type GuardarConcesionarioRequest struct {
	Nombre       string          `json:"nombre"        validate:"required"`
	Direccion    string          `json:"direccion"`
	Email        *string         `json:"email"         validate:"omitempty,email"`
	Territorio   string          `json:"territorio"`
	LineaCredito decimal.Decimal `json:"linea_credito" validate:"min=0"`
}

type ConcesionarioResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Direccion         string          `json:"direccion"`
	Email             *string         `json:"email,omitempty"`
	Territorio        string          `json:"territorio"`
	LineaCredito      decimal.Decimal `json:"linea_credito"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
}
