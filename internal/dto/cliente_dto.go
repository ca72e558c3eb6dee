package dto

type GuardarClienteRequest struct {
	Nombre          string  `json:"nombre" validate:"required"`
	DNI             string  `json:"dni"    validate:"required"`
	Email           string  `json:"email"  validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

type ClienteResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	DNI      string  `json:"dni"`
	Email    string  `json:"email"`
	Telefono *string `json:"telefono,omitempty"`
}

type CrearInteraccionRequest struct {
	ClienteID        string  `json:"cliente_id" validate:"required,uuid"`
	Notas            string  `json:"notas"      validate:"required"`
	FechaSeguimiento *string `json:"fecha_seguimiento" validate:"omitempty,datetime=2006-01-02"`
}

type InteraccionResponse struct {
	ID                string  `json:"id"`
	ClienteID         string  `json:"cliente_id"`
	Notas             string  `json:"notas"`
	Fecha             string  `json:"fecha"`
	FechaSeguimiento  *string `json:"fecha_seguimiento,omitempty"`
	EstadoSeguimiento string  `json:"estado_seguimiento"`
}
