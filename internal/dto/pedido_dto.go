package dto

type CrearPedidoRequest struct {
	Marca  string `json:"marca"  validate:"required"`
	Modelo string `json:"modelo" validate:"required"`
}

type EmparejarPedidoRequest struct {
	VehiculoID string `json:"vehiculo_id" validate:"required,uuid"`
}

type PedidoResponse struct {
	ID                   string  `json:"id"`
	ConcesionarioID      string  `json:"concesionario_id"`
	Marca                string  `json:"marca"`
	Modelo               string  `json:"modelo"`
	Estado               string  `json:"estado"`
	VehiculoEmparejadoID *string `json:"vehiculo_emparejado_id,omitempty"`
	CreatedAt            string  `json:"created_at"`
}
