package dto

// DashboardStatsResponse carries the role-scoped counters. Dealers only
// see their own stock and sales; TotalConcesionarios is omitted for them.
type DashboardStatsResponse struct {
	VehiculosEnStock    int64  `json:"vehiculos_en_stock"`
	TotalVentas         int64  `json:"total_ventas"`
	TotalConcesionarios *int64 `json:"total_concesionarios,omitempty"`
}

type CrearPrevisionRequest struct {
	Mes      string  `json:"mes"      validate:"required,datetime=2006-01"`
	Objetivo int     `json:"objetivo" validate:"required,min=1"`
	Marca    *string `json:"marca"`
	Modelo   *string `json:"modelo"`
}

type PrevisionResponse struct {
	ID       string  `json:"id"`
	Mes      string  `json:"mes"`
	Objetivo int     `json:"objetivo"`
	Marca    *string `json:"marca,omitempty"`
	Modelo   *string `json:"modelo,omitempty"`
}
