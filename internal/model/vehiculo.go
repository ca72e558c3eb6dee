package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoVehiculo is the lifecycle status of a vehicle. Transitions only
// move forward: enFabrica → asignado → enTransito → enConcesionario → vendido.
type EstadoVehiculo string

const (
	EstadoEnFabrica       EstadoVehiculo = "enFabrica"
	EstadoAsignado        EstadoVehiculo = "asignado"
	EstadoEnTransito      EstadoVehiculo = "enTransito"
	EstadoEnConcesionario EstadoVehiculo = "enConcesionario"
	EstadoVendido         EstadoVehiculo = "vendido"
)

// ordenEstado encodes the forward order of the lifecycle. Higher never
// goes back to lower.
var ordenEstado = map[EstadoVehiculo]int{
	EstadoEnFabrica:       0,
	EstadoAsignado:        1,
	EstadoEnTransito:      2,
	EstadoEnConcesionario: 3,
	EstadoVendido:         4,
}

func (e EstadoVehiculo) Valido() bool {
	_, ok := ordenEstado[e]
	return ok
}

// Posterior reports whether destino is strictly further along the
// lifecycle than e. Used to reject regressions on administrative edits.
func (e EstadoVehiculo) Posterior(destino EstadoVehiculo) bool {
	return destino.Valido() && e.Valido() && ordenEstado[destino] > ordenEstado[e]
}

// Vehiculo is the unit of inventory tracked from factory to customer.
// ConcesionarioID is set exactly once (at matching or manual assignment)
// and retained after the sale for audit.
type Vehiculo struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Marca             string    `gorm:"not null"`
	Modelo            string    `gorm:"not null"`
	Version           *string
	VIN               string `gorm:"column:vin;uniqueIndex;not null"`
	Color             *string
	Precio            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado            EstadoVehiculo  `gorm:"type:varchar(20);not null;default:'enFabrica';index"`
	ConcesionarioID   *uuid.UUID      `gorm:"type:uuid;index"`
	FechaFabricacion  *time.Time
	FechaEntregaFinal *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Concesionario *Concesionario    `gorm:"foreignKey:ConcesionarioID"`
	Historial     []HistorialEstado `gorm:"foreignKey:VehiculoID"`
}

// HistorialEstado is one entry of a vehicle's append-only status log.
// Rows are only ever inserted — there is no update or delete path.
type HistorialEstado struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehiculoID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Estado     EstadoVehiculo `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
}

func (HistorialEstado) TableName() string { return "historial_estados" }
