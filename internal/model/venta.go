package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta records the retail sale of a vehicle to an end customer. Its
// creation and the vehicle's flip to vendido are one atomic unit.
// Trade-in and financing fields are optional.
type Venta struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehiculoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ConcesionarioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrecioFinal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaVenta      time.Time       `gorm:"not null"`

	MetodoFinanciacion *string
	EntregaMarca       *string
	EntregaModelo      *string
	EntregaVIN         *string          `gorm:"column:entrega_vin"`
	EntregaValor       *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time

	Vehiculo *Vehiculo `gorm:"foreignKey:VehiculoID"`
	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
}
