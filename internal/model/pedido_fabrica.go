package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de un pedido a fábrica.
const (
	PedidoPendiente  = "pendiente"
	PedidoEmparejado = "emparejado"
)

// PedidoFabrica is a dealer's request for a make/model, fulfilled by
// matching it against factory-held inventory. pendiente → emparejado
// happens exactly once; the matched vehicle must have been unassigned
// and at the factory.
type PedidoFabrica struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConcesionarioID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Marca                 string     `gorm:"not null"`
	Modelo                string     `gorm:"not null"`
	Estado                string     `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	VehiculoEmparejadoID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Concesionario *Concesionario `gorm:"foreignKey:ConcesionarioID"`
}

func (PedidoFabrica) TableName() string { return "pedidos_fabrica" }
