package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a retail customer, optionally created inline during sale
// registration. DNI is indexed but deliberately not unique: the legacy
// data contains duplicates that would break a unique constraint.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"not null"`
	DNI             string    `gorm:"column:dni;index;not null"`
	Email           string
	Telefono        *string
	FechaNacimiento *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Estados de seguimiento de una interacción.
const (
	SeguimientoPendiente  = "pendiente"
	SeguimientoCompletado = "completado"
)

// Interaccion is a CRM note on a customer. When a follow-up date is set
// the entry stays pendiente until explicitly completed.
type Interaccion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Notas             string    `gorm:"not null"`
	Fecha             time.Time `gorm:"not null"`
	FechaSeguimiento  *time.Time
	EstadoSeguimiento string `gorm:"type:varchar(20);not null;default:'completado'"`
	CreatedAt         time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Interaccion) TableName() string { return "interacciones" }
