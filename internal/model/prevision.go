package model

import (
	"time"

	"github.com/google/uuid"
)

// Prevision is a monthly production forecast registered by the factory.
type Prevision struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Mes       string    `gorm:"not null"` // YYYY-MM
	Objetivo  int       `gorm:"not null"`
	Marca     *string
	Modelo    *string
	CreatedAt time.Time
}

func (Prevision) TableName() string { return "previsiones" }
