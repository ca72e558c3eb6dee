package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol is the closed set of caller roles. Authorization never compares
// free-form strings: every protected route declares its allowed roles
// against these constants.
type Rol string

const (
	RolAdmin   Rol = "admin"
	RolFactory Rol = "factory"
	RolDealer  Rol = "dealer"
)

func (r Rol) Valido() bool {
	switch r {
	case RolAdmin, RolFactory, RolDealer:
		return true
	}
	return false
}

// Usuario stores API users. Dealer users carry the ConcesionarioID claim
// that scopes every dealer-only operation; admin and factory users have
// none.
type Usuario struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username        string    `gorm:"uniqueIndex;not null"`
	Nombre          string    `gorm:"not null"`
	PasswordHash    string    `gorm:"not null"`
	Rol             Rol       `gorm:"type:varchar(20);not null"`
	ConcesionarioID *uuid.UUID `gorm:"type:uuid;index"`
	Activo          bool       `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
