package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Concesionario is a dealer in the network. CreditoDisponible is a
// running balance maintained incrementally: it only changes through an
// order-confirmation debit, an invoice-payment credit, or an explicit
// credit-line edit that applies the delta. Invariant at all times:
// 0 <= CreditoDisponible <= LineaCredito.
type Concesionario struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"not null"`
	Direccion         string
	Email             *string
	Territorio        string          `gorm:"index"`
	LineaCredito      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreditoDisponible decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Concesionario) TableName() string { return "concesionarios" }
