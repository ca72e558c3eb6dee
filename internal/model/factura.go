package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una factura B2B.
const (
	FacturaPendiente = "pendiente"
	FacturaPagada    = "pagada"
)

// Factura is the B2B invoice created when a dealer-assigned vehicle
// reaches the dealership. It is created exactly once, inside the same
// transaction that moves the vehicle to enConcesionario. Settling it
// (pendiente → pagada, also exactly once) restores the dealer's
// available credit by Precio in the same transaction.
type Factura struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehiculoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ConcesionarioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Fecha           time.Time       `gorm:"not null"`
	// PDFPath is filled by the documento worker after commit; relative to PDF_STORAGE_PATH
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Vehiculo      *Vehiculo      `gorm:"foreignKey:VehiculoID"`
	Concesionario *Concesionario `gorm:"foreignKey:ConcesionarioID"`
}
