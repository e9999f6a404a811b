package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment states. Pendiente is the only state from which verificar or
// rechazar may be entered; a verified payment can still be rejected
// afterwards, which reverses its allocations.
const (
	PagoPendiente  = "pendiente"
	PagoVerificado = "verificado"
	PagoRechazado  = "rechazado"
)

// Pago is a monetary receipt from a resident, verified or rejected by an
// administrator. It funds zero or more cuotas through PagoCuota allocations.
// Metodo: "efectivo" | "transferencia" | "cheque" | "tarjeta" | "otro"
type Pago struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ViviendaID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_pagos_vivienda_estado"`
	ResidenteID *uuid.UUID      `gorm:"type:uuid;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaPago   time.Time       `gorm:"type:date;not null;index"`
	Metodo      string          `gorm:"type:varchar(15);not null"`
	// Referencia holds the transfer/cheque/transaction number; required for
	// metodo transferencia and cheque
	Referencia         string  `gorm:"type:varchar(100)"`
	Estado             string  `gorm:"type:varchar(15);not null;default:'pendiente';index:idx_pagos_vivienda_estado"`
	ComprobantePath    *string `gorm:"column:comprobante_path"`
	Notas              string
	RegistradoPorID    *uuid.UUID `gorm:"type:uuid"`
	VerificadoPorID    *uuid.UUID `gorm:"type:uuid"`
	FechaVerificacion  *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Vivienda     *Vivienda   `gorm:"foreignKey:ViviendaID;constraint:OnDelete:CASCADE"`
	Residente    *Residente  `gorm:"foreignKey:ResidenteID;constraint:OnDelete:SET NULL"`
	Asignaciones []PagoCuota `gorm:"foreignKey:PagoID"`
}

// PagoCuota records how much of a payment was applied to which cuota.
// A payment may allocate to a given cuota at most once, and the applied
// amount may never exceed the cuota's outstanding total at creation time.
type PagoCuota struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PagoID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pago_cuota"`
	CuotaID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pago_cuota"`
	MontoAplicado decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time

	Pago  *Pago  `gorm:"foreignKey:PagoID;constraint:OnDelete:CASCADE"`
	Cuota *Cuota `gorm:"foreignKey:CuotaID;constraint:OnDelete:CASCADE"`
}
