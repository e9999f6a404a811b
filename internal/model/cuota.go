package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cuota is a single billed charge instance for one vivienda and one period.
// Cuotas are never deleted in normal operation; only cascade deletes of the
// owning vivienda remove them.
type Cuota struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConceptoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ViviendaID uuid.UUID `gorm:"type:uuid;not null;index:idx_cuotas_vivienda_pagada"`
	// Monto is the outstanding principal. Partial payments reduce it in place
	// (see PagoService reconciliation).
	Monto            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaEmision     time.Time       `gorm:"type:date;not null"`
	FechaVencimiento time.Time       `gorm:"type:date;not null;index"`
	Pagada           bool            `gorm:"not null;default:false;index:idx_cuotas_vivienda_pagada"`
	// Recargo is the accrued late fee, recomputed against the current date
	Recargo   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Concepto *ConceptoCuota `gorm:"foreignKey:ConceptoID;constraint:OnDelete:RESTRICT"`
	Vivienda *Vivienda      `gorm:"foreignKey:ViviendaID;constraint:OnDelete:CASCADE"`
}

// TotalAPagar is the outstanding total: principal plus accrued late fee.
func (c *Cuota) TotalAPagar() decimal.Decimal {
	return c.Monto.Add(c.Recargo)
}

// Vencida reports whether the cuota is overdue at the given date.
func (c *Cuota) Vencida(hoy time.Time) bool {
	return !c.Pagada && hoy.After(c.FechaVencimiento)
}

// CalcularRecargo computes the late fee owed at hoy. Requires Concepto to be
// preloaded. Returns 0.00 when the cuota is paid, the concepto does not apply
// late fees, or the cuota is not yet overdue.
//
// A full calendar month must have elapsed to count as one month late, but any
// overdue cuota is charged at least one month — there is no pro-rating.
func (c *Cuota) CalcularRecargo(hoy time.Time) decimal.Decimal {
	if c.Pagada || c.Concepto == nil || !c.Concepto.AplicaRecargo || !hoy.After(c.FechaVencimiento) {
		return decimal.Zero
	}

	venc := c.FechaVencimiento
	meses := (hoy.Year()-venc.Year())*12 + int(hoy.Month()) - int(venc.Month())
	if hoy.Day() < venc.Day() {
		meses--
	}
	if meses < 1 {
		meses = 1
	}

	// Round half-up to two places to avoid precision drift
	pctMensual := c.Concepto.PorcentajeRecargo.Div(decimal.NewFromInt(100))
	return c.Monto.Mul(pctMensual).Mul(decimal.NewFromInt(int64(meses))).Round(2)
}
