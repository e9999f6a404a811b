package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoCuenta is a period-scoped rollup of a vivienda's cuotas and verified
// pagos into a running balance. Totals are recomputed on demand, never
// automatically when the underlying rows change.
//
// Invariant: SaldoFinal = SaldoAnterior + TotalCuotas + TotalRecargos − TotalPagos.
type EstadoCuenta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ViviendaID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_estado_cuenta_periodo"`
	FechaInicio   time.Time       `gorm:"type:date;not null;uniqueIndex:idx_estado_cuenta_periodo"`
	FechaFin      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_estado_cuenta_periodo"`
	SaldoAnterior decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalCuotas   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalPagos    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalRecargos decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SaldoFinal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Enviado       bool            `gorm:"not null;default:false"`
	FechaEnvio    *time.Time
	PDFPath       *string `gorm:"column:pdf_path"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Vivienda *Vivienda `gorm:"foreignKey:ViviendaID;constraint:OnDelete:CASCADE"`
}
