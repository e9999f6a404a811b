package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConceptoCuota is a recurring charge template (cuota ordinaria, fondo de
// reserva, cuota extraordinaria, etc.).
// Periodicidad: "mensual" | "bimestral" | "trimestral" | "semestral" | "anual" | "unica"
// Deleting a concepto is blocked while cuotas reference it (FK RESTRICT).
type ConceptoCuota struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"type:varchar(100);not null"`
	Descripcion string
	MontoBase   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Periodicidad string         `gorm:"type:varchar(15);not null;default:'mensual'"`
	// AplicaRecargo enables monthly late fees on overdue cuotas of this concepto
	AplicaRecargo bool `gorm:"not null;default:true"`
	// PorcentajeRecargo is the monthly late-fee percentage (e.g. 2.00 = 2%/month)
	PorcentajeRecargo decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Activo            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
