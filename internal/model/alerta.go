package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertaPendiente = "pendiente"
	AlertaEnProceso = "en_proceso"
	AlertaResuelta  = "resuelto"
)

// Alerta is an emergency or notice raised by a resident or guard.
// Tipo: "incendio" | "sismo" | "seguridad" | "salud" | "aviso" | "reunion"
type Alerta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo         string    `gorm:"type:varchar(15);not null"`
	Descripcion  string    `gorm:"not null"`
	Estado       string    `gorm:"type:varchar(15);not null;default:'pendiente';index"`
	EnviadoPorID uuid.UUID `gorm:"type:uuid;not null;index"`
	// AtendidoPorID and FechaAtencion are stamped when staff takes the alerta
	AtendidoPorID *uuid.UUID `gorm:"type:uuid"`
	FechaAtencion *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	EnviadoPor  *Usuario `gorm:"foreignKey:EnviadoPorID"`
	AtendidoPor *Usuario `gorm:"foreignKey:AtendidoPorID"`
}

// EstadoAlertaValido reports whether e belongs to the closed estado set.
func EstadoAlertaValido(e string) bool {
	return e == AlertaPendiente || e == AlertaEnProceso || e == AlertaResuelta
}
