package model

import (
	"time"

	"github.com/google/uuid"
)

// Visita is a visitor access record. A QR pass is issued at registration;
// the pass embeds the visita id and an HMAC signature (see infra/qr.go).
type Visita struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreVisitante    string    `gorm:"type:varchar(100);not null"`
	DocumentoVisitante string    `gorm:"type:varchar(20);not null"`
	ViviendaDestinoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ResidenteAutorizaID uuid.UUID `gorm:"type:uuid;not null"`
	FechaHoraEntrada   time.Time `gorm:"not null"`
	FechaHoraSalida    *time.Time `gorm:"index"`
	Motivo             string
	RegistradoPorID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time

	ViviendaDestino   *Vivienda  `gorm:"foreignKey:ViviendaDestinoID;constraint:OnDelete:CASCADE"`
	ResidenteAutoriza *Residente `gorm:"foreignKey:ResidenteAutorizaID;constraint:OnDelete:CASCADE"`
}

// MovimientoResidente logs a resident entering or leaving the premises.
type MovimientoResidente struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResidenteID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FechaHoraEntrada *time.Time
	FechaHoraSalida  *time.Time
	Vehiculo         bool   `gorm:"not null;default:false"`
	PlacaVehiculo    string `gorm:"type:varchar(10)"`
	CreatedAt        time.Time

	Residente *Residente `gorm:"foreignKey:ResidenteID;constraint:OnDelete:CASCADE"`
}
