package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Edificio is a building within the condominium complex.
type Edificio struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"not null"`
	Direccion         string    `gorm:"not null"`
	Pisos             int       `gorm:"not null"`
	FechaConstruccion *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Viviendas []Vivienda `gorm:"foreignKey:EdificioID;constraint:OnDelete:CASCADE"`
}

// Vivienda is a billable residential unit.
// Estado: "ocupado" | "desocupado" | "mantenimiento" | "baja"
type Vivienda struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EdificioID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Numero          string          `gorm:"type:varchar(10);not null"`
	Piso            int             `gorm:"not null"`
	MetrosCuadrados decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Habitaciones    int             `gorm:"not null;default:1"`
	Banos           int             `gorm:"not null;default:1"`
	Estado          string          `gorm:"type:varchar(15);not null;default:'desocupado'"`
	Activo          bool            `gorm:"not null;default:true"`
	FechaBaja       *time.Time
	MotivoBaja      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Edificio   *Edificio   `gorm:"foreignKey:EdificioID"`
	Residentes []Residente `gorm:"foreignKey:ViviendaID"`
}

// Residente links a Usuario to the Vivienda they live in.
// ViviendaID is nullable: deleting a unit detaches its residents.
type Residente struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ViviendaID    *uuid.UUID `gorm:"type:uuid;index"`
	FechaIngreso  time.Time  `gorm:"not null"`
	Vehiculos     int        `gorm:"not null;default:0"`
	Activo        bool       `gorm:"not null;default:true"`
	EsPropietario bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID"`
	Vivienda *Vivienda `gorm:"foreignKey:ViviendaID;constraint:OnDelete:SET NULL"`
}
