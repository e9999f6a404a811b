package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Puesto defines a staff position (conserje, jardinero, técnico, etc.).
type Puesto struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre                 string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Descripcion            string
	RequiereEspecializacion bool `gorm:"not null;default:false"`
	Activo                 bool `gorm:"not null;default:true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Empleado is a condominium staff member.
// TipoContrato: "permanente" | "temporal" | "externo"
type Empleado struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	PuestoID          uuid.UUID  `gorm:"type:uuid;not null"`
	EdificioID        *uuid.UUID `gorm:"type:uuid"`
	FechaContratacion time.Time  `gorm:"type:date;not null"`
	TipoContrato      string     `gorm:"type:varchar(15);not null;default:'permanente'"`
	Salario           *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Especialidad      string     `gorm:"type:varchar(100)"`
	Activo            bool       `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID"`
	Puesto   *Puesto   `gorm:"foreignKey:PuestoID;constraint:OnDelete:RESTRICT"`
	Edificio *Edificio `gorm:"foreignKey:EdificioID;constraint:OnDelete:SET NULL"`
}

// Asignacion task states.
const (
	AsignacionPendiente  = "pendiente"
	AsignacionEnProgreso = "en_progreso"
	AsignacionCompletada = "completada"
	AsignacionCancelada  = "cancelada"
)

// Asignacion is a task assigned to an employee. ViviendaID nil means the
// task targets a common area.
// Tipo: "limpieza" | "mantenimiento" | "jardineria" | "seguridad" | "otro"
// Prioridad: 1 (alta) .. 3 (baja)
type Asignacion struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ViviendaID      *uuid.UUID `gorm:"type:uuid"`
	Tipo            string     `gorm:"type:varchar(15);not null"`
	Descripcion     string     `gorm:"not null"`
	FechaAsignacion time.Time  `gorm:"type:date;not null"`
	FechaLimite     *time.Time `gorm:"type:date"`
	Estado          string     `gorm:"type:varchar(15);not null;default:'pendiente';index"`
	Prioridad       int        `gorm:"not null;default:2"`
	CompletadaEn    *time.Time
	Notas           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Empleado *Empleado `gorm:"foreignKey:EmpleadoID;constraint:OnDelete:CASCADE"`
	Vivienda *Vivienda `gorm:"foreignKey:ViviendaID;constraint:OnDelete:SET NULL"`
}
