package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles form a closed set. RequireRole middleware and every permission
// check compare only against these constants.
const (
	RolAdministrador = "administrador"
	RolGerente       = "gerente"
	RolSeguridad     = "seguridad"
	RolResidente     = "residente"
)

// Usuario stores system users with role-based access.
// Rol: "administrador" | "gerente" | "seguridad" | "residente"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
