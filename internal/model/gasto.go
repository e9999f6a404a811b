package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoriaGasto groups condominium expenses and carries a monthly budget.
type CategoriaGasto struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string          `gorm:"type:varchar(100);not null"`
	Descripcion        string
	PresupuestoMensual decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// Color is a HEX code used by dashboard charts
	Color     string `gorm:"type:varchar(7);not null;default:'#3498db'"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	GastoPendiente = "pendiente"
	GastoPagado    = "pagado"
	GastoCancelado = "cancelado"
)

// Gasto is a condominium expense.
// TipoGasto: "ordinario" | "extraordinario" | "mantenimiento" | "servicio" | "otro"
type Gasto struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_gastos_categoria_fecha"`
	Concepto        string          `gorm:"type:varchar(200);not null"`
	Descripcion     string
	Monto           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Fecha           time.Time       `gorm:"type:date;not null;index:idx_gastos_categoria_fecha"`
	FechaPago       *time.Time      `gorm:"type:date"`
	Proveedor       string          `gorm:"type:varchar(200)"`
	ComprobantePath *string         `gorm:"column:comprobante_path"`
	// Factura is the invoice or receipt number from the supplier
	Factura         string     `gorm:"type:varchar(100)"`
	Estado          string     `gorm:"type:varchar(15);not null;default:'pendiente';index"`
	TipoGasto       string     `gorm:"type:varchar(15);not null;default:'ordinario'"`
	Presupuestado   bool       `gorm:"not null;default:false"`
	Recurrente      bool       `gorm:"not null;default:false"`
	RegistradoPorID *uuid.UUID `gorm:"type:uuid"`
	AutorizadoPorID *uuid.UUID `gorm:"type:uuid"`
	Notas           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Categoria *CategoriaGasto `gorm:"foreignKey:CategoriaID;constraint:OnDelete:RESTRICT"`
}
