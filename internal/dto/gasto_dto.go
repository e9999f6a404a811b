package dto

import "github.com/shopspring/decimal"

// ─── Categorías ──────────────────────────────────────────────────────────────

type CrearCategoriaGastoRequest struct {
	Nombre             string          `json:"nombre"              validate:"required,min=2,max=100"`
	Descripcion        string          `json:"descripcion"`
	PresupuestoMensual decimal.Decimal `json:"presupuesto_mensual"`
	Color              string          `json:"color"               validate:"omitempty,hexcolor"`
}

type ActualizarCategoriaGastoRequest struct {
	Nombre             *string          `json:"nombre"              validate:"omitempty,min=2,max=100"`
	Descripcion        *string          `json:"descripcion"`
	PresupuestoMensual *decimal.Decimal `json:"presupuesto_mensual"`
	Color              *string          `json:"color"               validate:"omitempty,hexcolor"`
	Activo             *bool            `json:"activo"`
}

type CategoriaGastoResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Descripcion        string          `json:"descripcion,omitempty"`
	PresupuestoMensual decimal.Decimal `json:"presupuesto_mensual"`
	Color              string          `json:"color"`
	Activo             bool            `json:"activo"`
	// GastadoMes and PorcentajeEjecutado are filled only by the budget report
	GastadoMes          *decimal.Decimal `json:"gastado_mes,omitempty"`
	PorcentajeEjecutado *decimal.Decimal `json:"porcentaje_ejecutado,omitempty"`
}

// ─── Gastos ──────────────────────────────────────────────────────────────────

// GastoFilter is bound from the query string of GET /v1/gastos.
type GastoFilter struct {
	CategoriaID string `form:"categoria_id" validate:"omitempty,uuid"`
	Estado      string `form:"estado"       validate:"omitempty,oneof=pendiente pagado cancelado"`
	Tipo        string `form:"tipo"         validate:"omitempty,oneof=ordinario extraordinario mantenimiento servicio otro"`
	Desde       string `form:"desde"        validate:"omitempty,datetime=2006-01-02"`
	Hasta       string `form:"hasta"        validate:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearGastoRequest struct {
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
	Concepto    string          `json:"concepto"     validate:"required,min=2,max=200"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"        validate:"required"`
	Fecha       string          `json:"fecha"        validate:"required,datetime=2006-01-02"`
	Proveedor   string          `json:"proveedor"    validate:"omitempty,max=200"`
	Factura     string          `json:"factura"      validate:"omitempty,max=100"`
	TipoGasto   string          `json:"tipo_gasto"   validate:"omitempty,oneof=ordinario extraordinario mantenimiento servicio otro"`
	Recurrente  bool            `json:"recurrente"`
	Notas       string          `json:"notas"`
}

type ActualizarGastoRequest struct {
	Concepto    *string          `json:"concepto"    validate:"omitempty,min=2,max=200"`
	Descripcion *string          `json:"descripcion"`
	Monto       *decimal.Decimal `json:"monto"`
	Fecha       *string          `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	Proveedor   *string          `json:"proveedor"   validate:"omitempty,max=200"`
	Factura     *string          `json:"factura"     validate:"omitempty,max=100"`
	Notas       *string          `json:"notas"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	CategoriaID string          `json:"categoria_id"`
	Categoria   string          `json:"categoria,omitempty"`
	Concepto    string          `json:"concepto"`
	Descripcion string          `json:"descripcion,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	FechaPago   *string         `json:"fecha_pago,omitempty"`
	Proveedor   string          `json:"proveedor,omitempty"`
	Factura     string          `json:"factura,omitempty"`
	Estado      string          `json:"estado"`
	TipoGasto   string          `json:"tipo_gasto"`
	Recurrente  bool            `json:"recurrente"`
	Notas       string          `json:"notas,omitempty"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
