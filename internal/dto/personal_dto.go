package dto

import "github.com/shopspring/decimal"

// ─── Puestos ─────────────────────────────────────────────────────────────────

type CrearPuestoRequest struct {
	Nombre                  string `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion             string `json:"descripcion"`
	RequiereEspecializacion bool   `json:"requiere_especializacion"`
}

type PuestoResponse struct {
	ID                      string `json:"id"`
	Nombre                  string `json:"nombre"`
	Descripcion             string `json:"descripcion,omitempty"`
	RequiereEspecializacion bool   `json:"requiere_especializacion"`
	Activo                  bool   `json:"activo"`
}

// ─── Empleados ───────────────────────────────────────────────────────────────

type CrearEmpleadoRequest struct {
	UsuarioID         string           `json:"usuario_id"         validate:"required,uuid"`
	PuestoID          string           `json:"puesto_id"          validate:"required,uuid"`
	EdificioID        *string          `json:"edificio_id"        validate:"omitempty,uuid"`
	FechaContratacion string           `json:"fecha_contratacion" validate:"required,datetime=2006-01-02"`
	TipoContrato      string           `json:"tipo_contrato"      validate:"omitempty,oneof=permanente temporal externo"`
	Salario           *decimal.Decimal `json:"salario"`
	Especialidad      string           `json:"especialidad"       validate:"omitempty,max=100"`
}

type ActualizarEmpleadoRequest struct {
	PuestoID     *string          `json:"puesto_id"     validate:"omitempty,uuid"`
	EdificioID   *string          `json:"edificio_id"   validate:"omitempty,uuid"`
	TipoContrato *string          `json:"tipo_contrato" validate:"omitempty,oneof=permanente temporal externo"`
	Salario      *decimal.Decimal `json:"salario"`
	Especialidad *string          `json:"especialidad"  validate:"omitempty,max=100"`
	Activo       *bool            `json:"activo"`
}

type EmpleadoResponse struct {
	ID                string `json:"id"`
	UsuarioID         string `json:"usuario_id"`
	Nombre            string `json:"nombre,omitempty"`
	Puesto            string `json:"puesto,omitempty"`
	FechaContratacion string `json:"fecha_contratacion"`
	TipoContrato      string `json:"tipo_contrato"`
	Especialidad      string `json:"especialidad,omitempty"`
	Activo            bool   `json:"activo"`
}

// ─── Asignaciones ────────────────────────────────────────────────────────────

// AsignacionFilter is bound from the query string of GET /v1/asignaciones.
type AsignacionFilter struct {
	EmpleadoID string `form:"empleado_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=pendiente en_progreso completada cancelada"`
	Tipo       string `form:"tipo"        validate:"omitempty,oneof=limpieza mantenimiento jardineria seguridad otro"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearAsignacionRequest struct {
	EmpleadoID  string  `json:"empleado_id" validate:"required,uuid"`
	ViviendaID  *string `json:"vivienda_id" validate:"omitempty,uuid"`
	Tipo        string  `json:"tipo"        validate:"required,oneof=limpieza mantenimiento jardineria seguridad otro"`
	Descripcion string  `json:"descripcion" validate:"required,min=5"`
	FechaLimite *string `json:"fecha_limite" validate:"omitempty,datetime=2006-01-02"`
	Prioridad   int     `json:"prioridad"   validate:"omitempty,min=1,max=3"`
}

type CambiarEstadoAsignacionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_progreso completada cancelada"`
	Notas  string `json:"notas"`
}

type AsignacionResponse struct {
	ID              string  `json:"id"`
	EmpleadoID      string  `json:"empleado_id"`
	Empleado        string  `json:"empleado,omitempty"`
	ViviendaID      *string `json:"vivienda_id,omitempty"`
	Vivienda        string  `json:"vivienda,omitempty"`
	Tipo            string  `json:"tipo"`
	Descripcion     string  `json:"descripcion"`
	FechaAsignacion string  `json:"fecha_asignacion"`
	FechaLimite     *string `json:"fecha_limite,omitempty"`
	Estado          string  `json:"estado"`
	Prioridad       int     `json:"prioridad"`
	CompletadaEn    *string `json:"completada_en,omitempty"`
	Notas           string  `json:"notas,omitempty"`
}

type AsignacionListResponse struct {
	Data  []AsignacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
