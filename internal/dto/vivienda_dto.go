package dto

import "github.com/shopspring/decimal"

// ─── Edificios ───────────────────────────────────────────────────────────────

type CrearEdificioRequest struct {
	Nombre            string  `json:"nombre"    validate:"required,min=2,max=100"`
	Direccion         string  `json:"direccion" validate:"required,min=5"`
	Pisos             int     `json:"pisos"     validate:"required,min=1,max=200"`
	FechaConstruccion *string `json:"fecha_construccion" validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarEdificioRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=100"`
	Direccion *string `json:"direccion" validate:"omitempty,min=5"`
	Pisos     *int    `json:"pisos"     validate:"omitempty,min=1,max=200"`
}

type EdificioResponse struct {
	ID                string  `json:"id"`
	Nombre            string  `json:"nombre"`
	Direccion         string  `json:"direccion"`
	Pisos             int     `json:"pisos"`
	FechaConstruccion *string `json:"fecha_construccion,omitempty"`
	TotalViviendas    int     `json:"total_viviendas"`
}

// ─── Viviendas ───────────────────────────────────────────────────────────────

type CrearViviendaRequest struct {
	EdificioID      string          `json:"edificio_id"      validate:"required,uuid"`
	Numero          string          `json:"numero"           validate:"required,min=1,max=10"`
	Piso            int             `json:"piso"             validate:"min=0"`
	MetrosCuadrados decimal.Decimal `json:"metros_cuadrados" validate:"required"`
	Habitaciones    int             `json:"habitaciones"     validate:"omitempty,min=1"`
	Banos           int             `json:"banos"            validate:"omitempty,min=1"`
	Estado          string          `json:"estado"           validate:"omitempty,oneof=ocupado desocupado mantenimiento"`
}

type ActualizarViviendaRequest struct {
	Numero          *string          `json:"numero"           validate:"omitempty,min=1,max=10"`
	Piso            *int             `json:"piso"             validate:"omitempty,min=0"`
	MetrosCuadrados *decimal.Decimal `json:"metros_cuadrados"`
	Habitaciones    *int             `json:"habitaciones"     validate:"omitempty,min=1"`
	Banos           *int             `json:"banos"            validate:"omitempty,min=1"`
	Estado          *string          `json:"estado"           validate:"omitempty,oneof=ocupado desocupado mantenimiento"`
}

// DarBajaViviendaRequest soft-deletes a unit; its residents are detached.
type DarBajaViviendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type ViviendaResponse struct {
	ID              string          `json:"id"`
	EdificioID      string          `json:"edificio_id"`
	Edificio        string          `json:"edificio,omitempty"`
	Numero          string          `json:"numero"`
	Piso            int             `json:"piso"`
	MetrosCuadrados decimal.Decimal `json:"metros_cuadrados"`
	Habitaciones    int             `json:"habitaciones"`
	Banos           int             `json:"banos"`
	Estado          string          `json:"estado"`
	Activo          bool            `json:"activo"`
	FechaBaja       *string         `json:"fecha_baja,omitempty"`
	MotivoBaja      *string         `json:"motivo_baja,omitempty"`
}

// ─── Residentes ──────────────────────────────────────────────────────────────

type CrearResidenteRequest struct {
	UsuarioID     string `json:"usuario_id"     validate:"required,uuid"`
	ViviendaID    string `json:"vivienda_id"    validate:"required,uuid"`
	FechaIngreso  string `json:"fecha_ingreso"  validate:"required,datetime=2006-01-02"`
	Vehiculos     int    `json:"vehiculos"      validate:"min=0"`
	EsPropietario bool   `json:"es_propietario"`
}

type ActualizarResidenteRequest struct {
	ViviendaID    *string `json:"vivienda_id"    validate:"omitempty,uuid"`
	Vehiculos     *int    `json:"vehiculos"      validate:"omitempty,min=0"`
	EsPropietario *bool   `json:"es_propietario"`
	Activo        *bool   `json:"activo"`
}

type ResidenteResponse struct {
	ID            string  `json:"id"`
	UsuarioID     string  `json:"usuario_id"`
	Nombre        string  `json:"nombre,omitempty"`
	ViviendaID    *string `json:"vivienda_id"`
	Vivienda      string  `json:"vivienda,omitempty"`
	FechaIngreso  string  `json:"fecha_ingreso"`
	Vehiculos     int     `json:"vehiculos"`
	EsPropietario bool    `json:"es_propietario"`
	Activo        bool    `json:"activo"`
}
