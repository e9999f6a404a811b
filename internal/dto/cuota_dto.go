package dto

import "github.com/shopspring/decimal"

// ─── Conceptos ───────────────────────────────────────────────────────────────

type CrearConceptoRequest struct {
	Nombre            string          `json:"nombre"             validate:"required,min=2,max=100"`
	Descripcion       string          `json:"descripcion"`
	MontoBase         decimal.Decimal `json:"monto_base"         validate:"required"`
	Periodicidad      string          `json:"periodicidad"       validate:"omitempty,oneof=mensual bimestral trimestral semestral anual unica"`
	AplicaRecargo     *bool           `json:"aplica_recargo"`
	PorcentajeRecargo decimal.Decimal `json:"porcentaje_recargo"`
}

type ActualizarConceptoRequest struct {
	Nombre            *string          `json:"nombre"             validate:"omitempty,min=2,max=100"`
	Descripcion       *string          `json:"descripcion"`
	MontoBase         *decimal.Decimal `json:"monto_base"`
	Periodicidad      *string          `json:"periodicidad"       validate:"omitempty,oneof=mensual bimestral trimestral semestral anual unica"`
	AplicaRecargo     *bool            `json:"aplica_recargo"`
	PorcentajeRecargo *decimal.Decimal `json:"porcentaje_recargo"`
	Activo            *bool            `json:"activo"`
}

type ConceptoResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Descripcion       string          `json:"descripcion,omitempty"`
	MontoBase         decimal.Decimal `json:"monto_base"`
	Periodicidad      string          `json:"periodicidad"`
	AplicaRecargo     bool            `json:"aplica_recargo"`
	PorcentajeRecargo decimal.Decimal `json:"porcentaje_recargo"`
	Activo            bool            `json:"activo"`
}

// ─── Cuotas ──────────────────────────────────────────────────────────────────

// CuotaFilter is bound from the query string of GET /v1/cuotas.
type CuotaFilter struct {
	ViviendaID string `form:"vivienda_id" validate:"omitempty,uuid"`
	ConceptoID string `form:"concepto_id" validate:"omitempty,uuid"`
	Pagada     string `form:"pagada"      validate:"omitempty,oneof=true false"`
	Vencidas   bool   `form:"vencidas"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearCuotaRequest struct {
	ConceptoID       string          `json:"concepto_id"       validate:"required,uuid"`
	ViviendaID       string          `json:"vivienda_id"       validate:"required,uuid"`
	Monto            decimal.Decimal `json:"monto"`
	FechaEmision     string          `json:"fecha_emision"     validate:"required,datetime=2006-01-02"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	Notas            string          `json:"notas"`
}

// ActualizarCuotaRequest edits an unpaid cuota. Only the fields present in
// the body change; monto and recargo on paid cuotas are immutable.
type ActualizarCuotaRequest struct {
	Monto            *decimal.Decimal `json:"monto"`
	FechaVencimiento *string          `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	Notas            *string          `json:"notas"`
}

// GenerarCuotasRequest creates one cuota per active vivienda for the period.
// Units that already have a cuota for (concepto, fecha_emision) are skipped.
// vivienda_ids narrows the run to specific units; monto overrides the
// concepto's base amount.
type GenerarCuotasRequest struct {
	ConceptoID       string           `json:"concepto_id"       validate:"required,uuid"`
	FechaEmision     string           `json:"fecha_emision"     validate:"required,datetime=2006-01-02"`
	FechaVencimiento string           `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	ViviendaIDs      []string         `json:"vivienda_ids"      validate:"omitempty,dive,uuid"`
	Monto            *decimal.Decimal `json:"monto"`
}

type GenerarCuotasResponse struct {
	Generadas int `json:"generadas"`
	Omitidas  int `json:"omitidas"`
}

type CuotaResponse struct {
	ID               string          `json:"id"`
	ConceptoID       string          `json:"concepto_id"`
	Concepto         string          `json:"concepto,omitempty"`
	ViviendaID       string          `json:"vivienda_id"`
	Vivienda         string          `json:"vivienda,omitempty"`
	Monto            decimal.Decimal `json:"monto"`
	Recargo          decimal.Decimal `json:"recargo"`
	TotalAPagar      decimal.Decimal `json:"total_a_pagar"`
	FechaEmision     string          `json:"fecha_emision"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Pagada           bool            `json:"pagada"`
	Vencida          bool            `json:"vencida"`
	Notas            string          `json:"notas,omitempty"`
}

type CuotaListResponse struct {
	Data  []CuotaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
