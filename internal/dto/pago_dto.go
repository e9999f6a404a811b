package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PagoFilter is bound from the query string of GET /v1/pagos.
type PagoFilter struct {
	ViviendaID string `form:"vivienda_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=pendiente verificado rechazado"`
	Desde      string `form:"desde"       validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta"       validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarPagoRequest struct {
	ViviendaID string          `json:"vivienda_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
	FechaPago  string          `json:"fecha_pago"  validate:"required,datetime=2006-01-02"`
	Metodo     string          `json:"metodo"      validate:"required,oneof=efectivo transferencia cheque tarjeta otro"`
	// Referencia is required when metodo is transferencia or cheque
	Referencia string `json:"referencia"  validate:"omitempty,max=100"`
	Notas      string `json:"notas"`
}

type RechazarPagoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// AsignarCuotaRequest applies part of a payment to one cuota.
type AsignarCuotaRequest struct {
	CuotaID       string          `json:"cuota_id"       validate:"required,uuid"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AsignacionPagoResponse struct {
	ID            string          `json:"id"`
	CuotaID       string          `json:"cuota_id"`
	Concepto      string          `json:"concepto,omitempty"`
	MontoAplicado decimal.Decimal `json:"monto_aplicado"`
}

type PagoResponse struct {
	ID                string                   `json:"id"`
	ViviendaID        string                   `json:"vivienda_id"`
	Monto             decimal.Decimal          `json:"monto"`
	FechaPago         string                   `json:"fecha_pago"`
	Metodo            string                   `json:"metodo"`
	Referencia        string                   `json:"referencia,omitempty"`
	Estado            string                   `json:"estado"`
	Notas             string                   `json:"notas,omitempty"`
	FechaVerificacion *string                  `json:"fecha_verificacion,omitempty"`
	Asignaciones      []AsignacionPagoResponse `json:"asignaciones"`
	CreatedAt         string                   `json:"created_at"`
}

type PagoListResponse struct {
	Data  []PagoResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
