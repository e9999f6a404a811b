package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearEstadoCuentaRequest struct {
	ViviendaID  string `json:"vivienda_id"  validate:"required,uuid"`
	FechaInicio string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

// GenerarEstadosCuentaRequest creates one statement per active vivienda for
// the period. Units that already have a statement for the exact period are
// skipped.
type GenerarEstadosCuentaRequest struct {
	FechaInicio string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin"    validate:"required,datetime=2006-01-02"`
}

type GenerarEstadosCuentaResponse struct {
	Generados int `json:"generados"`
	Omitidos  int `json:"omitidos"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoCuentaResponse struct {
	ID            string          `json:"id"`
	ViviendaID    string          `json:"vivienda_id"`
	Vivienda      string          `json:"vivienda,omitempty"`
	FechaInicio   string          `json:"fecha_inicio"`
	FechaFin      string          `json:"fecha_fin"`
	SaldoAnterior decimal.Decimal `json:"saldo_anterior"`
	TotalCuotas   decimal.Decimal `json:"total_cuotas"`
	TotalRecargos decimal.Decimal `json:"total_recargos"`
	TotalPagos    decimal.Decimal `json:"total_pagos"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
	Enviado       bool            `json:"enviado"`
	FechaEnvio    *string         `json:"fecha_envio,omitempty"`
}

// DeudaViviendaResponse is the mobile endpoint payload: outstanding cuotas
// for one unit. Cached in redis for a short TTL.
type DeudaViviendaResponse struct {
	ViviendaID    string          `json:"vivienda_id"`
	TotalPendiente decimal.Decimal `json:"total_pendiente"`
	TotalRecargos  decimal.Decimal `json:"total_recargos"`
	Cuotas         []CuotaResponse `json:"cuotas"`
}
