package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

// VisitaHistorialFilter is bound from the query string of GET /v1/visitas.
// Results are capped at 100 rows.
type VisitaHistorialFilter struct {
	ViviendaID string `form:"vivienda_id" validate:"omitempty,uuid"`
	Activas    bool   `form:"activas"`
	Desde      string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=100"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarVisitaRequest struct {
	NombreVisitante    string `json:"nombre_visitante"    validate:"required,min=2,max=100"`
	DocumentoVisitante string `json:"documento_visitante" validate:"required,min=3,max=20"`
	ViviendaDestinoID  string `json:"vivienda_destino_id" validate:"required,uuid"`
	ResidenteAutorizaID string `json:"residente_autoriza_id" validate:"required,uuid"`
	Motivo             string `json:"motivo"`
}

// VerificarQRRequest carries the decoded QR payload scanned at the gate.
type VerificarQRRequest struct {
	VisitaID string `json:"visita_id" validate:"required,uuid"`
	Firma    string `json:"firma"     validate:"required,len=64,hexadecimal"`
}

type RegistrarMovimientoRequest struct {
	ResidenteID   string `json:"residente_id" validate:"required,uuid"`
	Tipo          string `json:"tipo"         validate:"required,oneof=entrada salida"`
	Vehiculo      bool   `json:"vehiculo"`
	PlacaVehiculo string `json:"placa_vehiculo" validate:"omitempty,max=10"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VisitaResponse struct {
	ID                 string  `json:"id"`
	NombreVisitante    string  `json:"nombre_visitante"`
	DocumentoVisitante string  `json:"documento_visitante"`
	ViviendaDestinoID  string  `json:"vivienda_destino_id"`
	Vivienda           string  `json:"vivienda,omitempty"`
	FechaHoraEntrada   string  `json:"fecha_hora_entrada"`
	FechaHoraSalida    *string `json:"fecha_hora_salida,omitempty"`
	Motivo             string  `json:"motivo,omitempty"`
	// Firma is returned only on registration, alongside the QR image
	Firma string `json:"firma,omitempty"`
}

type VerificarQRResponse struct {
	Valido bool            `json:"valido"`
	Visita *VisitaResponse `json:"visita,omitempty"`
}

type MovimientoResponse struct {
	ID               string  `json:"id"`
	ResidenteID      string  `json:"residente_id"`
	Residente        string  `json:"residente,omitempty"`
	FechaHoraEntrada *string `json:"fecha_hora_entrada,omitempty"`
	FechaHoraSalida  *string `json:"fecha_hora_salida,omitempty"`
	Vehiculo         bool    `json:"vehiculo"`
	PlacaVehiculo    string  `json:"placa_vehiculo,omitempty"`
}
