package dto

type CrearAlertaRequest struct {
	Tipo        string `json:"tipo"        validate:"required,oneof=incendio sismo seguridad salud aviso reunion"`
	Descripcion string `json:"descripcion" validate:"required,min=5,max=500"`
}

type CambiarEstadoAlertaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_proceso resuelto"`
}

// AlertaFilter is bound from the query string of GET /v1/alertas.
type AlertaFilter struct {
	Estado     string `form:"estado"     validate:"omitempty,oneof=pendiente en_proceso resuelto"`
	EnviadoPor string `form:"enviado_por" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AlertaResponse struct {
	ID            string `json:"id"`
	Tipo          string `json:"tipo"`
	Descripcion   string `json:"descripcion"`
	Estado        string `json:"estado"`
	EnviadoPorID  string `json:"enviado_por_id"`
	EnviadoPor    string `json:"enviado_por,omitempty"`
	AtendidoPorID string `json:"atendido_por_id,omitempty"`
	AtendidoPor   string `json:"atendido_por,omitempty"`
	FechaAtencion string `json:"fecha_atencion,omitempty"`
	CreadaEn      string `json:"creada_en"`
}

type AlertaListResponse struct {
	Data  []AlertaResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
