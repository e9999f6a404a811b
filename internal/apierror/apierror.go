// Package apierror provides the standardized error envelope for the API.
// Every 4xx/5xx response goes through this package so that clients see a
// consistent shape and internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NoAutenticado is the 401 envelope for requests without a usable token.
func NoAutenticado() *APIError {
	return &APIError{Detail: "Autenticacion requerida"}
}

// TokenInvalido is the 401 envelope for tokens that fail signature or
// expiration checks.
func TokenInvalido() *APIError {
	return &APIError{Detail: "Token invalido o expirado"}
}

// PermisosInsuficientes is the 403 envelope. It names the rejected rol so
// support can tell a stale token from a misassigned user.
func PermisosInsuficientes(rol string) *APIError {
	detail := "Permisos insuficientes"
	if rol != "" {
		detail += " para el rol " + rol
	}
	return &APIError{Detail: detail}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
