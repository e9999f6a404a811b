package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"torresegura/internal/config"
	"torresegura/internal/middleware"
	"torresegura/internal/model"
	"torresegura/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-pruebas"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:         "test",
		JWTSecret:   testSecret,
		QRSecretKey: "qr-secreto",
	}
	return router.New(cfg, nil, nil)
}

// tokenConRol mints a signed access token for the given rol.
func tokenConRol(t *testing.T, rol string) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: "usuario-prueba",
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRutas_GeneracionMasivaSoloAdmin(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodPost, "/v1/cuotas/generar", tokenConRol(t, model.RolGerente), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permisos insuficientes para el rol gerente")

	// El administrador pasa el control de rol y llega al binding del body
	w = doRequest(r, http.MethodPost, "/v1/cuotas/generar", tokenConRol(t, model.RolAdministrador), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRutas_VerificacionDePagosSoloAdmin(t *testing.T) {
	r := newTestRouter()
	pagoID := uuid.NewString()

	rutas := []string{
		"/v1/pagos/" + pagoID + "/verificar",
		"/v1/pagos/" + pagoID + "/rechazar",
		"/v1/pagos/" + pagoID + "/asignaciones",
	}
	for _, rol := range []string{model.RolGerente, model.RolSeguridad, model.RolResidente} {
		token := tokenConRol(t, rol)
		for _, ruta := range rutas {
			w := doRequest(r, http.MethodPost, ruta, token, "")
			assert.Equalf(t, http.StatusForbidden, w.Code, "rol %s en %s", rol, ruta)
		}
	}
}

func TestRutas_ResidenteRegistraPago(t *testing.T) {
	r := newTestRouter()

	// El residente pasa el control de rol; el body vacío se rechaza después
	w := doRequest(r, http.MethodPost, "/v1/pagos", tokenConRol(t, model.RolResidente), "")
	assert.NotEqual(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// El guardia de seguridad no registra pagos
	w = doRequest(r, http.MethodPost, "/v1/pagos", tokenConRol(t, model.RolSeguridad), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRutas_ProtegidasSinToken(t *testing.T) {
	r := newTestRouter()
	id := uuid.NewString()

	// Rutas registradas detrás del JWT responden 401, nunca 404
	rutas := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/viviendas/" + id + "/residentes"},
		{http.MethodPut, "/v1/cuotas/" + id},
		{http.MethodPost, "/v1/alertas"},
		{http.MethodGet, "/v1/alertas/mias"},
		{http.MethodPost, "/v1/alertas/" + id + "/estado"},
	}
	for _, ruta := range rutas {
		w := doRequest(r, ruta.method, ruta.path, "", "")
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", ruta.method, ruta.path)
	}
}

func TestRutas_AlertaEstadoSoloGestion(t *testing.T) {
	r := newTestRouter()
	id := uuid.NewString()

	w := doRequest(r, http.MethodPost, "/v1/alertas/"+id+"/estado", tokenConRol(t, model.RolResidente), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/v1/alertas/"+id+"/estado", tokenConRol(t, model.RolSeguridad), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
