package infra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRFirmador_FirmaDeterminista(t *testing.T) {
	f := NewQRFirmador("clave-de-prueba")

	firma := f.Firmar("4be0643f-1d98-573b-97cd-ca98a65347dd")
	assert.Len(t, firma, 64)
	assert.Equal(t, firma, f.Firmar("4be0643f-1d98-573b-97cd-ca98a65347dd"))
	assert.True(t, f.Verificar("4be0643f-1d98-573b-97cd-ca98a65347dd", firma))
}

func TestQRFirmador_RechazaOtraClave(t *testing.T) {
	f1 := NewQRFirmador("clave-uno")
	f2 := NewQRFirmador("clave-dos")

	id := "4be0643f-1d98-573b-97cd-ca98a65347dd"
	assert.False(t, f2.Verificar(id, f1.Firmar(id)))
}

func TestQRFirmador_RechazaIDAlterado(t *testing.T) {
	f := NewQRFirmador("clave-de-prueba")

	firma := f.Firmar("4be0643f-1d98-573b-97cd-ca98a65347dd")
	assert.False(t, f.Verificar("4be0643f-1d98-573b-97cd-ca98a65347de", firma))
}

func TestQRFirmador_PNGIncluyeFirma(t *testing.T) {
	f := NewQRFirmador("clave-de-prueba")

	id := "4be0643f-1d98-573b-97cd-ca98a65347dd"
	png, err := f.GenerarPNG(id, 256)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	// The payload embedded in the image is the same JSON we would scan back
	payload, err := json.Marshal(qrPayload{ID: id, Firma: f.Firmar(id)})
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}
