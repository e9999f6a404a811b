package infra

// qr.go — visitor pass signing and QR rendering.
// The pass payload embeds the visita id and an HMAC-SHA256 signature over the
// string "visita:{id}". Verification recomputes the signature and compares in
// constant time; any mutation of id or signature invalidates the pass.

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRFirmador signs and verifies visitor pass payloads.
type QRFirmador struct {
	secret []byte
}

func NewQRFirmador(secret string) *QRFirmador {
	return &QRFirmador{secret: []byte(secret)}
}

// Firmar returns the hex HMAC-SHA256 signature for a visita id.
func (f *QRFirmador) Firmar(visitaID string) string {
	mac := hmac.New(sha256.New, f.secret)
	fmt.Fprintf(mac, "visita:%s", visitaID)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verificar reports whether firma matches the expected signature for the id.
// Comparison is constant-time.
func (f *QRFirmador) Verificar(visitaID, firma string) bool {
	esperada := f.Firmar(visitaID)
	return hmac.Equal([]byte(esperada), []byte(firma))
}

// qrPayload is the JSON embedded in the QR image.
type qrPayload struct {
	ID    string `json:"id"`
	Firma string `json:"firma"`
}

// GenerarPNG renders the signed pass as a QR PNG of the given size in pixels.
func (f *QRFirmador) GenerarPNG(visitaID string, size int) ([]byte, error) {
	payload, err := json.Marshal(qrPayload{ID: visitaID, Firma: f.Firmar(visitaID)})
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}
