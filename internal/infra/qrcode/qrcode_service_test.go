package qrcode

import (
	"encoding/json"
	"strings"
	"testing"

	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "h"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, svc)
		})
	}
}

func TestQRCodeService_GeneratePickupQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	pngBytes, err := svc.GeneratePickupQR(service.PickupCode{OrderID: uuid.New(), OrderNumber: "ORD-20260301-ABCDEFGH"})
	require.NoError(t, err)
	require.Greater(t, len(pngBytes), 4)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, pngBytes[:4])
}

func TestQRCodeService_GeneratePickupQR_RequiresOrder(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.GeneratePickupQR(service.PickupCode{OrderNumber: "ORD-1"})
	assert.Error(t, err)

	_, err = svc.GeneratePickupQR(service.PickupCode{OrderID: uuid.New()})
	assert.Error(t, err)
}

func TestQRCodeService_ParsePickupQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	orderID := uuid.New()

	payload, err := json.Marshal(PickupPayload{OrderID: orderID.String(), OrderNumber: "ORD-20260301-ABCDEFGH", Type: "pickup"})
	require.NoError(t, err)

	code, err := svc.ParsePickupQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, orderID, code.OrderID)
	assert.Equal(t, "ORD-20260301-ABCDEFGH", code.OrderNumber)
}

func TestQRCodeService_ParsePickupQR_Invalid(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	orderID := uuid.NewString()

	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"not json", "ORD-123"},
		{"wrong type", `{"order_id":"` + orderID + `","order_number":"ORD-1","type":"subscription"}`},
		{"bad uuid", `{"order_id":"123","order_number":"ORD-1","type":"pickup"}`},
		{"missing number", `{"order_id":"` + orderID + `","type":"pickup"}`},
		{"oversized", strings.Repeat("x", maxPayloadSize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParsePickupQR(tt.payload)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidQRCode)
		})
	}
}
