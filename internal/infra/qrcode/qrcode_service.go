// Package qrcode renders and parses order pickup codes.
package qrcode

import (
	"encoding/json"
	"strings"

	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	pickupType     = "pickup"
	defaultQRSize  = 256
	maxPayloadSize = 512
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// PickupPayload is the JSON encoded in a pickup QR code.
type PickupPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Type        string `json:"type"`
}

// NewQRCodeService creates a QR code service. Unknown levels fall back to M.
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultQRSize
	}

	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePickupQR renders the pickup payload as a PNG.
func (s *qrcodeService) GeneratePickupQR(code service.PickupCode) ([]byte, error) {
	if code.OrderID == uuid.Nil || code.OrderNumber == "" {
		return nil, errors.New("pickup code needs an order id and number")
	}

	jsonData, err := json.Marshal(PickupPayload{
		OrderID:     code.OrderID.String(),
		OrderNumber: code.OrderNumber,
		Type:        pickupType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParsePickupQR validates a scanned payload. Every failure is ErrInvalidQRCode.
func (s *qrcodeService) ParsePickupQR(qrData string) (service.PickupCode, error) {
	if len(qrData) == 0 || len(qrData) > maxPayloadSize {
		return service.PickupCode{}, domainerrors.ErrInvalidQRCode.WrapMessage("payload size out of range")
	}

	var data PickupPayload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return service.PickupCode{}, domainerrors.ErrInvalidQRCode.WrapMessage("payload is not JSON")
	}

	if data.Type != pickupType {
		return service.PickupCode{}, domainerrors.ErrInvalidQRCode.WrapMessage("unexpected code type " + data.Type)
	}

	orderID, err := uuid.Parse(data.OrderID)
	if err != nil {
		return service.PickupCode{}, domainerrors.ErrInvalidQRCode.WrapMessage("order id is not a UUID")
	}
	if data.OrderNumber == "" {
		return service.PickupCode{}, domainerrors.ErrInvalidQRCode.WrapMessage("order number missing")
	}

	return service.PickupCode{OrderID: orderID, OrderNumber: data.OrderNumber}, nil
}
