package service

import (
	"github.com/google/uuid"
)

// PickupCode is the content of an order pickup QR code.
type PickupCode struct {
	OrderID     uuid.UUID
	OrderNumber string
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePickupQR renders the pickup code as a PNG
	GeneratePickupQR(code PickupCode) ([]byte, error)

	// ParsePickupQR parses the scanned QR payload
	ParsePickupQR(qrData string) (PickupCode, error)
}
