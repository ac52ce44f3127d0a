package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for order pickup QR code generation and parsing
type QRCodeService interface {
	// GeneratePickupQR generates a PNG QR code identifying an order at pickup
	GeneratePickupQR(orderID int64, userID uuid.UUID) ([]byte, error)

	// ParsePickupQR parses QR code data and returns the order and user it identifies
	ParsePickupQR(qrData string) (orderID int64, userID uuid.UUID, err error)
}
