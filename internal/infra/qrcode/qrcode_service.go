package qrcode

import (
	"tastebud/config"
	"tastebud/internal/domain/service"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256

	pickupType = "order_pickup"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the payload encoded in a pickup QR code
type QRCodeData struct {
	OrderID int64  `json:"order_id"`
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultSize
	}

	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
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

// NewFromConfig builds the service from the qrcode config section
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// GeneratePickupQR generates a PNG QR code identifying an order at pickup
func (s *qrcodeService) GeneratePickupQR(orderID int64, userID uuid.UUID) ([]byte, error) {
	data := QRCodeData{
		OrderID: orderID,
		UserID:  userID.String(),
		Type:    pickupType,
	}

	jsonData, err := json.Marshal(data)
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

// ParsePickupQR parses QR code data and returns the order and user it identifies
func (s *qrcodeService) ParsePickupQR(qrData string) (int64, uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != pickupType {
		return 0, uuid.Nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.OrderID <= 0 {
		return 0, uuid.Nil, errors.Errorf("invalid order ID: %d", data.OrderID)
	}

	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return 0, uuid.Nil, errors.Wrap(err, "failed to parse user ID")
	}

	return data.OrderID, userID, nil
}
