package service

import "github.com/google/uuid"

// QRCodeService renders the receipt QR printed on order confirmations and
// reads it back when staff scan a parcel.
type QRCodeService interface {
	GenerateReceiptQR(orderID uuid.UUID) ([]byte, error)
	ParseReceiptQR(qrData string) (uuid.UUID, error)
}
