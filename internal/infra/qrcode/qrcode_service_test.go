package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		level string
		want  qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"m", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.level))
		})
	}
}

func TestQRCodeService_GenerateReceiptQR(t *testing.T) {
	for _, size := range []int{0, 128, 512} {
		svc := NewQRCodeService(size, "M")

		qrBytes, err := svc.GenerateReceiptQR(uuid.New())
		require.NoError(t, err)
		require.Greater(t, len(qrBytes), 4)

		// PNG magic number
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
	}
}

func TestQRCodeService_ParseReceiptQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	orderID := uuid.New()

	valid, err := json.Marshal(ReceiptData{Type: "receipt", OrderID: orderID.String()})
	require.NoError(t, err)

	tests := []struct {
		name    string
		qrData  string
		want    uuid.UUID
		wantErr string
	}{
		{name: "valid receipt", qrData: string(valid), want: orderID},
		{name: "wrong type", qrData: `{"type":"subscription","order_id":"` + orderID.String() + `"}`, wantErr: "invalid QR code type"},
		{name: "bad uuid", qrData: `{"type":"receipt","order_id":"nope"}`, wantErr: "failed to parse order ID"},
		{name: "not json", qrData: "hello", wantErr: "failed to unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ParseReceiptQR(tt.qrData)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, uuid.Nil, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
