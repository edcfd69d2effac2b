package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// Sign computes the checkout signature hex(HMAC-SHA256(secret, orderID|paymentID)).
func Sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature with the expected one in constant time.
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	if secret == "" || gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}

	expected := Sign(secret, gatewayOrderID, paymentID)

	return hmac.Equal([]byte(expected), []byte(signature))
}

// requireSigned rejects confirmations missing any field of the signed triple.
func requireSigned(confirmation *service.PaymentConfirmation) error {
	if confirmation.GatewayOrderID == "" || confirmation.PaymentID == "" || confirmation.Signature == "" {
		return errors.Wrap(service.ErrIncompleteConfirmation, "order id, payment id and signature are required")
	}

	return nil
}
