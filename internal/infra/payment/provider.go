// Package payment contains the payment gateway adapters.
package payment

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// NewPaymentGateway selects the gateway named by payment.provider
func NewPaymentGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	paymentCfg := cfg.Payment
	if paymentCfg == nil {
		paymentCfg = &config.PaymentConfig{Provider: constants.PaymentProviderFake}
	}

	var (
		gateway service.PaymentGateway
		err     error
	)

	switch paymentCfg.Provider {
	case constants.PaymentProviderRazorpay:
		gateway, err = NewRazorpayGateway(paymentCfg)
	case constants.PaymentProviderStripe:
		gateway, err = NewStripeGateway(paymentCfg)
	case constants.PaymentProviderFake, "":
		if cfg.Env.Env == constants.EnvProduction {
			return nil, errors.New("the fake payment gateway cannot be used in production")
		}
		gateway = NewFakeGateway(paymentCfg)
	default:
		return nil, errors.Errorf("unknown payment provider: %s", paymentCfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Payment gateway initialized", slog.String("provider", gateway.Provider()))

	return gateway, nil
}
