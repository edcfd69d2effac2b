package impl

import (
	"regexp"
	"strings"

	domainerrors "storefront/internal/domain/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

	// Checkout address form.
	shippingPhonePattern = regexp.MustCompile(`^\d{10}$`)
	pincodePattern       = regexp.MustCompile(`^\d{6}$`)
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidInput(message string) error {
	return domainerrors.ErrValidationFailed.WithMessage(message)
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalidInput("Please enter a valid email address")
	}

	return nil
}

// validatePhone accepts an empty phone number.
func validatePhone(phone string) error {
	if phone != "" && !phonePattern.MatchString(phone) {
		return invalidInput("Please enter a valid phone number")
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidInput("Name is required")
	}

	return nil
}
