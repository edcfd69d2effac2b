package impl

import (
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
)

// dataError keeps application errors intact and reports anything else as a
// failed data action, e.g. "failed to add item to cart".
func dataError(err error, action string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.NewDatabaseExecuteError(err, action)
}
