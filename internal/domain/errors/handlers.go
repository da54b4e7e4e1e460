package errors

import "studio/internal/errors"

// AsAppError extracts the AppError from err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
