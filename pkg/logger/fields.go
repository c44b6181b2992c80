package logger

import (
	"accounts/pkg/domain"
	"accounts/pkg/valueobject"
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UserID returns a field holding the user's identifier.
func UserID(id domain.UserID) zapcore.Field {
	return zap.String("user_id", id.String())
}

// Email returns a field holding an excerpt of the given address. Addresses are
// never logged in full.
func Email(e domain.EmailLike) zapcore.Field {
	if e == nil {
		return zap.Skip()
	}

	return zap.String("email", valueobject.Excerpt(e.String()))
}

// ValidationError returns the family and kind of a value object failure as
// fields, or a plain error field for any other error. The message of a
// redacting family is already free of the offending value.
func ValidationError(err error) zapcore.Field {
	var voErr *valueobject.Error
	if !errors.As(err, &voErr) {
		return zap.Error(err)
	}

	return zap.Dict("validation",
		zap.String("family", voErr.Family.Code()),
		zap.String("kind", voErr.Kind().Error()),
		zap.String("message", voErr.Error()),
	)
}
