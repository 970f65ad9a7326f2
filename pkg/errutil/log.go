package errutil

import (
	"github.com/samber/oops"
	"go.uber.org/zap"
)

// LogError logs err at error level. For oops errors the code and context are
// added as separate fields.
func LogError(logger *zap.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{zap.String("error", oopsErr.Error())}
	if code := oopsErr.Code(); code != "" {
		fields = append(fields, zap.Any("code", code))
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		fields = append(fields, zap.Any("context", ctx))
	}

	logger.Error(msg, fields...)
}
