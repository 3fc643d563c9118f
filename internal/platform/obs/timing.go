package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of an operation. Use as
//
//	defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			WithContext(ctx).Debug("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		WithContext(ctx).Debug("op done", fields...)
	}
}
