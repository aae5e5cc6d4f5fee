package obs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID returns a context carrying a fresh run id.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDKey, uuid.NewString())
}

// RunID returns the run id stored on ctx, or "" when there is none.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned func is called.
// Pass the address of the operation's named error result to log failures.
// Failures are logged at Warn.
func Time(ctx context.Context, logger *zap.Logger, name string) func(errp *error) {
	return timed(ctx, logger, name, zapcore.WarnLevel)
}

// TimeDebug is Time for operations whose caller reports failures itself;
// everything is logged at Debug.
func TimeDebug(ctx context.Context, logger *zap.Logger, name string) func(errp *error) {
	return timed(ctx, logger, name, zapcore.DebugLevel)
}

func timed(ctx context.Context, logger *zap.Logger, name string, failLevel zapcore.Level) func(errp *error) {
	start := time.Now()

	runID := RunID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		fields := []zap.Field{
			zap.String("run_id", runID),
			zap.String("op", name),
			zap.Int64("dur_ms", dur.Milliseconds()),
		}
		if errp != nil && *errp != nil {
			logger.Log(failLevel, "operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		logger.Debug("operation done", fields...)
	}
}
