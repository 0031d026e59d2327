package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectTraceID attaches a fresh trace id to the context logger, so every
// log line emitted for the request or command run can be correlated.
func InjectTraceID(ctx context.Context) context.Context {
	logger := log.With().Str("traceId", uuid.NewString()).Logger()
	return logger.WithContext(ctx)
}
