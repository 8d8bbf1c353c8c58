package common

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
)

// ComponentLogger returns the context logger tagged with a component name
func ComponentLogger(ctx context.Context, component string) zerolog.Logger {
	return zerolog.Ctx(ctx).With().Str("component", component).Logger()
}

// kinded is implemented by the domain error families that carry a machine readable kind
type kinded interface {
	error
	KindName() string
}

// LoggingMiddleware injects logger into the request context and logs each request outcome.
// Rejections by the domain are expected and logged at debug; other failures at warn.
func LoggingMiddleware(logger zerolog.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := mediator.RequestName(request)
		reqLogger := logger.With().Str("request", name).Logger()
		ctx = reqLogger.WithContext(ctx)

		start := time.Now()
		resp, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			var k kinded
			if errors.As(err, &k) {
				reqLogger.Debug().Str("kind", k.KindName()).Err(err).Dur("elapsed", elapsed).Msg("request rejected")
			} else {
				reqLogger.Warn().Err(err).Dur("elapsed", elapsed).Msg("request failed")
			}
			return resp, err
		}

		reqLogger.Trace().Dur("elapsed", elapsed).Msg("request handled")
		return resp, nil
	}
}
