package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
)

type kindedError interface {
	KindName() string
}

// PrometheusMiddleware records duration and outcome of every command and query.
// Requests are labelled by type name, e.g. "*commands.BuildCommand" becomes "BuildCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(mediator.RequestName(request), time.Since(start).Seconds(), outcome(err))
		return response, err
	}
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var kinded kindedError
	if errors.As(err, &kinded) {
		return "rejected"
	}
	return "error"
}
