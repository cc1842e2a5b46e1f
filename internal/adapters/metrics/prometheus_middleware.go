package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
)

// PrometheusMiddleware records the duration and outcome of every query sent
// through the mediator. A nil collector passes requests straight through.
func PrometheusMiddleware(collector *QueryMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordQueryExecution(common.RequestName(request), time.Since(start).Seconds(), err == nil)
		return response, err
	}
}
