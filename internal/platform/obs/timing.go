package obs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "upstream_op_duration_seconds",
	Help:    "Duration of timed operations (upstream calls, cache lookups)",
	Buckets: prometheus.DefBuckets,
}, []string{"op", "outcome"})

// Time starts a timer for the named operation. The returned func logs the
// duration together with the error pointed to by errp, if any.
//
//	defer obs.Time(ctx, "osrm.Route")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := Logger(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		fields := []zap.Field{
			zap.String("op", name),
			zap.Int64("dur_ms", dur.Milliseconds()),
		}

		if errp != nil && *errp != nil {
			opDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			logger.Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		opDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		logger.Debug("op done", fields...)
	}
}
