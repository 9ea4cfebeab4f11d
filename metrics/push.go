package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// StartPushingMetrics pushes the metrics of the gatherer to the url every period until
// the context is canceled. A final push is made on cancellation so that the metrics of
// a short run are not lost. The returned channel is closed once pushing has stopped.
func StartPushingMetrics(
	ctx context.Context,
	logger *zap.Logger,
	gatherer prometheus.Gatherer,
	url, instance string,
	period time.Duration,
) <-chan struct{} {
	pusher := push.New(url, "bloomsync").Gatherer(gatherer).
		Grouping("instance", instance)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				if err := pusher.Push(); err != nil {
					logger.Warn("failed to push final metrics", zap.Error(err))
				}
				return
			case <-ticker.C:
				if err := pusher.PushContext(ctx); err != nil {
					logger.Warn("failed to push metrics", zap.Error(err))
				}
			}
		}
	}()
	return done
}
