package metrics

import (
	"context"
	"time"
)

// RecordPollerDuration wraps a poll function so every run lands in the
// poller duration histogram, labelled by poller name and outcome.
func RecordPollerDuration(pollerName string, poll func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := poll(ctx)

		status := Success
		if err != nil {
			status = Error
		}
		pollerDurationHistogram.WithLabelValues(pollerName, status.String()).Observe(time.Since(startTime).Seconds())

		return err
	}
}
