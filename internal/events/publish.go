package events

import (
	"log/slog"
	"time"
)

// PublishWithRetry sends event with up to maxRetries attempts and
// exponential backoff (50ms, 100ms, 200ms, ...). A nil client is a no-op
// so callers without a daemon do not need to special-case it.
func PublishWithRetry(client EventPublisher, event Event, maxRetries int) error {
	if client == nil {
		return nil
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := client.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"job_id", event.JobID)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"job_id", event.JobID,
		"candidate_id", event.CandidateID,
		"error", lastErr)

	return lastErr
}
