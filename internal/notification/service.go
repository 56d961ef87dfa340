package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "edufeed-backend/internal/auth/repository"
	"edufeed-backend/pkg/fcm"
)

// Service is the dispatch entry point for content-creation events: it
// selects recipients, fans the push out and reconciles rejected tokens.
// Failures are terminal and local, they are logged and counted but never
// propagate to the caller that created the content.
type Service struct {
	userRepo   authrepo.UserRepository
	dispatcher *Dispatcher
}

// NewService wires the fan-out pipeline. gateway may be nil when push is not
// configured; every batch is then recorded as failed without purges.
func NewService(userRepo authrepo.UserRepository, gateway Gateway, workers int, ratePerSecond float64, sendTimeout time.Duration) *Service {
	s := &Service{userRepo: userRepo}
	if gateway != nil {
		s.dispatcher = NewDispatcher(gateway, workers, ratePerSecond, sendTimeout)
	}
	return s
}

// NotifyContentCreated runs one fan-out pass for a committed content event.
// Callers must invoke it only after the creating transaction has committed.
func (s *Service) NotifyContentCreated(ctx context.Context, ev ContentEvent) BatchResult {
	tokens, err := s.userRepo.RecipientTokens(ctx, ev.AuthorID)
	if err != nil {
		log.Printf("[Notify] Failed to select recipients for %s %s: %v", ev.Kind, ev.ContentID, err)
		metricBatches.WithLabelValues(batchResultError).Inc()
		return BatchResult{}
	}

	if len(tokens) == 0 {
		log.Printf("[Notify] No recipients for %s %s, skipping dispatch", ev.Kind, ev.ContentID)
		metricBatches.WithLabelValues(batchResultNoRecipients).Inc()
		return BatchResult{}
	}

	if s.dispatcher == nil {
		log.Printf("[Notify] Push gateway not configured, %d recipients not notified", len(tokens))
		metricBatches.WithLabelValues(batchResultGatewayDown).Inc()
		metricFailed.Add(float64(len(tokens)))
		return BatchResult{Total: len(tokens), Failed: len(tokens), GatewayDown: true}
	}

	result := s.dispatcher.Dispatch(ctx, tokens, buildNotification(ev))

	metricDelivered.Add(float64(result.Delivered))
	metricFailed.Add(float64(result.Failed))
	if result.GatewayDown {
		metricBatches.WithLabelValues(batchResultGatewayDown).Inc()
	} else {
		metricBatches.WithLabelValues(batchResultSent).Inc()
	}

	log.Printf("[Notify] %s %s: total=%d delivered=%d failed=%d invalid=%d",
		ev.Kind, ev.ContentID, result.Total, result.Delivered, result.Failed, len(result.InvalidTokens))

	if len(result.InvalidTokens) > 0 {
		purged, err := s.userRepo.PurgeDeviceTokens(ctx, result.InvalidTokens)
		if err != nil {
			log.Printf("[Notify] Failed to purge %d invalid tokens: %v", len(result.InvalidTokens), err)
		} else {
			metricPurged.Add(float64(purged))
			log.Printf("[Notify] Purged %d invalid device tokens", purged)
		}
	}

	return result
}

// buildNotification renders the channel-specific payload for an event. All
// data values end up as strings, the gateway rejects anything else.
func buildNotification(ev ContentEvent) fcm.Notification {
	title := "New Post! 📝"
	if ev.Kind == KindPoll {
		title = "New Poll Available! 📊"
	}

	data := map[string]interface{}{
		"postId":       ev.ContentID,
		"type":         string(ev.Kind),
		"authorId":     ev.AuthorID,
		"authorName":   ev.AuthorName,
		"click_action": "OPEN_POST",
	}
	for k, v := range ev.Extra {
		data[k] = v
	}

	return fcm.Notification{
		Title:       title,
		Body:        fmt.Sprintf("%s just shared something new", ev.AuthorName),
		Data:        stringifyData(data),
		ClickAction: "OPEN_POST",
	}
}
