package siripush

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/siri-push-monitor/siri"
)

// SubscriptionResolver supplies the minimal subscription context the renderer
// needs. Implementations return nil for unknown ids; that is not an error,
// rendering then runs without from/to context.
type SubscriptionResolver interface {
	View(subscriptionID string) *SubscriptionView
}

// PushService runs the ingestion pipeline for each inbound push: classify,
// compute delivery delay, render, record. It also exposes the query
// operations the presentation layer uses.
type PushService struct {
	store    *MessageStore
	subs     SubscriptionResolver
	renderer *Renderer
	log      zerolog.Logger
	now      func() time.Time
}

func NewPushService(store *MessageStore, subs SubscriptionResolver, log zerolog.Logger) *PushService {
	return &PushService{
		store:    store,
		subs:     subs,
		renderer: NewRenderer(log),
		log:      log,
		now:      time.Now,
	}
}

// Ingest handles one pushed payload synchronously. A payload that cannot be
// classified or decoded is still recorded, with kind Unknown and no summary:
// losing a summary must never lose the raw record.
func (s *PushService) Ingest(subscriptionID, rawPayload string, responseTimestamp *time.Time) {
	receivedAt := s.now()
	msg := ReceivedMessage{
		RawText:    rawPayload,
		Type:       siri.KindUnknown,
		ReceivedAt: receivedAt,
	}
	if d := DeliveryDelay(responseTimestamp, receivedAt); d != nil {
		msg.DeliveryDelay = d
		deliveryDelaySeconds.Observe(d.Seconds())
	}

	switch kind := siri.Classify(rawPayload); {
	case rawPayload == "":
		s.log.Error().Str("subscriptionId", subscriptionID).Msg("empty push payload")
	case kind == siri.KindUnknown:
		s.log.Warn().Str("subscriptionId", subscriptionID).Str("payload", rawPayload).Msg("unknown push payload")
	default:
		payload, err := siri.Decode(rawPayload)
		if err != nil {
			s.log.Warn().Err(err).Str("subscriptionId", subscriptionID).Msg("could not decode push payload")
			break
		}
		msg.Type = payload.Kind()
		msg.HumanReadable = s.renderer.Render(payload, s.subs.View(subscriptionID))
	}

	messagesReceived.WithLabelValues(string(msg.Type)).Inc()
	s.store.Append(subscriptionID, msg)
}

// Messages returns a subscription's history, most recently received first.
func (s *PushService) Messages(subscriptionID string) []ReceivedMessage {
	return s.store.Messages(subscriptionID)
}

// MessageCount reports how many messages are held for a subscription.
func (s *PushService) MessageCount(subscriptionID string) int {
	return s.store.Count(subscriptionID)
}

// LastReceived reports when the newest message for a subscription arrived.
func (s *PushService) LastReceived(subscriptionID string) (time.Time, bool) {
	return s.store.LastReceived(subscriptionID)
}

// RemoveMessages drops a subscription's history.
func (s *PushService) RemoveMessages(subscriptionID string) {
	s.store.Remove(subscriptionID)
}

// ClearAll drops every subscription's history.
func (s *PushService) ClearAll() {
	s.store.Clear()
}
