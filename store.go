package siripush

import (
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/siri-push-monitor/siri"
)

// DefaultMaxPerSubscription bounds how many messages are kept per
// subscription before the oldest is dropped.
const DefaultMaxPerSubscription = 100

// ReceivedMessage is one accepted push. ReceivedAt is set once at creation
// and never mutated.
type ReceivedMessage struct {
	RawText       string           `json:"rawText"`
	Type          siri.MessageKind `json:"type"`
	ReceivedAt    time.Time        `json:"receivedAt"`
	HumanReadable string           `json:"humanReadable,omitempty"`
	DeliveryDelay *time.Duration   `json:"-"`
}

// DelayText renders the delivery delay for display, or "" when the push
// envelope carried no timestamp.
func (m ReceivedMessage) DelayText() string {
	if m.DeliveryDelay == nil {
		return ""
	}
	return FormatDeliveryDelay(*m.DeliveryDelay)
}

// bucket is a fixed-capacity ring of messages in insertion order. start
// indexes the oldest entry once the ring has wrapped.
type bucket struct {
	entries      []ReceivedMessage
	start        int
	lastReceived time.Time
}

// MessageStore keeps a bounded, insertion-ordered message history per
// subscription. Buckets are created lazily on first append and owned
// exclusively by the store; readers get point-in-time copies. A single lock
// serializes access, which is plenty for upstream transit-update volumes.
type MessageStore struct {
	mu       sync.RWMutex
	capacity int
	buckets  map[string]*bucket
}

// NewMessageStore creates a store holding at most capacity messages per
// subscription; capacity <= 0 selects DefaultMaxPerSubscription.
func NewMessageStore(capacity int) *MessageStore {
	if capacity <= 0 {
		capacity = DefaultMaxPerSubscription
	}
	return &MessageStore{
		capacity: capacity,
		buckets:  map[string]*bucket{},
	}
}

// Append records a message for a subscription, evicting the oldest entry
// first when the bucket is full. Eviction and append are atomic to readers.
func (s *MessageStore) Append(subscriptionID string, msg ReceivedMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[subscriptionID]
	if !ok {
		b = &bucket{entries: make([]ReceivedMessage, 0, s.capacity)}
		s.buckets[subscriptionID] = b
	}
	if len(b.entries) < s.capacity {
		b.entries = append(b.entries, msg)
	} else {
		b.entries[b.start] = msg
		b.start = (b.start + 1) % s.capacity
		messagesEvicted.Inc()
	}
	b.lastReceived = msg.ReceivedAt
}

// Messages returns a copy of a subscription's history, most recently received
// first. Unknown subscription ids yield an empty slice, never an error.
func (s *MessageStore) Messages(subscriptionID string) []ReceivedMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[subscriptionID]
	if !ok {
		return []ReceivedMessage{}
	}
	n := len(b.entries)
	out := make([]ReceivedMessage, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, b.entries[(b.start+i)%n])
	}
	return out
}

// Count reports how many messages are held for a subscription.
func (s *MessageStore) Count(subscriptionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.buckets[subscriptionID]; ok {
		return len(b.entries)
	}
	return 0
}

// LastReceived reports when the newest message for a subscription arrived.
func (s *MessageStore) LastReceived(subscriptionID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.buckets[subscriptionID]; ok {
		return b.lastReceived, true
	}
	return time.Time{}, false
}

// Remove drops a subscription's bucket and last-received marker entirely.
func (s *MessageStore) Remove(subscriptionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, subscriptionID)
}

// Clear drops all buckets; used by the administrative reset.
func (s *MessageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = map[string]*bucket{}
}
