package siripush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Subscription mirrors the notifier's subscription resource, extended with
// the locally assigned push id the webhook address is derived from.
type Subscription struct {
	ID                       string   `json:"id,omitempty"`
	Name                     string   `json:"name"`
	PushAddress              string   `json:"pushAddress,omitempty"`
	FromStopPoints           []string `json:"fromStopPoints,omitempty"`
	ToStopPoints             []string `json:"toStopPoints,omitempty"`
	LineRefs                 []string `json:"lineRefs,omitempty"`
	Codespaces               []string `json:"codespaces,omitempty"`
	UseSiriSubscriptionModel bool     `json:"useSiriSubscriptionModel,omitempty"`
	HeartbeatInterval        string   `json:"heartbeatInterval,omitempty"`
	InitialTerminationTime   string   `json:"initialTerminationTime,omitempty"`

	PushID string `json:"-"`
}

// SubscriptionRegistry manages subscriptions against the upstream notifier's
// REST API and resolves push ids back to subscriptions for the webhook
// receiver. With no upstream URL configured it runs local-only, assigning ids
// itself.
type SubscriptionRegistry struct {
	mu       sync.RWMutex
	byPushID map[string]*Subscription

	subscriptionURL string
	pushBaseURL     string
	client          *http.Client
	log             zerolog.Logger
}

func NewSubscriptionRegistry(cfg UpstreamConfig, log zerolog.Logger) *SubscriptionRegistry {
	return &SubscriptionRegistry{
		byPushID:        map[string]*Subscription{},
		subscriptionURL: cfg.SubscriptionURL,
		pushBaseURL:     strings.TrimSuffix(cfg.PushBaseURL, "/"),
		client:          &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		log:             log,
	}
}

// Add registers a subscription. A fresh push id keeps webhook addresses from
// being reused across restarts. When an upstream URL is configured the
// subscription is created there first and the normalized resource it returns
// is stored.
func (r *SubscriptionRegistry) Add(ctx context.Context, sub Subscription) (*Subscription, error) {
	pushID := uuid.NewString()
	sub.PushID = pushID
	if r.pushBaseURL != "" {
		sub.PushAddress = r.pushBaseURL + "/push/" + pushID
	}

	if r.subscriptionURL == "" {
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
	} else {
		created, err := r.createUpstream(ctx, sub)
		if err != nil {
			return nil, err
		}
		created.PushID = pushID
		created.PushAddress = sub.PushAddress
		sub = *created
	}

	r.mu.Lock()
	r.byPushID[pushID] = &sub
	r.mu.Unlock()
	r.log.Info().Str("subscriptionId", sub.ID).Str("pushId", pushID).Msg("added subscription")
	out := sub
	return &out, nil
}

// createUpstream POSTs the subscription to the notifier, retrying transient
// failures with exponential backoff.
func (r *SubscriptionRegistry) createUpstream(ctx context.Context, sub Subscription) (*Subscription, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal subscription: %w", err)
	}
	var created Subscription
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.subscriptionURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("upstream subscription API returned %s", resp.Status)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("upstream subscription API returned %s", resp.Status))
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return backoff.Permanent(fmt.Errorf("decode upstream subscription: %w", err))
		}
		return nil
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("create subscription upstream: %w", err)
	}
	return &created, nil
}

// List returns all subscriptions ordered by name.
func (r *SubscriptionRegistry) List() []Subscription {
	r.mu.RLock()
	out := make([]Subscription, 0, len(r.byPushID))
	for _, sub := range r.byPushID {
		out = append(out, *sub)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a copy of the subscription with the given id, or nil.
func (r *SubscriptionRegistry) Get(id string) *Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.byPushID {
		if sub.ID == id {
			out := *sub
			return &out
		}
	}
	return nil
}

// GetByPushID resolves the opaque webhook token to its subscription, or nil.
func (r *SubscriptionRegistry) GetByPushID(pushID string) *Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sub, ok := r.byPushID[pushID]; ok {
		out := *sub
		return &out
	}
	return nil
}

// Remove deletes a subscription locally and, best effort, upstream.
func (r *SubscriptionRegistry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	var removed *Subscription
	for pushID, sub := range r.byPushID {
		if sub.ID == id {
			removed = sub
			delete(r.byPushID, pushID)
			break
		}
	}
	r.mu.Unlock()
	if removed == nil || r.subscriptionURL == "" {
		return
	}
	url := r.subscriptionURL + "/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		r.log.Warn().Err(err).Str("subscriptionId", id).Msg("could not build upstream delete request")
		return
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn().Err(err).Str("subscriptionId", id).Msg("could not remove subscription upstream")
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// View projects the renderer's read-only slice of a subscription. Returns
// nil for unknown ids.
func (r *SubscriptionRegistry) View(subscriptionID string) *SubscriptionView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.byPushID {
		if sub.ID == subscriptionID {
			return &SubscriptionView{
				FromStopPoints: append([]string(nil), sub.FromStopPoints...),
				ToStopPoints:   append([]string(nil), sub.ToStopPoints...),
			}
		}
	}
	return nil
}
