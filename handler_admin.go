package siripush

import (
	"encoding/json"
	"net/http"
	"time"
)

// messageJSON is the display projection of a ReceivedMessage: timestamps as
// RFC3339 and the delivery delay in its fixed minutes:seconds,millis layout.
type messageJSON struct {
	Type          string `json:"type"`
	ReceivedAt    string `json:"receivedAt"`
	HumanReadable string `json:"humanReadable,omitempty"`
	DeliveryDelay string `json:"deliveryDelay,omitempty"`
	RawText       string `json:"rawText"`
}

type messagesResponse struct {
	SubscriptionID string        `json:"subscriptionId"`
	Count          int           `json:"count"`
	LastReceived   string        `json:"lastReceived,omitempty"`
	Messages       []messageJSON `json:"messages"`
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.subs.List())
}

func (s *Server) handleAddSubscription(w http.ResponseWriter, r *http.Request) {
	var sub Subscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid subscription body")
		return
	}
	created, err := s.subs.Add(r.Context(), sub)
	if err != nil {
		s.log.Error().Err(err).Msg("could not add subscription")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	sub := s.subs.Get(r.PathValue("id"))
	if sub == nil {
		writeError(w, http.StatusNotFound, "unknown subscription")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleRemoveSubscription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.subs.Remove(r.Context(), id)
	s.service.RemoveMessages(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	messages := s.service.Messages(id)
	resp := messagesResponse{
		SubscriptionID: id,
		Count:          len(messages),
		Messages:       make([]messageJSON, 0, len(messages)),
	}
	if last, ok := s.service.LastReceived(id); ok {
		resp.LastReceived = last.Format(time.RFC3339)
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, messageJSON{
			Type:          string(m.Type),
			ReceivedAt:    m.ReceivedAt.Format(time.RFC3339),
			HumanReadable: m.HumanReadable,
			DeliveryDelay: m.DelayText(),
			RawText:       m.RawText,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMessages(w http.ResponseWriter, r *http.Request) {
	s.service.RemoveMessages(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	s.service.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}
