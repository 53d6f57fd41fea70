package siripush

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// pushEnvelope is the JSON body the notifier POSTs to a push address.
type pushEnvelope struct {
	MessageName string `json:"messagename"`
	Node        string `json:"node"`
	XMLPayload  string `json:"xmlPayload"`
}

// Push acknowledge values the notifier understands. FORGET_ME makes it stop
// pushing to an address we no longer recognize.
const (
	ackOK       = "OK"
	ackForgetMe = "FORGET_ME"
)

type pushAckResponse struct {
	Acknowledge string `json:"acknowledge"`
}

// handlePush receives one pushed update. The push id in the path is the only
// authentication there is: unknown ids are answered with FORGET_ME and are
// never recorded. Ingestion runs synchronously before the response.
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		pushRateLimited.Inc()
		writeError(w, http.StatusTooManyRequests, "push rate exceeded")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	rawPayload := string(body)
	if env := decodePushEnvelope(body); env != nil {
		rawPayload = env.XMLPayload
	}

	pushID := r.PathValue("pushId")
	sub := s.subs.GetByPushID(pushID)
	if sub == nil {
		s.log.Warn().Str("pushId", pushID).Str("acknowledge", ackForgetMe).Msg("push for unknown push id")
		writeJSON(w, http.StatusOK, pushAckResponse{Acknowledge: ackForgetMe})
		return
	}

	s.log.Debug().Str("pushId", pushID).Str("subscriptionId", sub.ID).Msg("received push message")
	s.service.Ingest(sub.ID, rawPayload, extractResponseTimestamp(rawPayload))
	writeJSON(w, http.StatusOK, pushAckResponse{Acknowledge: ackOK})
}

// decodePushEnvelope returns the envelope when the body is the notifier's
// JSON wrapping, nil when the body is a raw XML fragment.
func decodePushEnvelope(body []byte) *pushEnvelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var env pushEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil
	}
	return &env
}

// extractResponseTimestamp pulls the envelope's ResponseTimestamp out of the
// payload when present; delivery delay cannot be computed without it.
func extractResponseTimestamp(rawPayload string) *time.Time {
	const openTag, closeTag = "<ResponseTimestamp>", "</ResponseTimestamp>"
	start := strings.Index(rawPayload, openTag)
	if start < 0 {
		return nil
	}
	rest := rawPayload[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(rest[:end]))
	if err != nil {
		return nil
	}
	return &ts
}
