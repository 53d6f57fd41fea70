package siri

import "strings"

// MessageKind tags the variant of a pushed payload.
type MessageKind string

const (
	KindET         MessageKind = "ET"
	KindSX         MessageKind = "SX"
	KindHeartbeat  MessageKind = "Heartbeat"
	KindTerminated MessageKind = "Terminated"
	KindUnknown    MessageKind = "Unknown"
)

// rootMarkers lists the recognized root-element markers in classification
// order. The order is part of the contract: a payload matching several markers
// (which upstream should never send) classifies as the first match. Markers
// deliberately omit the closing bracket so fragments with a namespace
// declaration match too.
var rootMarkers = []struct {
	marker string
	kind   MessageKind
}{
	{"<EstimatedVehicleJourney", KindET},
	{"<PtSituationElement", KindSX},
	{"<HeartbeatNotification", KindHeartbeat},
	{"<SubscriptionTerminatedNotification", KindTerminated},
}

// Classify determines the payload variant from the raw XML text. It is a pure
// textual check; empty or unrecognized payloads classify as KindUnknown and
// never fail.
func Classify(raw string) MessageKind {
	if raw == "" {
		return KindUnknown
	}
	for _, m := range rootMarkers {
		if strings.Contains(raw, m.marker) {
			return m.kind
		}
	}
	return KindUnknown
}
