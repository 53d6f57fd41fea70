package siri

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Payload is the decoded form of a pushed fragment, tagged with its variant.
type Payload interface {
	Kind() MessageKind
}

func (*EstimatedVehicleJourney) Kind() MessageKind            { return KindET }
func (*PtSituationElement) Kind() MessageKind                 { return KindSX }
func (*HeartbeatNotification) Kind() MessageKind              { return KindHeartbeat }
func (*SubscriptionTerminatedNotification) Kind() MessageKind { return KindTerminated }

// ErrUnknownPayload is returned by Decode for payloads matching no known
// root-element marker.
var ErrUnknownPayload = errors.New("siri: payload matches no known root element")

// Decode classifies a raw fragment and unmarshals it into the matching
// variant. Field matching is by local element name, so fragments both with
// and without the SIRI namespace declaration decode identically.
func Decode(raw string) (Payload, error) {
	kind := Classify(raw)
	var p Payload
	switch kind {
	case KindET:
		p = &EstimatedVehicleJourney{}
	case KindSX:
		p = &PtSituationElement{}
	case KindHeartbeat:
		p = &HeartbeatNotification{}
	case KindTerminated:
		p = &SubscriptionTerminatedNotification{}
	default:
		return nil, ErrUnknownPayload
	}
	if err := xml.Unmarshal([]byte(raw), p); err != nil {
		return nil, fmt.Errorf("siri: decode %s payload: %w", kind, err)
	}
	return p, nil
}
