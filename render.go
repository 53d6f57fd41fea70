package siripush

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/siri-push-monitor/siri"
)

// SubscriptionView is the read-only slice of a subscription the renderer
// needs: the ordered stop-point filters. It is supplied fresh per render and
// never mutated here.
type SubscriptionView struct {
	FromStopPoints []string
	ToStopPoints   []string
}

const (
	heartbeatText  = "Heartbeat - the subscription is alive"
	terminatedText = "The subscription was terminated by the server"

	// Fallback when no usable from/to call pair can be derived.
	unspecifiedDeviations = " has unspecified deviations"
)

// Renderer turns a decoded payload into a one-line human readable summary.
// Rendering is deterministic: the same payload and view always produce the
// same text.
type Renderer struct {
	log zerolog.Logger
}

func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render produces the summary for a payload, or "" when no summary applies.
// view may be nil when the subscription could not be resolved; rendering then
// proceeds without from/to context.
func (r *Renderer) Render(p siri.Payload, view *SubscriptionView) string {
	switch v := p.(type) {
	case *siri.EstimatedVehicleJourney:
		return r.renderEstimatedJourney(v, view)
	case *siri.PtSituationElement:
		return renderSituation(v)
	case *siri.HeartbeatNotification:
		return heartbeatText
	case *siri.SubscriptionTerminatedNotification:
		return terminatedText
	default:
		r.log.Warn().Type("payload", p).Msg("no renderer for payload variant")
		return ""
	}
}

// renderSituation picks one description text. Language tags are unreliable
// upstream: an EN tag wins immediately, a NO tag is remembered as fallback,
// and with neither the last description is used since that tends to be the
// English one. This quirk is deliberate and must be preserved.
func renderSituation(sx *siri.PtSituationElement) string {
	descriptions := sx.Descriptions
	if len(descriptions) == 0 {
		return ""
	}
	if len(descriptions) == 1 {
		return descriptions[0].Text
	}
	var norwegian, last string
	haveNorwegian := false
	for _, d := range descriptions {
		if strings.EqualFold(d.Lang, "EN") {
			return d.Text
		}
		if strings.EqualFold(d.Lang, "NO") {
			norwegian = d.Text
			haveNorwegian = true
		}
		last = d.Text
	}
	if haveNorwegian {
		return norwegian
	}
	return last
}

// renderEstimatedJourney builds a sentence like
//
//	NSB:Line:L1 towards Lillestrøm from Asker with aimed departure 10:01:00
//	is delayed and expected to depart 10:07:30 to Oslo S with aimed arrival
//	10:39:00 is delayed and expected to arrive 10:44:54
//
// Upstream only pushes the 1-2 calls relevant to the subscription's boundary
// stops, so which call is "from" and which is "to" is inferred from call
// position and the recorded-call override. This is a heuristic, not a
// guarantee.
func (r *Renderer) renderEstimatedJourney(evj *siri.EstimatedVehicleJourney, view *SubscriptionView) string {
	var b strings.Builder
	b.WriteString(evj.LineRef)
	if evj.DirectionRef != "" {
		b.WriteString(" towards ")
		b.WriteString(evj.DirectionRef)
	}

	fromRecorded := r.selectRecordedFrom(evj, view)
	var fromEstimated, toEstimated *siri.EstimatedCall
	switch len(evj.EstimatedCalls) {
	case 1:
		// A single remaining call is the arrival boundary stop.
		toEstimated = &evj.EstimatedCalls[0]
	case 2:
		fromEstimated = &evj.EstimatedCalls[0]
		toEstimated = &evj.EstimatedCalls[1]
	}

	if fromRecorded == nil && fromEstimated == nil && toEstimated == nil {
		b.WriteString(unspecifiedDeviations)
		return b.String()
	}

	if fromRecorded != nil {
		writeRecordedFrom(&b, fromRecorded)
	} else if fromEstimated != nil {
		writeEstimatedFrom(&b, fromEstimated)
	}
	if toEstimated != nil {
		writeEstimatedTo(&b, toEstimated)
	}
	return b.String()
}

// selectRecordedFrom returns the single recorded call when it may serve as
// the authoritative departure stop. Without a resolved subscription there is
// no departure context, so recorded calls are ignored. More than one recorded
// call is ambiguous upstream behavior: warn and use none.
func (r *Renderer) selectRecordedFrom(evj *siri.EstimatedVehicleJourney, view *SubscriptionView) *siri.RecordedCall {
	if view == nil || len(evj.RecordedCalls) == 0 {
		return nil
	}
	if len(evj.RecordedCalls) > 1 {
		r.log.Warn().Int("count", len(evj.RecordedCalls)).Msg("expected at most one recorded call, using none")
		return nil
	}
	rc := &evj.RecordedCalls[0]
	if !r.isDepartureStop(view, rc.StopPointRef) {
		return nil
	}
	return rc
}

// isDepartureStop matches a stop-point ref against the subscription's
// departure filters. An empty filter list accepts any non-empty ref.
func (r *Renderer) isDepartureStop(view *SubscriptionView, stopPointRef string) bool {
	ref := strings.TrimSpace(stopPointRef)
	if ref == "" {
		r.log.Error().Msg("recorded call carries an empty StopPointRef")
		return false
	}
	if len(view.FromStopPoints) == 0 {
		return true
	}
	for _, from := range view.FromStopPoints {
		if strings.EqualFold(ref, strings.TrimSpace(from)) {
			return true
		}
	}
	return false
}

func writeRecordedFrom(b *strings.Builder, rc *siri.RecordedCall) {
	b.WriteString(" from ")
	b.WriteString(stopName(rc.StopPointName))
	if rc.AimedDepartureTime != nil {
		b.WriteString(" with aimed departure ")
		b.WriteString(clockTime(rc.AimedDepartureTime))
	}
	switch {
	case rc.Cancellation:
		b.WriteString(" was cancelled")
	case recordedDepartureDelayed(rc):
		b.WriteString(" is delayed")
		if rc.ActualDepartureTime != nil {
			b.WriteString(" and expected to depart ")
			b.WriteString(clockTime(rc.ActualDepartureTime))
		}
	}
	writeTrackChange(b, rc.DepartureStopAssignment)
}

func writeEstimatedFrom(b *strings.Builder, ec *siri.EstimatedCall) {
	b.WriteString(" from ")
	b.WriteString(stopName(ec.StopPointName))
	if ec.AimedDepartureTime != nil {
		b.WriteString(" with aimed departure ")
		b.WriteString(clockTime(ec.AimedDepartureTime))
	}
	switch {
	case ec.Cancellation || statusCancelled(ec.DepartureStatus):
		b.WriteString(" is cancelled")
	case estimatedDelayed(ec.DepartureStatus, ec.AimedDepartureTime, ec.ExpectedDepartureTime):
		b.WriteString(" is delayed")
		if ec.ExpectedDepartureTime != nil {
			b.WriteString(" and expected to depart ")
			b.WriteString(clockTime(ec.ExpectedDepartureTime))
		}
	default:
		b.WriteString(" is on time")
	}
	writeTrackChange(b, ec.DepartureStopAssignment)
}

func writeEstimatedTo(b *strings.Builder, ec *siri.EstimatedCall) {
	b.WriteString(" to ")
	b.WriteString(stopName(ec.StopPointName))
	if ec.AimedArrivalTime != nil {
		b.WriteString(" with aimed arrival ")
		b.WriteString(clockTime(ec.AimedArrivalTime))
	}
	switch {
	case ec.Cancellation || statusCancelled(ec.ArrivalStatus):
		b.WriteString(" is cancelled")
	case estimatedDelayed(ec.ArrivalStatus, ec.AimedArrivalTime, ec.ExpectedArrivalTime):
		b.WriteString(" is delayed")
		if ec.ExpectedArrivalTime != nil {
			b.WriteString(" and expected to arrive ")
			b.WriteString(clockTime(ec.ExpectedArrivalTime))
		}
	default:
		b.WriteString(" is on time")
	}
	writeTrackChange(b, ec.ArrivalStopAssignment)
}

// writeTrackChange appends the new-track fragment when the call carries a
// stop assignment whose expected quay differs from the aimed one.
func writeTrackChange(b *strings.Builder, sa *siri.StopAssignment) {
	if sa == nil {
		return
	}
	aimed := strings.TrimSpace(sa.AimedQuayRef)
	expected := strings.TrimSpace(sa.ExpectedQuayRef)
	if aimed == "" || expected == "" || strings.EqualFold(aimed, expected) {
		return
	}
	b.WriteString(" with new track ")
	if sa.ExpectedQuayName != "" {
		b.WriteString(sa.ExpectedQuayName)
	} else {
		b.WriteString(expected)
	}
}

func stopName(name string) string {
	if name == "" {
		return "?"
	}
	return name
}

func statusCancelled(status string) bool {
	return strings.EqualFold(status, "cancelled")
}

// recordedDepartureDelayed: a recorded call was late when the actual time
// differs from the aimed one.
func recordedDepartureDelayed(rc *siri.RecordedCall) bool {
	return rc.AimedDepartureTime != nil && rc.ActualDepartureTime != nil &&
		!rc.AimedDepartureTime.Equal(*rc.ActualDepartureTime)
}

// estimatedDelayed: the call's status says delayed, or the expected time is
// strictly later than the aimed one.
func estimatedDelayed(status string, aimed, expected *time.Time) bool {
	if strings.EqualFold(status, "delayed") {
		return true
	}
	return aimed != nil && expected != nil && expected.After(*aimed)
}
