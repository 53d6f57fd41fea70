package siri

import (
	"errors"
	"testing"
	"time"
)

const etFragment = `<?xml version="1.0" ?>
<EstimatedVehicleJourney xmlns="http://www.siri.org.uk/siri">
  <LineRef>NSB:Line:L1</LineRef>
  <DirectionRef>Lillestrøm</DirectionRef>
  <DatedVehicleJourneyRef>2224:2018-02-01</DatedVehicleJourneyRef>
  <VehicleMode>rail</VehicleMode>
  <OriginName>Spikkestad</OriginName>
  <OperatorRef>NSB</OperatorRef>
  <VehicleRef>2224</VehicleRef>
  <EstimatedCalls>
    <EstimatedCall>
      <StopPointRef>NSR:Quay:555</StopPointRef>
      <StopPointName>Oslo S</StopPointName>
      <RequestStop>false</RequestStop>
      <AimedArrivalTime>2018-02-01T10:39:00+01:00</AimedArrivalTime>
      <ExpectedArrivalTime>2018-02-01T10:44:54+01:00</ExpectedArrivalTime>
      <ArrivalStatus>delayed</ArrivalStatus>
      <ArrivalPlatformName>9</ArrivalPlatformName>
      <AimedDepartureTime>2018-02-01T10:41:00+01:00</AimedDepartureTime>
      <ExpectedDepartureTime>2018-02-01T10:45:24+01:00</ExpectedDepartureTime>
      <DepartureStatus>delayed</DepartureStatus>
      <DeparturePlatformName>9</DeparturePlatformName>
    </EstimatedCall>
  </EstimatedCalls>
</EstimatedVehicleJourney>`

func TestDecode_EstimatedVehicleJourney(t *testing.T) {
	p, err := Decode(etFragment)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	evj, ok := p.(*EstimatedVehicleJourney)
	if !ok {
		t.Fatalf("expected *EstimatedVehicleJourney, got %T", p)
	}
	if evj.Kind() != KindET {
		t.Errorf("expected kind %s, got %s", KindET, evj.Kind())
	}
	if evj.LineRef != "NSB:Line:L1" {
		t.Errorf("unexpected LineRef %q", evj.LineRef)
	}
	if evj.DirectionRef != "Lillestrøm" {
		t.Errorf("unexpected DirectionRef %q", evj.DirectionRef)
	}
	if len(evj.EstimatedCalls) != 1 {
		t.Fatalf("expected 1 estimated call, got %d", len(evj.EstimatedCalls))
	}
	call := evj.EstimatedCalls[0]
	if call.StopPointName != "Oslo S" {
		t.Errorf("unexpected StopPointName %q", call.StopPointName)
	}
	if call.ArrivalStatus != "delayed" || call.DepartureStatus != "delayed" {
		t.Errorf("unexpected statuses %q/%q", call.ArrivalStatus, call.DepartureStatus)
	}
	loc := time.FixedZone("", 3600)
	wantAimed := time.Date(2018, 2, 1, 10, 39, 0, 0, loc)
	if call.AimedArrivalTime == nil || !call.AimedArrivalTime.Equal(wantAimed) {
		t.Errorf("unexpected AimedArrivalTime %v", call.AimedArrivalTime)
	}
	if call.ExpectedArrivalTime == nil || !call.ExpectedArrivalTime.After(*call.AimedArrivalTime) {
		t.Errorf("expected ExpectedArrivalTime after aimed, got %v", call.ExpectedArrivalTime)
	}
}

func TestDecode_RecordedCallsAndAssignments(t *testing.T) {
	raw := `<EstimatedVehicleJourney>
  <LineRef>NSB:Line:L12</LineRef>
  <RecordedCalls>
    <RecordedCall>
      <StopPointRef>NSR:Quay:695</StopPointRef>
      <StopPointName>Asker</StopPointName>
      <AimedDepartureTime>2018-02-01T10:01:00+01:00</AimedDepartureTime>
      <ActualDepartureTime>2018-02-01T10:07:30+01:00</ActualDepartureTime>
      <DepartureStopAssignment>
        <AimedQuayRef>NSR:Quay:695</AimedQuayRef>
        <ExpectedQuayRef>NSR:Quay:697</ExpectedQuayRef>
        <ExpectedQuayName>3</ExpectedQuayName>
      </DepartureStopAssignment>
    </RecordedCall>
  </RecordedCalls>
</EstimatedVehicleJourney>`
	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	evj := p.(*EstimatedVehicleJourney)
	if len(evj.RecordedCalls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(evj.RecordedCalls))
	}
	rc := evj.RecordedCalls[0]
	if rc.ActualDepartureTime == nil || rc.AimedDepartureTime == nil {
		t.Fatal("expected both aimed and actual departure times")
	}
	if rc.DepartureStopAssignment == nil {
		t.Fatal("expected a departure stop assignment")
	}
	if rc.DepartureStopAssignment.ExpectedQuayRef != "NSR:Quay:697" {
		t.Errorf("unexpected ExpectedQuayRef %q", rc.DepartureStopAssignment.ExpectedQuayRef)
	}
	if rc.DepartureStopAssignment.ExpectedQuayName != "3" {
		t.Errorf("unexpected ExpectedQuayName %q", rc.DepartureStopAssignment.ExpectedQuayName)
	}
}

func TestDecode_Situation(t *testing.T) {
	raw := `<?xml version="1.0" ?>
<PtSituationElement>
  <CreationTime>2018-02-02T12:19:31+01:00</CreationTime>
  <ParticipantRef>NSB</ParticipantRef>
  <SituationNumber>status-168267394</SituationNumber>
  <ReportType>incident</ReportType>
  <Description xml:lang="NO">Vennligst ta neste eller andre tog.</Description>
  <Description xml:lang="EN">Passengers are requested to take the next train.</Description>
</PtSituationElement>`
	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	sx, ok := p.(*PtSituationElement)
	if !ok {
		t.Fatalf("expected *PtSituationElement, got %T", p)
	}
	if len(sx.Descriptions) != 2 {
		t.Fatalf("expected 2 descriptions, got %d", len(sx.Descriptions))
	}
	if sx.Descriptions[0].Lang != "NO" || sx.Descriptions[1].Lang != "EN" {
		t.Errorf("unexpected language tags %q/%q", sx.Descriptions[0].Lang, sx.Descriptions[1].Lang)
	}
	if sx.Descriptions[1].Text != "Passengers are requested to take the next train." {
		t.Errorf("unexpected text %q", sx.Descriptions[1].Text)
	}
}

func TestDecode_Notifications(t *testing.T) {
	p, err := Decode("<HeartbeatNotification><ProducerRef>ukur</ProducerRef></HeartbeatNotification>")
	if err != nil {
		t.Fatalf("decode heartbeat failed: %v", err)
	}
	if p.Kind() != KindHeartbeat {
		t.Errorf("expected %s, got %s", KindHeartbeat, p.Kind())
	}
	p, err = Decode("<SubscriptionTerminatedNotification><SubscriptionRef>sub-1</SubscriptionRef></SubscriptionTerminatedNotification>")
	if err != nil {
		t.Fatalf("decode termination failed: %v", err)
	}
	if p.Kind() != KindTerminated {
		t.Errorf("expected %s, got %s", KindTerminated, p.Kind())
	}
}

func TestDecode_Unknown(t *testing.T) {
	if _, err := Decode("<data/>"); !errors.Is(err, ErrUnknownPayload) {
		t.Errorf("expected ErrUnknownPayload, got %v", err)
	}
	if _, err := Decode(""); !errors.Is(err, ErrUnknownPayload) {
		t.Errorf("expected ErrUnknownPayload for empty payload, got %v", err)
	}
}

func TestDecode_MalformedXML(t *testing.T) {
	if _, err := Decode("<EstimatedVehicleJourney><LineRef>oops"); err == nil {
		t.Error("expected an error for truncated XML")
	}
}
