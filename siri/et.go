package siri

import "time"

// EstimatedVehicleJourney represents a single journey with revised call times,
// pushed as a bare XML fragment (not wrapped in a delivery envelope).
type EstimatedVehicleJourney struct {
	RecordedAtTime         *time.Time      `json:"RecordedAtTime,omitempty" xml:"RecordedAtTime"`
	LineRef                string          `json:"LineRef" xml:"LineRef"`
	DirectionRef           string          `json:"DirectionRef,omitempty" xml:"DirectionRef"`
	DatedVehicleJourneyRef string          `json:"DatedVehicleJourneyRef,omitempty" xml:"DatedVehicleJourneyRef"`
	VehicleMode            string          `json:"VehicleMode,omitempty" xml:"VehicleMode"`
	OriginName             string          `json:"OriginName,omitempty" xml:"OriginName"`
	OperatorRef            string          `json:"OperatorRef,omitempty" xml:"OperatorRef"`
	VehicleRef             string          `json:"VehicleRef,omitempty" xml:"VehicleRef"`
	RecordedCalls          []RecordedCall  `json:"RecordedCalls,omitempty" xml:"RecordedCalls>RecordedCall"`
	EstimatedCalls         []EstimatedCall `json:"EstimatedCalls,omitempty" xml:"EstimatedCalls>EstimatedCall"`
}

// RecordedCall represents a stop the journey has already visited.
type RecordedCall struct {
	StopPointRef            string          `json:"StopPointRef" xml:"StopPointRef"`
	Order                   int             `json:"Order,omitempty" xml:"Order"`
	StopPointName           string          `json:"StopPointName,omitempty" xml:"StopPointName"`
	Cancellation            bool            `json:"Cancellation,omitempty" xml:"Cancellation"`
	RequestStop             bool            `json:"RequestStop,omitempty" xml:"RequestStop"`
	AimedArrivalTime        *time.Time      `json:"AimedArrivalTime,omitempty" xml:"AimedArrivalTime"`
	ActualArrivalTime       *time.Time      `json:"ActualArrivalTime,omitempty" xml:"ActualArrivalTime"`
	AimedDepartureTime      *time.Time      `json:"AimedDepartureTime,omitempty" xml:"AimedDepartureTime"`
	ActualDepartureTime     *time.Time      `json:"ActualDepartureTime,omitempty" xml:"ActualDepartureTime"`
	ArrivalPlatformName     string          `json:"ArrivalPlatformName,omitempty" xml:"ArrivalPlatformName"`
	DeparturePlatformName   string          `json:"DeparturePlatformName,omitempty" xml:"DeparturePlatformName"`
	ArrivalStopAssignment   *StopAssignment `json:"ArrivalStopAssignment,omitempty" xml:"ArrivalStopAssignment"`
	DepartureStopAssignment *StopAssignment `json:"DepartureStopAssignment,omitempty" xml:"DepartureStopAssignment"`
}

// EstimatedCall represents a stop the journey has not yet visited.
type EstimatedCall struct {
	StopPointRef            string          `json:"StopPointRef" xml:"StopPointRef"`
	Order                   int             `json:"Order,omitempty" xml:"Order"`
	StopPointName           string          `json:"StopPointName,omitempty" xml:"StopPointName"`
	Cancellation            bool            `json:"Cancellation,omitempty" xml:"Cancellation"`
	RequestStop             bool            `json:"RequestStop,omitempty" xml:"RequestStop"`
	AimedArrivalTime        *time.Time      `json:"AimedArrivalTime,omitempty" xml:"AimedArrivalTime"`
	ExpectedArrivalTime     *time.Time      `json:"ExpectedArrivalTime,omitempty" xml:"ExpectedArrivalTime"`
	AimedDepartureTime      *time.Time      `json:"AimedDepartureTime,omitempty" xml:"AimedDepartureTime"`
	ExpectedDepartureTime   *time.Time      `json:"ExpectedDepartureTime,omitempty" xml:"ExpectedDepartureTime"`
	ArrivalStatus           string          `json:"ArrivalStatus,omitempty" xml:"ArrivalStatus"`
	DepartureStatus         string          `json:"DepartureStatus,omitempty" xml:"DepartureStatus"`
	ArrivalPlatformName     string          `json:"ArrivalPlatformName,omitempty" xml:"ArrivalPlatformName"`
	DeparturePlatformName   string          `json:"DeparturePlatformName,omitempty" xml:"DeparturePlatformName"`
	ArrivalBoardingActivity string          `json:"ArrivalBoardingActivity,omitempty" xml:"ArrivalBoardingActivity"`
	ArrivalStopAssignment   *StopAssignment `json:"ArrivalStopAssignment,omitempty" xml:"ArrivalStopAssignment"`
	DepartureStopAssignment *StopAssignment `json:"DepartureStopAssignment,omitempty" xml:"DepartureStopAssignment"`
}

// StopAssignment carries the planned and actual quay for a call. A differing
// expected quay means the vehicle was reassigned to another track.
type StopAssignment struct {
	AimedQuayRef     string `json:"AimedQuayRef,omitempty" xml:"AimedQuayRef"`
	ExpectedQuayRef  string `json:"ExpectedQuayRef,omitempty" xml:"ExpectedQuayRef"`
	ExpectedQuayName string `json:"ExpectedQuayName,omitempty" xml:"ExpectedQuayName"`
}
