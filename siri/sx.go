package siri

// PtSituationElement represents a single public transport situation
// (alert/disruption) pushed as a bare XML fragment.
// Based on SIRI-SX v1.1 (Entur Nordic Profile).
type PtSituationElement struct {
	CreationTime    string                  `json:"CreationTime,omitempty" xml:"CreationTime"`
	ParticipantRef  string                  `json:"ParticipantRef,omitempty" xml:"ParticipantRef"`
	SituationNumber string                  `json:"SituationNumber,omitempty" xml:"SituationNumber"`
	Version         string                  `json:"Version,omitempty" xml:"Version"`
	Source          *SituationSource        `json:"Source,omitempty" xml:"Source"`
	Progress        string                  `json:"Progress,omitempty" xml:"Progress"`
	ValidityPeriod  []ValidityPeriod        `json:"ValidityPeriod,omitempty" xml:"ValidityPeriod"`
	Severity        string                  `json:"Severity,omitempty" xml:"Severity"`
	ReportType      string                  `json:"ReportType,omitempty" xml:"ReportType"`
	Keywords        []string                `json:"Keywords,omitempty" xml:"Keywords"`
	Summary         []NaturalLanguageString `json:"Summary,omitempty" xml:"Summary"`
	Descriptions    []NaturalLanguageString `json:"Description,omitempty" xml:"Description"`
	Advice          []NaturalLanguageString `json:"Advice,omitempty" xml:"Advice"`
}

// SituationSource represents the source of the situation message
type SituationSource struct {
	SourceType string `json:"SourceType,omitempty" xml:"SourceType"`
}

// ValidityPeriod represents a time period with start and optional end time
type ValidityPeriod struct {
	StartTime string `json:"StartTime,omitempty" xml:"StartTime"`
	EndTime   string `json:"EndTime,omitempty" xml:"EndTime"`
}

// NaturalLanguageString represents text with a language attribute. Upstream
// frequently omits or mislabels the lang attribute, so consumers must not
// trust it blindly.
type NaturalLanguageString struct {
	Lang string `json:"lang,omitempty" xml:"lang,attr"`
	Text string `json:"text" xml:",chardata"`
}
