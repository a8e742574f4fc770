package engine

// Structured day events. These are the result type the kernel reports with;
// the old string log keys survive only as presentation hints resolved by the
// text package.

type EventKind string

const (
	EventWeather   EventKind = "weather"
	EventTravel    EventKind = "travel"
	EventBreakdown EventKind = "breakdown"
	EventRepair    EventKind = "repair"
	EventCrossing  EventKind = "crossing"
	EventEncounter EventKind = "encounter"
	EventCamp      EventKind = "camp"
	EventEndgame   EventKind = "endgame"
	EventBoss      EventKind = "boss"
	EventRunEnded  EventKind = "run_ended"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// DayEvent is one tagged occurrence within a day tick.
type DayEvent struct {
	Kind     EventKind      `json:"kind"`
	Severity Severity       `json:"severity"`
	Tags     []string       `json:"tags,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`

	// LegacyKey is an optional presentation hint for renderers that still
	// key prose off the old string identifiers. Nothing in the kernel
	// branches on it.
	LegacyKey string `json:"legacy_key,omitempty"`
}

// DayOutcome is what one TickDay call returns.
type DayOutcome struct {
	Record DayRecord  `json:"record"`
	Events []DayEvent `json:"events"`
	Ended  bool       `json:"ended"`
	Ending Ending     `json:"ending,omitempty"`
}

func infoEvent(kind EventKind, legacy string, tags ...string) DayEvent {
	return DayEvent{Kind: kind, Severity: SeverityInfo, Tags: tags, LegacyKey: legacy}
}

func warnEvent(kind EventKind, legacy string, tags ...string) DayEvent {
	return DayEvent{Kind: kind, Severity: SeverityWarning, Tags: tags, LegacyKey: legacy}
}

func critEvent(kind EventKind, legacy string, tags ...string) DayEvent {
	return DayEvent{Kind: kind, Severity: SeverityCritical, Tags: tags, LegacyKey: legacy}
}
