package engine

import (
	"encoding/json"
	"fmt"
)

// Inventory gear tags the simulation recognizes.
const (
	TagWoolCoat = "wool_coat"
	TagCooler   = "cooler"
	TagPermit   = "permit"
)

// Stat bounds. Pants is inverted: it grows toward the ceiling and reaching
// it ends the run.
const (
	StatFloor       = 0
	StatCeiling     = 100
	SuppliesCeiling = 999
	AlliesCeiling   = 50
	PantsCeiling    = 100
)

// Stats is the clamped stat block. Every mutation goes through Apply so a
// value can never leave its range.
type Stats struct {
	HP          int `json:"hp"`
	Sanity      int `json:"sanity"`
	Supplies    int `json:"supplies"`
	Credibility int `json:"credibility"`
	Morale      int `json:"morale"`
	Allies      int `json:"allies"`
	Pants       int `json:"pants"`
}

// Apply adds a delta and clamps every field to its range.
func (s *Stats) Apply(d Stats) {
	s.HP = ClampInt(s.HP+d.HP, StatFloor, StatCeiling)
	s.Sanity = ClampInt(s.Sanity+d.Sanity, StatFloor, StatCeiling)
	s.Supplies = ClampInt(s.Supplies+d.Supplies, StatFloor, SuppliesCeiling)
	s.Credibility = ClampInt(s.Credibility+d.Credibility, StatFloor, StatCeiling)
	s.Morale = ClampInt(s.Morale+d.Morale, StatFloor, StatCeiling)
	s.Allies = ClampInt(s.Allies+d.Allies, StatFloor, AlliesCeiling)
	s.Pants = ClampInt(s.Pants+d.Pants, StatFloor, PantsCeiling)
}

func addStats(a, b Stats) Stats {
	return Stats{
		HP:          a.HP + b.HP,
		Sanity:      a.Sanity + b.Sanity,
		Supplies:    a.Supplies + b.Supplies,
		Credibility: a.Credibility + b.Credibility,
		Morale:      a.Morale + b.Morale,
		Allies:      a.Allies + b.Allies,
		Pants:       a.Pants + b.Pants,
	}
}

// Vehicle state. Wear only decreases through repair or camp wrenching.
type Vehicle struct {
	Wear     float64 `json:"wear"` // 0-100
	Health   int     `json:"health"`
	WearMult float64 `json:"wear_mult"`
	Cooldown int     `json:"cooldown"` // days breakdown rolls stay suppressed
}

// Breakdown is the at-most-one active fault blocking travel.
type Breakdown struct {
	Part       Part `json:"part"`
	DayStarted int  `json:"day_started"`
}

// WeatherState tracks today's draw and the extreme streak.
type WeatherState struct {
	Today         Weather `json:"today"`
	Yesterday     Weather `json:"yesterday"`
	ExtremeStreak int     `json:"extreme_streak"`
}

// DayRecord is one immutable ledger row. The ledger is append-only and fully
// reproducible from (seed, decision sequence).
type DayRecord struct {
	DayIndex int      `json:"day_index"`
	Kind     DayKind  `json:"kind"`
	Miles    float64  `json:"miles"`
	Tags     []string `json:"tags,omitempty"`
}

// Decision is the player input consumed by one day tick. Recording it beside
// the ledger makes a run re-simulable from (seed, decisions).
type Decision struct {
	Pace        Pace       `json:"pace"`
	Diet        Diet       `json:"diet"`
	Camp        CampAction `json:"camp,omitempty"` // empty means travel
	BribeIntent bool       `json:"bribe_intent"`
}

// Inventory holds spare parts and gear tags.
type Inventory struct {
	Spares map[Part]int `json:"spares"`
	Gear   []string     `json:"gear,omitempty"`
}

// HasGear reports whether a mitigation/permit tag is carried.
func (i Inventory) HasGear(tag string) bool {
	for _, g := range i.Gear {
		if g == tag {
			return true
		}
	}
	return false
}

// Counters maintained by day accounting with saturating arithmetic.
type Counters struct {
	TravelDays         int `json:"travel_days"`
	PartialTravelDays  int `json:"partial_travel_days"`
	NonTravelDays      int `json:"non_travel_days"`
	RotationTravelDays int `json:"rotation_travel_days"`
}

// EndgameState tracks the near-destination safety net.
type EndgameState struct {
	Active        bool `json:"active"`
	RepairUsed    bool `json:"repair_used"`
	GuardTripped  bool `json:"guard_tripped"`
	MandatoryRest bool `json:"mandatory_rest"`
}

// Scratch holds transient per-day fields, reset at the start of each tick.
type Scratch struct {
	DailyApplied bool `json:"daily_applied"`
}

// ActiveEvent is a lingering modifier left behind by an encounter.
type ActiveEvent struct {
	ID             string  `json:"id"`
	EncounterDelta float64 `json:"encounter_delta"`
	DaysLeft       int     `json:"days_left"`
}

// Phase is the kernel state machine position within a day tick.
type Phase string

const (
	PhaseUninitialized  Phase = "uninitialized"
	PhaseDayInitialized Phase = "day_initialized"
	PhaseTicked         Phase = "ticked"
	PhaseDayEnded       Phase = "day_ended"
)

// GameState is the single mutable aggregate. It is exclusively owned by the
// caller between ticks; the kernel takes it by pointer and never retains it.
type GameState struct {
	SeedText string `json:"seed_text"`
	SeedRoot uint64 `json:"seed_root"`
	Mode     Mode   `json:"mode"`
	Policy   Policy `json:"policy"`

	Day   int   `json:"day"` // monotonic, starts at 1
	Phase Phase `json:"phase"`

	Stats       Stats `json:"stats"`
	BudgetCents int64 `json:"budget_cents"`

	Vehicle   Vehicle    `json:"vehicle"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`

	Weather WeatherState `json:"weather"`
	Region  Region       `json:"region"`
	Season  Season       `json:"season"`

	Inventory Inventory `json:"inventory"`

	MilesTraveled    float64 `json:"miles_traveled"`
	CrossingsCleared int     `json:"crossings_cleared"`
	DetourDaysLeft   int     `json:"detour_days_left"`

	CampCooldowns map[CampAction]int `json:"camp_cooldowns"`

	Counters    Counters     `json:"counters"`
	Endgame     EndgameState `json:"endgame"`
	Scratch     Scratch      `json:"scratch"`
	ActiveEvent *ActiveEvent `json:"active_event,omitempty"`

	Ledger    []DayRecord `json:"ledger"`
	Decisions []Decision  `json:"decisions"`

	BossResolved bool        `json:"boss_resolved"`
	BossWon      bool        `json:"boss_won"`
	BossOutcome  BossOutcome `json:"boss_outcome,omitempty"`

	RunOver bool   `json:"run_over"`
	Ending  Ending `json:"ending,omitempty"`

	Rand *Bundle `json:"rand"`
}

// NewGameState builds a fresh run from a seed, mode and policy.
func NewGameState(seed RunSeed, mode Mode, policy Policy) *GameState {
	return &GameState{
		SeedText: seed.Text,
		SeedRoot: seed.Root(),
		Mode:     mode,
		Policy:   policy,
		Day:      1,
		Phase:    PhaseUninitialized,
		Stats: Stats{
			HP:          100,
			Sanity:      80,
			Supplies:    60,
			Credibility: 50,
			Morale:      70,
			Allies:      3,
			Pants:       0,
		},
		BudgetCents: 80000,
		Vehicle:     Vehicle{Wear: 0, Health: 100, WearMult: 1.0},
		Weather:     WeatherState{Today: WeatherClear, Yesterday: WeatherClear},
		Region:      RegionHeartland,
		Season:      SeasonSpring,
		Inventory: Inventory{
			Spares: map[Part]int{PartTire: 2, PartBattery: 1},
			Gear:   []string{TagWoolCoat},
		},
		CampCooldowns: map[CampAction]int{},
		Rand:          NewBundle(seed),
	}
}

// AppendRecord appends to the ledger, enforcing non-decreasing day indices.
func (g *GameState) AppendRecord(rec DayRecord) error {
	if n := len(g.Ledger); n > 0 && rec.DayIndex < g.Ledger[n-1].DayIndex {
		return fmt.Errorf("ledger day index went backwards: %d after %d", rec.DayIndex, g.Ledger[n-1].DayIndex)
	}
	g.Ledger = append(g.Ledger, rec)
	return nil
}

// ResetScratch clears the per-day transient fields.
func (g *GameState) ResetScratch() { g.Scratch = Scratch{} }

// RegionForMiles maps cumulative distance onto the route's regions.
func RegionForMiles(miles, routeMiles float64) Region {
	switch frac := ClampFloat(miles/routeMiles, 0, 1); {
	case frac < 0.3:
		return RegionHeartland
	case frac < 0.55:
		return RegionHighDesert
	case frac < 0.85:
		return RegionRustBelt
	default:
		return RegionBeltway
	}
}

// SeasonForDay advances one season per 30 simulated days.
func SeasonForDay(day int) Season {
	if day < 1 {
		day = 1
	}
	return AllSeasons[((day-1)/30)%len(AllSeasons)]
}

// Snapshot serializes the full state, RNG stream positions included, so a
// restored run continues exactly where it paused.
func (g *GameState) Snapshot() ([]byte, error) {
	return json.Marshal(g)
}

// RestoreSnapshot reverses Snapshot. Round-tripping yields an equal value.
func RestoreSnapshot(data []byte) (*GameState, error) {
	var g GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	if g.Day < 1 {
		return nil, fmt.Errorf("restore snapshot: invalid day %d", g.Day)
	}
	if g.CampCooldowns == nil {
		g.CampCooldowns = map[CampAction]int{}
	}
	if g.Inventory.Spares == nil {
		g.Inventory.Spares = map[Part]int{}
	}
	return &g, nil
}
