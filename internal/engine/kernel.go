package engine

import (
	"fmt"
)

// Journey kernel. One TickDay call walks the state machine
// Uninitialized/DayEnded -> DayInitialized -> Ticked -> DayEnded and returns
// the day's outcome plus the appended ledger record.

// Controller orchestrates day ticks against a validated tuning bundle.
type Controller struct {
	tuning Tuning
}

// NewController validates the tuning once; the kernel assumes complete
// tables from then on.
func NewController(t Tuning) (*Controller, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	return &Controller{tuning: t}, nil
}

// Tuning exposes the validated tables (read-only by convention).
func (c *Controller) Tuning() Tuning { return c.tuning }

// ErrRunOver is returned when ticking a finished run.
var ErrRunOver = fmt.Errorf("run is over")

// TickDay advances the journey by exactly one calendar day. It is the one
// atomic unit of work: no partial day states survive outside the call.
func (c *Controller) TickDay(g *GameState, d Decision) (DayOutcome, error) {
	if g.RunOver {
		return DayOutcome{}, ErrRunOver
	}
	if g.Phase == PhaseDayInitialized || g.Phase == PhaseTicked {
		return DayOutcome{}, fmt.Errorf("tick re-entered mid-day in phase %q", g.Phase)
	}
	if !d.Pace.Validate() {
		d.Pace = PaceSteady
	}
	if !d.Diet.Validate() {
		d.Diet = DietMeager
	}

	c.beginDay(g, d)
	outcome := DayOutcome{}

	wres := AdvanceWeather(g, c.tuning.Weather, g.Rand.Weather)
	ev := infoEvent(EventWeather, "weather."+string(wres.State), string(wres.State))
	if wres.State.IsExtreme() {
		ev.Severity = SeverityWarning
	}
	ev.Payload = map[string]any{"streak": g.Weather.ExtremeStreak}
	outcome.Events = append(outcome.Events, ev)

	c.applyDailyPhysics(g, d, wres, &outcome)

	miles, expected, legEvents := c.travelNextLeg(g, d, wres)
	outcome.Events = append(outcome.Events, legEvents...)

	acct := AccountDay(g, c.tuning.Pacing, miles, expected)
	if acct.Demoted {
		outcome.Events = append(outcome.Events, infoEvent(EventTravel, "travel.ratio_floor", "demoted"))
	}
	g.MilesTraveled = RoundMiles(g.MilesTraveled + acct.Miles)
	g.Region = RegionForMiles(g.MilesTraveled, c.tuning.Pacing.RouteMiles)

	if EndgameActivate(g, c.tuning.Endgame) {
		outcome.Events = append(outcome.Events, infoEvent(EventEndgame, "endgame.active"))
	}
	if method, fired := EndgameRepair(g, c.tuning.Endgame, c.tuning.Vehicle); fired {
		ev := warnEvent(EventEndgame, "endgame.field_repair", string(method))
		outcome.Events = append(outcome.Events, ev)
	}
	if EndgameGuard(g, c.tuning.Endgame) {
		outcome.Events = append(outcome.Events, critEvent(EventEndgame, "endgame.guard", "mandatory_rest"))
	}

	tags := c.recordTags(g, acct, &outcome)
	rec := DayRecord{DayIndex: g.Day, Kind: acct.Kind, Miles: acct.Miles, Tags: tags}
	if err := g.AppendRecord(rec); err != nil {
		return DayOutcome{}, err
	}
	outcome.Record = rec

	c.checkRunEnd(g, &outcome)
	c.endDay(g)
	return outcome, nil
}

func (c *Controller) beginDay(g *GameState, d Decision) {
	g.ResetScratch()
	g.Phase = PhaseDayInitialized
	g.Season = SeasonForDay(g.Day)
	TickVehicleDay(g, c.tuning.Vehicle)
	TickCampCooldowns(g)
	if g.ActiveEvent != nil {
		g.ActiveEvent.DaysLeft--
		if g.ActiveEvent.DaysLeft <= 0 {
			g.ActiveEvent = nil
		}
	}
	g.Decisions = append(g.Decisions, d)
}

func paceSanityCost(p Pace) int {
	switch p {
	case PacePushing:
		return -1
	case PaceGrueling:
		return -2
	default:
		return 0
	}
}

// applyDailyPhysics applies the once-per-day decay from pace, diet, weather
// and exposure. Idempotent: helper re-entry within the same day is a no-op.
func (c *Controller) applyDailyPhysics(g *GameState, d Decision, wres WeatherResult, outcome *DayOutcome) {
	if g.Scratch.DailyApplied {
		return
	}
	g.Scratch.DailyApplied = true

	pacing := c.tuning.Pacing
	delta := Stats{
		Supplies: -pacing.DietSupplyCost[d.Diet],
		HP:       pacing.DietHealthDelta[d.Diet] - wres.HealthDamage,
		Morale:   pacing.DietMoraleDelta[d.Diet],
		Sanity:   paceSanityCost(d.Pace),
	}
	delta = addStats(delta, wres.Delta)
	g.Stats.Apply(delta)

	if wres.HealthDamage > 0 {
		outcome.Events = append(outcome.Events, warnEvent(EventWeather, "weather.exposure", string(wres.State)))
	}
	if g.Stats.Supplies <= 0 {
		// Empty larder bites immediately.
		g.Stats.Apply(Stats{HP: -4, Morale: -3})
		outcome.Events = append(outcome.Events, warnEvent(EventTravel, "supplies.exhausted"))
	}
}

// travelNextLeg is the main transition: breakdown roll, distance, milestone
// crossings and encounters. Returns the day's raw miles and the expected
// full-day distance for classification.
func (c *Controller) travelNextLeg(g *GameState, d Decision, wres WeatherResult) (miles, expected float64, events []DayEvent) {
	g.Phase = PhaseTicked
	pacing := c.tuning.Pacing
	expected = pacing.BaseMiles * pacing.PaceMultipliers[d.Pace]

	// Non-travel branches first: camp, mandated rest, detour.
	if d.Camp != "" {
		res, err := ApplyCamp(g, c.tuning.Camp, d.Camp)
		if err != nil {
			events = append(events, warnEvent(EventCamp, "camp.refused", string(d.Camp)))
			return 0, expected, events
		}
		events = append(events, infoEvent(EventCamp, "camp."+string(res.Action), string(res.Action)))
		return 0, expected, events
	}
	if g.Endgame.MandatoryRest {
		g.Endgame.MandatoryRest = false
		events = append(events, warnEvent(EventEndgame, "endgame.rest_day"))
		return 0, expected, events
	}
	if g.DetourDaysLeft > 0 {
		g.DetourDaysLeft--
		miles = RoundMiles(expected * pacing.PartialRatio)
		events = append(events, infoEvent(EventTravel, "travel.detour", "detour"))
		return miles, expected, events
	}

	// Vehicle first: a fresh breakdown still costs most of the day.
	ApplyWear(&g.Vehicle, DailyWear(c.tuning.Vehicle, d.Diet, d.Pace))
	part, started := RollBreakdown(g, c.tuning.Vehicle, d.Pace, wres.VehicleFactor, wres.State.IsExtreme(), g.Rand.Breakdown)
	if started {
		events = append(events, critEvent(EventBreakdown, "breakdown."+string(part), string(part)))
		miles = RoundMiles(expected * pacing.PartialRatio * wres.TravelFactor)
		return miles, expected, events
	}
	if g.Breakdown != nil {
		events = append(events, warnEvent(EventBreakdown, "breakdown.stranded", string(g.Breakdown.Part)))
		return 0, expected, events
	}

	miles = expected * wres.TravelFactor
	if g.Stats.HP < 30 {
		miles *= 0.8 // limping crew drives short days
	}
	floor := expected * pacing.PartialRatio
	if miles < floor {
		miles = floor
	}
	miles = RoundMiles(miles)

	// Crossings trigger on distance milestones.
	next := float64(g.CrossingsCleared+1) * pacing.CrossingInterval
	if next < pacing.RouteMiles && g.MilesTraveled < next && g.MilesTraveled+miles >= next {
		idx := g.CrossingsCleared + 1
		hasPermit := g.Inventory.HasGear(TagPermit)
		out := ResolveCrossing(c.tuning.Crossing, g.Policy, g.Mode, hasPermit, d.BribeIntent, idx, g.Day, g.SeedRoot)
		switch out.Kind {
		case CrossingPass:
			g.CrossingsCleared++
			tag := "pass"
			if out.Bribed {
				tag = "bribed"
				g.Stats.Apply(Stats{Credibility: -2})
			}
			events = append(events, infoEvent(EventCrossing, "crossing.pass", tag))
		case CrossingDetour:
			g.DetourDaysLeft = out.DetourDays
			g.CrossingsCleared++
			miles = RoundMiles(ClampFloat(next-g.MilesTraveled, 0, miles))
			events = append(events, warnEvent(EventCrossing, "crossing.detour", fmt.Sprintf("days:%d", out.DetourDays)))
		case CrossingTerminal:
			miles = RoundMiles(ClampFloat(next-g.MilesTraveled, 0, miles))
			g.RunOver = true
			events = append(events, critEvent(EventCrossing, "crossing.terminal"))
		}
	}

	// Encounter roll uses the weather-adjusted daily chance.
	chance := ClampFloat(c.tuning.Weather.EncounterBase+wres.EncounterDelta, c.tuning.Weather.EncounterFloor, c.tuning.Weather.EncounterCeil)
	if enc, fired := RollEncounter(g, chance, g.Rand.Encounter); fired {
		ev := infoEvent(EventEncounter, "encounter."+enc.ID, enc.Tags...)
		events = append(events, ev)
	}

	return miles, expected, events
}

// recordTags derives the ledger tags for the day from what happened.
func (c *Controller) recordTags(g *GameState, acct AccountingResult, outcome *DayOutcome) []string {
	var tags []string
	for _, ev := range outcome.Events {
		switch ev.Kind {
		case EventBreakdown:
			tags = append(tags, "breakdown")
		case EventCrossing:
			tags = append(tags, "crossing")
		case EventCamp:
			tags = append(tags, "camp")
		case EventEndgame:
			tags = append(tags, "endgame")
		}
	}
	if acct.Demoted {
		tags = append(tags, "ratio_floor")
	}
	return dedupeTags(tags)
}

func dedupeTags(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// checkRunEnd resolves the boss at route's end and applies the ending
// precedence when any terminal condition holds.
func (c *Controller) checkRunEnd(g *GameState, outcome *DayOutcome) {
	if !g.BossResolved && g.MilesTraveled >= c.tuning.Pacing.RouteMiles {
		res := RunBoss(g, c.tuning.Boss, RunSeedFromRaw(g.SeedRoot).Stream("boss"))
		sev := SeverityInfo
		if !res.Won {
			sev = SeverityCritical
		}
		outcome.Events = append(outcome.Events, DayEvent{
			Kind: EventBoss, Severity: sev, Tags: []string{string(res.Outcome)},
			Payload:   map[string]any{"chance": res.Chance, "rounds": res.Rounds},
			LegacyKey: "boss." + string(res.Outcome),
		})
		g.RunOver = true
	}
	if !g.RunOver {
		if g.Stats.Pants >= PantsCeiling || g.Stats.Sanity <= StatFloor || g.Stats.HP <= StatFloor || g.Stats.Supplies <= StatFloor {
			g.RunOver = true
		}
	}
	if g.RunOver {
		g.Ending = SelectEnding(g)
		outcome.Ended = true
		outcome.Ending = g.Ending
		outcome.Events = append(outcome.Events, critEvent(EventRunEnded, "run."+string(g.Ending), string(g.Ending)))
	}
}

func (c *Controller) endDay(g *GameState) {
	g.Phase = PhaseDayEnded
	g.Day++
}
