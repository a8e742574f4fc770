// Package text renders kernel events and day summaries as prose. All output
// is deterministic: the same events always produce the same lines, so
// transcripts replay cleanly alongside the ledger.
package text

import (
	"fmt"
	"strings"

	"github.com/DaanHessen/trail-tui/internal/engine"
)

// Density controls how much prose a day produces.
type Density string

const (
	DensityConcise  Density = "concise"
	DensityStandard Density = "standard"
	DensityRich     Density = "rich"
)

func ParseDensity(s string) Density {
	switch Density(s) {
	case DensityConcise, DensityStandard, DensityRich:
		return Density(s)
	default:
		return DensityStandard
	}
}

// Formatter turns structured day events into reader-facing lines.
type Formatter struct {
	density Density
}

func NewFormatter(density Density) *Formatter { return &Formatter{density: density} }

// phrases keyed by the event's presentation hint. Unknown keys fall back to
// a generic line built from the event kind.
var phrases = map[string]string{
	"weather.clear":        "Clear skies over the road.",
	"weather.rain":         "Rain streaks the windshield all day.",
	"weather.cold_snap":    "A cold snap moves in; breath fogs inside the cab.",
	"weather.storm":        "A storm front swallows the horizon.",
	"weather.heat_wave":    "Heat shimmer warps the asphalt.",
	"weather.smoke":        "Smoke haze stings the eyes and shortens the view.",
	"weather.exposure":     "The weather takes its toll on the crew.",
	"supplies.exhausted":   "The larder is empty. Stomachs growl.",
	"travel.detour":        "The long way around, as ordered.",
	"travel.ratio_floor":   "No time to idle twice; the convoy grinds forward anyway.",
	"breakdown.stranded":   "Still stranded on the shoulder.",
	"crossing.pass":        "Waved through the checkpoint.",
	"crossing.detour":      "Turned away at the barrier; a detour it is.",
	"crossing.terminal":    "The crossing ends the journey here.",
	"camp.rest":            "A day of rest. The cots have never felt better.",
	"camp.forage":          "The crew fans out and scavenges what it can.",
	"camp.wrench":          "Hood up, sleeves rolled; the engine gets some love.",
	"camp.shop":            "Haggling at the roadside parts stall.",
	"camp.refused":         "Camp plans fall through.",
	"endgame.active":       "The destination is close now. Everyone feels it.",
	"endgame.field_repair": "A roadside crew patches the rig and waves off payment questions.",
	"endgame.guard":        "The rig will not die this close to the end. A forced rest instead.",
	"endgame.rest_day":     "Mandatory rest. The road will wait.",
	"boss.pantsed_out":     "The final confrontation ends in spectacular embarrassment.",
	"boss.cracked_up":      "The pressure of the final confrontation is too much.",
	"boss.survived_flood":  "The flood rises and the last stand fails, but everyone walks away.",
	"boss.passed_cloture":  "Against the odds, the final vote carries.",
}

var breakdownPhrases = map[engine.Part]string{
	engine.PartTire:       "A tire shreds itself at speed.",
	engine.PartBattery:    "The battery gives up with a click and a sigh.",
	engine.PartAlternator: "The alternator light glows, then everything dims.",
	engine.PartFuelPump:   "The fuel pump whines and dies.",
}

var endingPhrases = map[engine.Ending]string{
	engine.EndingPantsed:    "Run over: pantsed beyond recovery.",
	engine.EndingUnravelled: "Run over: the crew unravels.",
	engine.EndingDestitute:  "Run over: destitute on the roadside.",
	engine.EndingFloodedOut: "Run over: flooded out at the last stand.",
	engine.EndingVictory:    "Run over: victory at the end of the road.",
}

// Line renders one event. Concise density drops informational filler.
func (f *Formatter) Line(ev engine.DayEvent) string {
	if f.density == DensityConcise && ev.Severity == engine.SeverityInfo && ev.Kind == engine.EventWeather {
		return ""
	}
	if ev.Kind == engine.EventBreakdown && ev.LegacyKey != "breakdown.stranded" {
		part := engine.Part(strings.TrimPrefix(ev.LegacyKey, "breakdown."))
		if phrase, ok := breakdownPhrases[part]; ok {
			return phrase
		}
	}
	if strings.HasPrefix(ev.LegacyKey, "run.") {
		if phrase, ok := endingPhrases[engine.Ending(strings.TrimPrefix(ev.LegacyKey, "run."))]; ok {
			return phrase
		}
	}
	if strings.HasPrefix(ev.LegacyKey, "encounter.") {
		return encounterLine(strings.TrimPrefix(ev.LegacyKey, "encounter."))
	}
	if phrase, ok := phrases[ev.LegacyKey]; ok {
		return phrase
	}
	return fmt.Sprintf("[%s] %s", ev.Kind, strings.Join(ev.Tags, ", "))
}

func encounterLine(id string) string {
	switch id {
	case "supply_cache":
		return "An abandoned cache by the mile marker, still stocked."
	case "sympathetic_mechanic":
		return "A mechanic hears the whole story and slips a spare tire into the truck."
	case "road_rally":
		return "A roadside crowd gathers; a few of them decide to tag along."
	case "checkpoint_shakedown":
		return "An informal checkpoint relieves the convoy of some cash."
	case "hitchhiker_tales":
		return "The hitchhiker's stories are hard to forget and harder to believe."
	case "pants_incident":
		return "An incident involving pants. Nobody will speak of it again."
	case "quiet_stretch":
		return "A quiet stretch of road. Nothing happens, gloriously."
	default:
		return "Something happens by the roadside."
	}
}

// DaySummary renders a full day as markdown for the scene pane.
func (f *Formatter) DaySummary(g *engine.GameState, outcome engine.DayOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Day %d — %s\n\n", outcome.Record.DayIndex, titleRegion(g.Region))
	fmt.Fprintf(&b, "**%s** · %s · %.1f miles today, %.1f total\n\n",
		strings.ToUpper(string(outcome.Record.Kind)), string(g.Season), outcome.Record.Miles, g.MilesTraveled)

	for _, ev := range outcome.Events {
		line := f.Line(ev)
		if line == "" {
			continue
		}
		marker := "-"
		if ev.Severity == engine.SeverityCritical {
			marker = "- **!**"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, line)
	}

	if f.density == DensityRich {
		b.WriteString("\n")
		fmt.Fprintf(&b, "*Supplies %d · Morale %d · Sanity %d · Budget $%.2f*\n",
			g.Stats.Supplies, g.Stats.Morale, g.Stats.Sanity, float64(g.BudgetCents)/100)
	}
	if outcome.Ended {
		fmt.Fprintf(&b, "\n### %s\n", endingPhrases[outcome.Ending])
	}
	return b.String()
}

func titleRegion(r engine.Region) string {
	switch r {
	case engine.RegionHeartland:
		return "the Heartland"
	case engine.RegionHighDesert:
		return "the High Desert"
	case engine.RegionRustBelt:
		return "the Rust Belt"
	case engine.RegionBeltway:
		return "the Beltway"
	default:
		return string(r)
	}
}
