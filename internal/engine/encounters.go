package engine

// Roadside encounters. A single weather-adjusted chance decides whether the
// day has one; a weighted draw over the catalog decides which.

// EncounterBlueprint is one entry of the encounter catalog.
type EncounterBlueprint struct {
	ID           string
	Weight       int
	Delta        Stats
	BudgetCents  int64
	SparePart    Part    // granted when non-empty
	NextDayBonus float64 // added to tomorrow's encounter chance
	Tags         []string
}

// Catalog of roadside encounters.
var encounterCatalog = []EncounterBlueprint{
	{ID: "supply_cache", Weight: 5, Delta: Stats{Supplies: 6, Morale: 2}, Tags: []string{"lucky"}},
	{ID: "sympathetic_mechanic", Weight: 3, Delta: Stats{Morale: 3}, SparePart: PartTire, Tags: []string{"lucky"}},
	{ID: "road_rally", Weight: 4, Delta: Stats{Credibility: 4, Allies: 1, Sanity: -2}, Tags: []string{"crowd"}},
	{ID: "checkpoint_shakedown", Weight: 4, Delta: Stats{Credibility: -3, Morale: -2}, BudgetCents: -2500, Tags: []string{"hostile"}},
	{ID: "hitchhiker_tales", Weight: 5, Delta: Stats{Sanity: -3, Morale: 1}, NextDayBonus: 0.03},
	{ID: "pants_incident", Weight: 2, Delta: Stats{Pants: 6, Credibility: -2}, Tags: []string{"embarrassing"}},
	{ID: "quiet_stretch", Weight: 6, Delta: Stats{Sanity: 2}},
}

// EncounterResult describes a resolved encounter.
type EncounterResult struct {
	ID    string   `json:"id"`
	Delta Stats    `json:"delta"`
	Tags  []string `json:"tags,omitempty"`
}

// RollEncounter draws against the day's encounter chance and, when it fires,
// picks and applies an encounter. Budget loss saturates at zero; shakedowns
// cannot put the run into debt.
func RollEncounter(g *GameState, chance float64, stream *Stream) (EncounterResult, bool) {
	if chance <= 0 || stream.Float64() >= chance {
		return EncounterResult{}, false
	}
	total := 0
	for _, bp := range encounterCatalog {
		total += bp.Weight
	}
	roll := stream.Intn(total)
	var picked EncounterBlueprint
	for _, bp := range encounterCatalog {
		if roll < bp.Weight {
			picked = bp
			break
		}
		roll -= bp.Weight
	}
	if picked.ID == "" {
		picked = encounterCatalog[len(encounterCatalog)-1]
	}

	g.Stats.Apply(picked.Delta)
	if picked.BudgetCents != 0 {
		g.BudgetCents += picked.BudgetCents
		if g.BudgetCents < 0 {
			g.BudgetCents = 0
		}
	}
	if picked.SparePart != "" {
		if g.Inventory.Spares == nil {
			g.Inventory.Spares = map[Part]int{}
		}
		g.Inventory.Spares[picked.SparePart]++
	}
	if picked.NextDayBonus > 0 {
		g.ActiveEvent = &ActiveEvent{ID: picked.ID, EncounterDelta: picked.NextDayBonus, DaysLeft: 2}
	}
	return EncounterResult{ID: picked.ID, Delta: picked.Delta, Tags: picked.Tags}, true
}
