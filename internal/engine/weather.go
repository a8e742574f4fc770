package engine

// Weather engine: weighted region/season draw with extreme-streak limiting,
// seasonal overrides and gear-mitigated exposure effects.

// WeatherResult reports the day's selected state and its derived modifiers.
type WeatherResult struct {
	State          Weather
	Delta          Stats
	HealthDamage   int
	Mitigated      bool
	TravelFactor   float64
	VehicleFactor  float64
	EncounterDelta float64
	Changed        bool
}

// drawWeighted walks the entries subtracting weight until roll < weight.
func drawWeighted(rows []WeatherWeight, stream *Stream) (Weather, bool) {
	total := 0
	for _, row := range rows {
		total += row.Weight
	}
	if total <= 0 {
		return WeatherClear, false
	}
	roll := stream.Intn(total)
	for _, row := range rows {
		if roll < row.Weight {
			return row.State, true
		}
		roll -= row.Weight
	}
	return rows[len(rows)-1].State, true
}

func nonExtremeSubset(rows []WeatherWeight) []WeatherWeight {
	var out []WeatherWeight
	for _, row := range rows {
		if !row.State.IsExtreme() && row.Weight > 0 {
			out = append(out, row)
		}
	}
	return out
}

// AdvanceWeather selects today's weather and updates the streak bookkeeping
// on g.Weather. Missing weight rows fail soft: yesterday's state is kept.
func AdvanceWeather(g *GameState, cfg WeatherConfig, stream *Stream) WeatherResult {
	prev := g.Weather.Today
	rows := cfg.Weights[g.Region][g.Season]

	state := prev
	if len(rows) > 0 {
		if drawn, ok := drawWeighted(rows, stream); ok {
			state = drawn
		}
		if state.IsExtreme() && g.Weather.ExtremeStreak >= cfg.MaxExtremeStreak {
			// Reselect from the non-extreme subset with a fresh draw.
			if sub := nonExtremeSubset(rows); len(sub) > 0 {
				if drawn, ok := drawWeighted(sub, stream); ok {
					state = drawn
				}
			} else {
				state = WeatherClear
			}
		}
		for _, ov := range cfg.Overrides {
			if ov.Season != g.Season {
				continue
			}
			if stream.Float64() < ov.Chance {
				state = ov.State
				if state.IsExtreme() && g.Weather.ExtremeStreak >= cfg.MaxExtremeStreak {
					state = WeatherClear
				}
			}
		}
	}

	g.Weather.Yesterday = prev
	g.Weather.Today = state
	if state.IsExtreme() {
		g.Weather.ExtremeStreak = ClampInt(g.Weather.ExtremeStreak+1, 0, cfg.MaxExtremeStreak)
	} else {
		g.Weather.ExtremeStreak = 0
	}

	return weatherResult(g, cfg, state, state != prev)
}

func weatherResult(g *GameState, cfg WeatherConfig, state Weather, changed bool) WeatherResult {
	eff, ok := cfg.Effects[state]
	if !ok {
		// Unknown state acts as no modifier.
		return WeatherResult{State: state, TravelFactor: 1.0, VehicleFactor: 1.0, Changed: changed}
	}
	res := WeatherResult{
		State:         state,
		Delta:         Stats{Sanity: eff.SanityDelta, Morale: eff.MoraleDelta, Supplies: eff.SupplyDelta},
		TravelFactor:  eff.TravelFactor,
		VehicleFactor: eff.VehicleFactor,
		Changed:       changed,
	}
	if res.TravelFactor <= 0 {
		res.TravelFactor = 1.0
	}
	if res.VehicleFactor <= 0 {
		res.VehicleFactor = 1.0
	}
	if eff.HealthDamage > 0 {
		if eff.MitigationTag != "" && g.Inventory.HasGear(eff.MitigationTag) {
			res.Mitigated = true
		} else {
			res.HealthDamage = eff.HealthDamage
		}
	}
	// Additive, clamped encounter delta; an active event stacks on top.
	bonus := 0.0
	if g.ActiveEvent != nil && g.ActiveEvent.DaysLeft > 0 {
		bonus = g.ActiveEvent.EncounterDelta
	}
	res.EncounterDelta = ClampFloat(eff.EncounterDelta+bonus, cfg.EncounterFloor, cfg.EncounterCeil)
	return res
}
