package engine

import "testing"

func weatherTestState(region Region, season Season) *GameState {
	seed, _ := NewRunSeed("weather-fixture")
	g := NewGameState(seed, ModeStandard, PolicyModerate)
	g.Region = region
	g.Season = season
	return g
}

func TestAdvanceWeatherDeterministic(t *testing.T) {
	cfg := DefaultWeatherConfig()
	g1 := weatherTestState(RegionHeartland, SeasonSpring)
	g2 := weatherTestState(RegionHeartland, SeasonSpring)
	s1 := g1.Rand.Weather
	s2 := g2.Rand.Weather
	for day := 0; day < 200; day++ {
		r1 := AdvanceWeather(g1, cfg, s1)
		r2 := AdvanceWeather(g2, cfg, s2)
		if r1.State != r2.State {
			t.Fatalf("day %d: states diverged: %s vs %s", day, r1.State, r2.State)
		}
	}
}

func TestExtremeStreakCapped(t *testing.T) {
	cfg := DefaultWeatherConfig()
	for _, region := range AllRegions {
		for _, season := range AllSeasons {
			g := weatherTestState(region, season)
			stream := g.Rand.Weather
			run := 0
			for day := 0; day < 1000; day++ {
				res := AdvanceWeather(g, cfg, stream)
				if res.State.IsExtreme() {
					run++
				} else {
					run = 0
				}
				if run > cfg.MaxExtremeStreak {
					t.Fatalf("%s/%s day %d: %d consecutive extreme days, cap %d",
						region, season, day, run, cfg.MaxExtremeStreak)
				}
				if g.Weather.ExtremeStreak > cfg.MaxExtremeStreak {
					t.Fatalf("%s/%s day %d: streak counter %d over cap", region, season, day, g.Weather.ExtremeStreak)
				}
			}
		}
	}
}

func TestWeatherFailSoftOnMissingRows(t *testing.T) {
	cfg := DefaultWeatherConfig()
	delete(cfg.Weights, RegionBeltway)
	g := weatherTestState(RegionBeltway, SeasonSpring)
	g.Weather.Today = WeatherRain
	res := AdvanceWeather(g, cfg, g.Rand.Weather)
	if res.State != WeatherRain {
		t.Fatalf("missing weight rows should keep previous state, got %s", res.State)
	}
}

func TestExposureMitigatedByGear(t *testing.T) {
	cfg := DefaultWeatherConfig()
	g := weatherTestState(RegionHeartland, SeasonWinter)

	// Wool coat is in the starting loadout; cold snaps should not damage.
	res := weatherResult(g, cfg, WeatherColdSnap, true)
	if res.HealthDamage != 0 || !res.Mitigated {
		t.Fatalf("cold snap with wool coat: damage=%d mitigated=%v", res.HealthDamage, res.Mitigated)
	}

	// No cooler carried, so heat waves bite.
	res = weatherResult(g, cfg, WeatherHeatWave, true)
	if res.HealthDamage != cfg.Effects[WeatherHeatWave].HealthDamage || res.Mitigated {
		t.Fatalf("heat wave without cooler: damage=%d mitigated=%v", res.HealthDamage, res.Mitigated)
	}
}

func TestEncounterDeltaClamped(t *testing.T) {
	cfg := DefaultWeatherConfig()
	g := weatherTestState(RegionHeartland, SeasonSpring)
	g.ActiveEvent = &ActiveEvent{ID: "x", EncounterDelta: 10, DaysLeft: 1}
	res := weatherResult(g, cfg, WeatherStorm, false)
	if res.EncounterDelta > cfg.EncounterCeil {
		t.Fatalf("encounter delta %v over ceiling %v", res.EncounterDelta, cfg.EncounterCeil)
	}
}

func TestWeatherConfigValidateCoverage(t *testing.T) {
	cfg := DefaultWeatherConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default weather config invalid: %v", err)
	}
	delete(cfg.Effects, WeatherSmoke)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for missing effect entry")
	}
}

// The seasonal override is a fresh roll each day, not a constant of the run.
func TestSeasonalOverrideRate(t *testing.T) {
	cfg := WeatherConfig{
		Weights: map[Region]map[Season][]WeatherWeight{
			RegionHeartland: {SeasonWinter: {{State: WeatherClear, Weight: 1}}},
		},
		Effects:          DefaultWeatherConfig().Effects,
		Overrides:        []SeasonOverride{{Season: SeasonWinter, State: WeatherColdSnap, Chance: 0.20}},
		MaxExtremeStreak: 3,
	}
	seed, _ := NewRunSeed("override-rate")
	stream := seed.Stream("weather")
	g := weatherTestState(RegionHeartland, SeasonWinter)

	const days = 2000
	cold := 0
	for i := 0; i < days; i++ {
		if AdvanceWeather(g, cfg, stream).State == WeatherColdSnap {
			cold++
		}
	}
	if cold == 0 || cold == days {
		t.Fatalf("override hit %d/%d days, want a fresh roll per day", cold, days)
	}
	if cold < 300 || cold > 500 {
		t.Fatalf("override rate %d/%d outside the band around 0.20", cold, days)
	}
}
