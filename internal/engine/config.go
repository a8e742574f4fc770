package engine

import "fmt"

// Tuning tables for every subsystem. Each table ships an embedded default
// (the Default* constructors) and is validated for enum coverage at load
// time; the kernel assumes complete tables from then on.

// WeatherWeight is one entry of a region/season weighted draw.
type WeatherWeight struct {
	State  Weather `json:"state"`
	Weight int     `json:"weight"`
}

// WeatherEffect describes what a state does to the day.
type WeatherEffect struct {
	SanityDelta    int     `json:"sanity_delta"`
	MoraleDelta    int     `json:"morale_delta"`
	SupplyDelta    int     `json:"supply_delta"`
	HealthDamage   int     `json:"health_damage"`   // unmitigated exposure damage
	MitigationTag  string  `json:"mitigation_tag"`  // inventory tag that cancels HealthDamage
	TravelFactor   float64 `json:"travel_factor"`   // distance multiplier
	EncounterDelta float64 `json:"encounter_delta"` // additive daily encounter chance
	VehicleFactor  float64 `json:"vehicle_factor"`  // breakdown probability multiplier
}

// SeasonOverride probabilistically forces a season-appropriate state.
type SeasonOverride struct {
	Season Season  `json:"season"`
	State  Weather `json:"state"`
	Chance float64 `json:"chance"`
}

// WeatherConfig holds the full weather tuning document.
type WeatherConfig struct {
	Weights          map[Region]map[Season][]WeatherWeight `json:"weights"`
	Effects          map[Weather]WeatherEffect             `json:"effects"`
	Overrides        []SeasonOverride                      `json:"overrides"`
	MaxExtremeStreak int                                   `json:"max_extreme_streak"`
	EncounterBase    float64                               `json:"encounter_base"`
	EncounterFloor   float64                               `json:"encounter_floor"`
	EncounterCeil    float64                               `json:"encounter_ceil"`
}

// Validate checks enum coverage: every region/season pair needs a weight row
// and every weather state needs an effect entry. Incomplete coverage is a
// config error, not a silent neutral draw.
func (c WeatherConfig) Validate() error {
	for _, r := range AllRegions {
		bySeason, ok := c.Weights[r]
		if !ok {
			return fmt.Errorf("weather weights missing region %q", r)
		}
		for _, s := range AllSeasons {
			rows, ok := bySeason[s]
			if !ok || len(rows) == 0 {
				return fmt.Errorf("weather weights missing %s/%s", r, s)
			}
			total := 0
			for _, row := range rows {
				if !row.State.Validate() {
					return fmt.Errorf("weather weights %s/%s: unknown state %q", r, s, row.State)
				}
				if row.Weight < 0 {
					return fmt.Errorf("weather weights %s/%s: negative weight for %q", r, s, row.State)
				}
				total += row.Weight
			}
			if total <= 0 {
				return fmt.Errorf("weather weights %s/%s sum to zero", r, s)
			}
		}
	}
	for _, w := range AllWeather {
		if _, ok := c.Effects[w]; !ok {
			return fmt.Errorf("weather effects missing state %q", w)
		}
	}
	for _, o := range c.Overrides {
		if !o.Season.Validate() || !o.State.Validate() {
			return fmt.Errorf("weather override %s/%s invalid", o.Season, o.State)
		}
	}
	if c.MaxExtremeStreak < 1 {
		return fmt.Errorf("max_extreme_streak must be >= 1")
	}
	return nil
}

// VehicleConfig tunes wear and breakdown behavior.
type VehicleConfig struct {
	BaseWearRate         float64          `json:"base_wear_rate"`
	BaseBreakdown        float64          `json:"base_breakdown"`
	WearBeta             float64          `json:"wear_beta"`
	PaceFactors          map[Pace]float64 `json:"pace_factors"`
	ExtremeBonus         float64          `json:"extreme_bonus"`
	CriticalWear         float64          `json:"critical_wear"`
	CriticalBonus        float64          `json:"critical_bonus"`
	PartWeights          map[Part]int     `json:"part_weights"`
	RepairCooldownDays   int              `json:"repair_cooldown_days"`
	EmergencyRepairCents int64            `json:"emergency_repair_cents"`
}

func (c VehicleConfig) Validate() error {
	for _, p := range AllPaces {
		if _, ok := c.PaceFactors[p]; !ok {
			return fmt.Errorf("vehicle pace factors missing %q", p)
		}
	}
	total := 0
	for _, p := range AllParts {
		w, ok := c.PartWeights[p]
		if !ok {
			return fmt.Errorf("vehicle part weights missing %q", p)
		}
		if w < 0 {
			return fmt.Errorf("vehicle part weight negative for %q", p)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("vehicle part weights sum to zero")
	}
	if c.BaseBreakdown < 0 || c.BaseBreakdown > 1 {
		return fmt.Errorf("base_breakdown out of range: %v", c.BaseBreakdown)
	}
	return nil
}

// PacingConfig tunes travel distance and day accounting.
type PacingConfig struct {
	BaseMiles        float64          `json:"base_miles"`
	PaceMultipliers  map[Pace]float64 `json:"pace_multipliers"`
	DietSupplyCost   map[Diet]int     `json:"diet_supply_cost"`
	DietHealthDelta  map[Diet]int     `json:"diet_health_delta"`
	DietMoraleDelta  map[Diet]int     `json:"diet_morale_delta"`
	PartialRatio     float64          `json:"partial_ratio"`
	AbsoluteFloor    float64          `json:"absolute_floor"`
	StopWindow       int              `json:"stop_window"`
	StopCapDefault   int              `json:"stop_cap_default"`
	StopCapDeepCons  int              `json:"stop_cap_deep_conservative"`
	RouteMiles       float64          `json:"route_miles"`
	CrossingInterval float64          `json:"crossing_interval"`
}

func (c PacingConfig) Validate() error {
	for _, p := range AllPaces {
		if _, ok := c.PaceMultipliers[p]; !ok {
			return fmt.Errorf("pacing multipliers missing %q", p)
		}
	}
	for _, d := range AllDiets {
		if _, ok := c.DietSupplyCost[d]; !ok {
			return fmt.Errorf("diet supply cost missing %q", d)
		}
		if _, ok := c.DietHealthDelta[d]; !ok {
			return fmt.Errorf("diet health delta missing %q", d)
		}
		if _, ok := c.DietMoraleDelta[d]; !ok {
			return fmt.Errorf("diet morale delta missing %q", d)
		}
	}
	if c.BaseMiles <= 0 || c.RouteMiles <= 0 || c.CrossingInterval <= 0 {
		return fmt.Errorf("pacing distances must be positive")
	}
	if c.StopWindow < 2 {
		return fmt.Errorf("stop_window must be >= 2")
	}
	return nil
}

// StopCap returns how many Stop days the rolling window tolerates before the
// ratio floor demotes a further Stop to Partial. The conservative+deep
// combination historically tolerated one extra stop; both values live in the
// config document rather than a hard-coded branch.
func (c PacingConfig) StopCap(policy Policy, mode Mode) int {
	if policy == PolicyConservative && mode == ModeDeep {
		return c.StopCapDeepCons
	}
	return c.StopCapDefault
}

// CrossingWeights is a Pass-less weighted pair; permits and successful bribes
// bypass the draw entirely.
type CrossingWeights struct {
	Detour   int `json:"detour"`
	Terminal int `json:"terminal"`
}

// CrossingConfig tunes checkpoint/river crossing resolution.
type CrossingConfig struct {
	Weights        map[Policy]CrossingWeights `json:"weights"`
	BribeWeights   map[Policy]CrossingWeights `json:"bribe_weights"` // stricter, used after a failed bribe
	BribeBase      float64                    `json:"bribe_base"`
	BribeDeepMalus float64                    `json:"bribe_deep_malus"`
	BribeMin       float64                    `json:"bribe_min"`
	BribeMax       float64                    `json:"bribe_max"`
	DetourTiers    []int                      `json:"detour_tiers"`
}

func (c CrossingConfig) Validate() error {
	for _, p := range AllPolicies {
		w, ok := c.Weights[p]
		if !ok {
			return fmt.Errorf("crossing weights missing policy %q", p)
		}
		if w.Detour+w.Terminal <= 0 {
			return fmt.Errorf("crossing weights for %q sum to zero", p)
		}
		bw, ok := c.BribeWeights[p]
		if !ok {
			return fmt.Errorf("crossing bribe weights missing policy %q", p)
		}
		if bw.Detour+bw.Terminal <= 0 {
			return fmt.Errorf("crossing bribe weights for %q sum to zero", p)
		}
	}
	if len(c.DetourTiers) == 0 {
		return fmt.Errorf("detour tiers empty")
	}
	return nil
}

// CampConfig tunes camp exchanges and the spare-part shop.
type CampConfig struct {
	RestSanity      int                `json:"rest_sanity"`
	RestHealth      int                `json:"rest_health"`
	RestSupplyCost  int                `json:"rest_supply_cost"`
	ForageSupplies  int                `json:"forage_supplies"`
	ForageSanity    int                `json:"forage_sanity"`
	WrenchWearDrop  float64            `json:"wrench_wear_drop"`
	WrenchMorale    int                `json:"wrench_morale"`
	Cooldowns       map[CampAction]int `json:"cooldowns"`
	SparePriceCents map[Part]int64     `json:"spare_price_cents"`
}

func (c CampConfig) Validate() error {
	for _, a := range AllCampActions {
		if _, ok := c.Cooldowns[a]; !ok {
			return fmt.Errorf("camp cooldowns missing action %q", a)
		}
	}
	for _, p := range AllParts {
		if _, ok := c.SparePriceCents[p]; !ok {
			return fmt.Errorf("camp spare prices missing part %q", p)
		}
	}
	return nil
}

// EndgameConfig tunes the near-destination safety net.
type EndgameConfig struct {
	ActivationMiles map[Policy]float64 `json:"activation_miles"`
	GuardMiles      float64            `json:"guard_miles"`
	HealthFloor     int                `json:"health_floor"`
	WearReset       float64            `json:"wear_reset"`
	CooldownDays    int                `json:"cooldown_days"`
	WearMultiplier  float64            `json:"wear_multiplier"`
}

func (c EndgameConfig) Validate() error {
	for _, p := range AllPolicies {
		if _, ok := c.ActivationMiles[p]; !ok {
			return fmt.Errorf("endgame activation miles missing policy %q", p)
		}
	}
	return nil
}

// BossConfig tunes the final confrontation.
type BossConfig struct {
	Rounds           int                `json:"rounds"`
	PantsPerRound    int                `json:"pants_per_round"`
	SanityPerRound   int                `json:"sanity_per_round"`
	DistanceRequired float64            `json:"distance_required"`
	MinChance        map[Policy]float64 `json:"min_chance"`
	MaxChance        map[Policy]float64 `json:"max_chance"`
	DeepAggroBonus   float64            `json:"deep_aggro_bonus"`
}

func (c BossConfig) Validate() error {
	for _, p := range AllPolicies {
		if _, ok := c.MinChance[p]; !ok {
			return fmt.Errorf("boss min chance missing policy %q", p)
		}
		if _, ok := c.MaxChance[p]; !ok {
			return fmt.Errorf("boss max chance missing policy %q", p)
		}
	}
	if c.DistanceRequired <= 0 {
		return fmt.Errorf("boss distance_required must be positive")
	}
	return nil
}

// Tuning bundles every subsystem table.
type Tuning struct {
	Weather  WeatherConfig  `json:"weather"`
	Vehicle  VehicleConfig  `json:"vehicle"`
	Pacing   PacingConfig   `json:"pacing"`
	Crossing CrossingConfig `json:"crossings"`
	Camp     CampConfig     `json:"camp"`
	Endgame  EndgameConfig  `json:"endgame"`
	Boss     BossConfig     `json:"boss"`
}

func (t Tuning) Validate() error {
	if err := t.Weather.Validate(); err != nil {
		return err
	}
	if err := t.Vehicle.Validate(); err != nil {
		return err
	}
	if err := t.Pacing.Validate(); err != nil {
		return err
	}
	if err := t.Crossing.Validate(); err != nil {
		return err
	}
	if err := t.Camp.Validate(); err != nil {
		return err
	}
	if err := t.Endgame.Validate(); err != nil {
		return err
	}
	return t.Boss.Validate()
}
