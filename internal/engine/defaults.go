package engine

// Embedded default tuning. These are the values the simulation falls back to
// when a tuning document is missing or fails to parse.

func DefaultWeatherConfig() WeatherConfig {
	mk := func(clear, rain, cold, storm, heat, smoke int) []WeatherWeight {
		return []WeatherWeight{
			{State: WeatherClear, Weight: clear},
			{State: WeatherRain, Weight: rain},
			{State: WeatherColdSnap, Weight: cold},
			{State: WeatherStorm, Weight: storm},
			{State: WeatherHeatWave, Weight: heat},
			{State: WeatherSmoke, Weight: smoke},
		}
	}
	weights := map[Region]map[Season][]WeatherWeight{
		RegionHeartland: {
			SeasonSpring: mk(45, 25, 5, 15, 5, 5),
			SeasonSummer: mk(40, 15, 0, 15, 25, 5),
			SeasonAutumn: mk(50, 20, 10, 10, 5, 5),
			SeasonWinter: mk(35, 10, 35, 15, 0, 5),
		},
		RegionHighDesert: {
			SeasonSpring: mk(55, 10, 5, 10, 15, 5),
			SeasonSummer: mk(35, 5, 0, 10, 35, 15),
			SeasonAutumn: mk(55, 10, 5, 10, 10, 10),
			SeasonWinter: mk(45, 5, 30, 10, 0, 10),
		},
		RegionRustBelt: {
			SeasonSpring: mk(40, 30, 10, 10, 5, 5),
			SeasonSummer: mk(40, 20, 0, 15, 15, 10),
			SeasonAutumn: mk(40, 30, 10, 10, 5, 5),
			SeasonWinter: mk(25, 10, 40, 20, 0, 5),
		},
		RegionBeltway: {
			SeasonSpring: mk(45, 30, 5, 10, 5, 5),
			SeasonSummer: mk(40, 20, 0, 10, 25, 5),
			SeasonAutumn: mk(50, 25, 5, 10, 5, 5),
			SeasonWinter: mk(35, 15, 30, 15, 0, 5),
		},
	}
	effects := map[Weather]WeatherEffect{
		WeatherClear:    {MoraleDelta: 1, TravelFactor: 1.0, EncounterDelta: 0, VehicleFactor: 1.0},
		WeatherRain:     {MoraleDelta: -1, TravelFactor: 0.9, EncounterDelta: 0.02, VehicleFactor: 1.1},
		WeatherColdSnap: {SanityDelta: -1, HealthDamage: 3, MitigationTag: TagWoolCoat, TravelFactor: 0.85, EncounterDelta: 0.03, VehicleFactor: 1.15},
		WeatherStorm:    {SanityDelta: -2, MoraleDelta: -2, TravelFactor: 0.6, EncounterDelta: 0.05, VehicleFactor: 1.35},
		WeatherHeatWave: {SanityDelta: -1, HealthDamage: 2, MitigationTag: TagCooler, TravelFactor: 0.8, EncounterDelta: 0.04, VehicleFactor: 1.25},
		WeatherSmoke:    {SanityDelta: -2, SupplyDelta: -1, TravelFactor: 0.7, EncounterDelta: 0.05, VehicleFactor: 1.2},
	}
	return WeatherConfig{
		Weights: weights,
		Effects: effects,
		Overrides: []SeasonOverride{
			{Season: SeasonWinter, State: WeatherColdSnap, Chance: 0.20},
			{Season: SeasonSummer, State: WeatherHeatWave, Chance: 0.15},
		},
		MaxExtremeStreak: 3,
		EncounterBase:    0.12,
		EncounterFloor:   0.0,
		EncounterCeil:    0.45,
	}
}

func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		BaseWearRate:  1.6,
		BaseBreakdown: 0.04,
		WearBeta:      0.012,
		PaceFactors: map[Pace]float64{
			PaceSteady:   1.0,
			PacePushing:  1.25,
			PaceGrueling: 1.6,
		},
		ExtremeBonus:  0.03,
		CriticalWear:  85,
		CriticalBonus: 0.05,
		PartWeights: map[Part]int{
			PartTire:       45,
			PartBattery:    25,
			PartAlternator: 18,
			PartFuelPump:   12,
		},
		RepairCooldownDays:   2,
		EmergencyRepairCents: 7500,
	}
}

func DefaultPacingConfig() PacingConfig {
	return PacingConfig{
		BaseMiles: 180,
		PaceMultipliers: map[Pace]float64{
			PaceSteady:   1.0,
			PacePushing:  1.2,
			PaceGrueling: 1.45,
		},
		DietSupplyCost: map[Diet]int{
			DietFull:   4,
			DietMeager: 2,
			DietBust:   1,
		},
		DietHealthDelta: map[Diet]int{
			DietFull:   1,
			DietMeager: -1,
			DietBust:   -3,
		},
		DietMoraleDelta: map[Diet]int{
			DietFull:   1,
			DietMeager: 0,
			DietBust:   -2,
		},
		PartialRatio:     0.4,
		AbsoluteFloor:    20,
		StopWindow:       5,
		StopCapDefault:   1,
		StopCapDeepCons:  2,
		RouteMiles:       5000,
		CrossingInterval: 1000,
	}
}

func DefaultCrossingConfig() CrossingConfig {
	return CrossingConfig{
		Weights: map[Policy]CrossingWeights{
			PolicyConservative: {Detour: 85, Terminal: 15},
			PolicyModerate:     {Detour: 80, Terminal: 20},
			PolicyAggressive:   {Detour: 72, Terminal: 28},
		},
		BribeWeights: map[Policy]CrossingWeights{
			PolicyConservative: {Detour: 75, Terminal: 25},
			PolicyModerate:     {Detour: 70, Terminal: 30},
			PolicyAggressive:   {Detour: 60, Terminal: 40},
		},
		BribeBase:      0.55,
		BribeDeepMalus: 0.15,
		BribeMin:       0.10,
		BribeMax:       0.85,
		DetourTiers:    []int{2, 3, 4},
	}
}

func DefaultCampConfig() CampConfig {
	return CampConfig{
		RestSanity:     6,
		RestHealth:     4,
		RestSupplyCost: 2,
		ForageSupplies: 5,
		ForageSanity:   -1,
		WrenchWearDrop: 18,
		WrenchMorale:   2,
		Cooldowns: map[CampAction]int{
			CampRest:   1,
			CampForage: 2,
			CampWrench: 3,
			CampShop:   0,
		},
		SparePriceCents: map[Part]int64{
			PartTire:       4500,
			PartBattery:    9500,
			PartAlternator: 16000,
			PartFuelPump:   12500,
		},
	}
}

func DefaultEndgameConfig() EndgameConfig {
	return EndgameConfig{
		ActivationMiles: map[Policy]float64{
			PolicyConservative: 4200,
			PolicyModerate:     4400,
			PolicyAggressive:   4600,
		},
		GuardMiles:     4800,
		HealthFloor:    25,
		WearReset:      40,
		CooldownDays:   3,
		WearMultiplier: 0.75,
	}
}

func DefaultBossConfig() BossConfig {
	return BossConfig{
		Rounds:           3,
		PantsPerRound:    8,
		SanityPerRound:   -6,
		DistanceRequired: 5000,
		MinChance: map[Policy]float64{
			PolicyConservative: 0.05,
			PolicyModerate:     0.05,
			PolicyAggressive:   0.10,
		},
		MaxChance: map[Policy]float64{
			PolicyConservative: 0.55,
			PolicyModerate:     0.65,
			PolicyAggressive:   0.75,
		},
		DeepAggroBonus: 0.05,
	}
}

// DefaultTuning returns the complete embedded tuning bundle.
func DefaultTuning() Tuning {
	return Tuning{
		Weather:  DefaultWeatherConfig(),
		Vehicle:  DefaultVehicleConfig(),
		Pacing:   DefaultPacingConfig(),
		Crossing: DefaultCrossingConfig(),
		Camp:     DefaultCampConfig(),
		Endgame:  DefaultEndgameConfig(),
		Boss:     DefaultBossConfig(),
	}
}
