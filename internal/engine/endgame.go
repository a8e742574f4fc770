package engine

// Endgame controller: the near-destination safety net that keeps a run from
// dying to an unwinnable vehicle failure within sight of the route's end.

// EndgameActivate flips the controller on once cumulative distance passes
// the policy threshold. Idempotent.
func EndgameActivate(g *GameState, cfg EndgameConfig) bool {
	if g.Endgame.Active {
		return false
	}
	if g.MilesTraveled < cfg.ActivationMiles[g.Policy] {
		return false
	}
	g.Endgame.Active = true
	return true
}

// applyStabilizers enforces the configured vehicle floor: health floor, wear
// reset, breakdown cooldown and a gentler wear multiplier going forward.
func applyStabilizers(g *GameState, cfg EndgameConfig) {
	if g.Vehicle.Health < cfg.HealthFloor {
		g.Vehicle.Health = cfg.HealthFloor
	}
	g.Vehicle.Wear = ClampFloat(cfg.WearReset, 0, 100)
	g.Vehicle.Cooldown = cfg.CooldownDays
	g.Vehicle.WearMult = cfg.WearMultiplier
}

// EndgameRepair handles the first breakdown after activation: automatic
// field repair through the priority order, then stabilizers regardless of
// whether a repair method succeeded. Only fires once per run.
func EndgameRepair(g *GameState, cfg EndgameConfig, vcfg VehicleConfig) (RepairMethod, bool) {
	if !g.Endgame.Active || g.Endgame.RepairUsed || g.Breakdown == nil {
		return "", false
	}
	g.Endgame.RepairUsed = true
	method, ok := AutoRepair(g, vcfg, true)
	if !ok {
		// No spare and no funds even in debt would mean AutoRepair's budget
		// branch failed, which cannot happen with allowDebt; keep the
		// breakdown cleared contract anyway.
		g.Breakdown = nil
	}
	applyStabilizers(g, cfg)
	return method, true
}

// EndgameGuard forbids a terminal (zero-health) vehicle before the guard
// mileage: stabilize and flag a mandatory rest instead of ending the run.
func EndgameGuard(g *GameState, cfg EndgameConfig) bool {
	if g.Vehicle.Health > 0 {
		return false
	}
	if g.MilesTraveled >= cfg.GuardMiles {
		return false
	}
	applyStabilizers(g, cfg)
	g.Endgame.GuardTripped = true
	g.Endgame.MandatoryRest = true
	return true
}
