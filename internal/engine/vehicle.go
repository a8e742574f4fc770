package engine

// Vehicle wear, breakdown rolls and repairs.

// dietWearFactor models malnutrition: a crew on short rations maintains the
// vehicle worse.
func dietWearFactor(d Diet) float64 {
	switch d {
	case DietMeager:
		return 1.1
	case DietBust:
		return 1.25
	default:
		return 1.0
	}
}

// paceWearFactor models comfort mileage: harder days grind the vehicle down.
func paceWearFactor(p Pace) float64 {
	switch p {
	case PacePushing:
		return 1.15
	case PaceGrueling:
		return 1.35
	default:
		return 1.0
	}
}

// DailyWear returns today's wear increment before the vehicle's own
// multiplier is applied.
func DailyWear(cfg VehicleConfig, diet Diet, pace Pace) float64 {
	return cfg.BaseWearRate * dietWearFactor(diet) * paceWearFactor(pace)
}

// ApplyWear accumulates wear. Wear is monotonic non-decreasing absent repair.
func ApplyWear(v *Vehicle, amount float64) {
	if amount < 0 {
		return
	}
	mult := v.WearMult
	if mult <= 0 {
		mult = 1.0
	}
	v.Wear = ClampFloat(v.Wear+amount*mult, 0, 100)
}

// BreakdownChance is the clamped per-day breakdown probability.
func BreakdownChance(cfg VehicleConfig, wear float64, pace Pace, weatherFactor float64, extreme bool) float64 {
	paceF, ok := cfg.PaceFactors[pace]
	if !ok {
		paceF = 1.0
	}
	if weatherFactor <= 0 {
		weatherFactor = 1.0
	}
	chance := cfg.BaseBreakdown * (1 + cfg.WearBeta*wear) * paceF * weatherFactor
	if extreme {
		chance += cfg.ExtremeBonus
	}
	if wear >= cfg.CriticalWear {
		chance += cfg.CriticalBonus
	}
	return Clamp01(chance)
}

// pickPart is a weighted draw over the failure-prone parts.
func pickPart(cfg VehicleConfig, stream *Stream) Part {
	total := 0
	for _, p := range AllParts {
		total += cfg.PartWeights[p]
	}
	if total <= 0 {
		return PartTire
	}
	roll := stream.Intn(total)
	for _, p := range AllParts {
		w := cfg.PartWeights[p]
		if roll < w {
			return p
		}
		roll -= w
	}
	return AllParts[len(AllParts)-1]
}

// RollBreakdown decides whether today starts a breakdown. Rolls are
// suppressed while a breakdown is already active or a repair cooldown runs.
func RollBreakdown(g *GameState, cfg VehicleConfig, pace Pace, weatherFactor float64, extreme bool, stream *Stream) (Part, bool) {
	if g.Breakdown != nil {
		return "", false
	}
	if g.Vehicle.Cooldown > 0 {
		return "", false
	}
	chance := BreakdownChance(cfg, g.Vehicle.Wear, pace, weatherFactor, extreme)
	if stream.Float64() >= chance {
		return "", false
	}
	part := pickPart(cfg, stream)
	g.Breakdown = &Breakdown{Part: part, DayStarted: g.Day}
	g.Vehicle.Health = ClampInt(g.Vehicle.Health-8, 0, 100)
	return part, true
}

// RepairMethod names how an active breakdown was resolved.
type RepairMethod string

const (
	RepairMatchingSpare RepairMethod = "matching_spare"
	RepairAnySpare      RepairMethod = "any_spare"
	RepairBudget        RepairMethod = "budget"
)

func finishRepair(g *GameState, cfg VehicleConfig) {
	g.Breakdown = nil
	g.Vehicle.Cooldown = cfg.RepairCooldownDays
	g.Vehicle.Wear = ClampFloat(g.Vehicle.Wear-10, 0, 100)
}

// RepairWithMatchingSpare consumes the spare matching the broken part.
func RepairWithMatchingSpare(g *GameState, cfg VehicleConfig) bool {
	if g.Breakdown == nil {
		return false
	}
	part := g.Breakdown.Part
	if g.Inventory.Spares[part] <= 0 {
		return false
	}
	g.Inventory.Spares[part]--
	finishRepair(g, cfg)
	return true
}

// RepairWithAnySpare cannibalizes whichever spare is on hand. Parts are
// walked in declaration order so the result is deterministic.
func RepairWithAnySpare(g *GameState, cfg VehicleConfig) bool {
	if g.Breakdown == nil {
		return false
	}
	for _, p := range AllParts {
		if g.Inventory.Spares[p] > 0 {
			g.Inventory.Spares[p]--
			finishRepair(g, cfg)
			return true
		}
	}
	return false
}

// RepairWithBudget pays for a roadside fix. Unless allowDebt is set the
// repair is refused when funds are short; the endgame guard is the only
// caller that forces debt.
func RepairWithBudget(g *GameState, cfg VehicleConfig, allowDebt bool) bool {
	if g.Breakdown == nil {
		return false
	}
	if !allowDebt && g.BudgetCents < cfg.EmergencyRepairCents {
		return false
	}
	g.BudgetCents -= cfg.EmergencyRepairCents
	finishRepair(g, cfg)
	return true
}

// AutoRepair resolves a breakdown following the configured priority order:
// matching spare, then any spare, then emergency budget.
func AutoRepair(g *GameState, cfg VehicleConfig, allowDebt bool) (RepairMethod, bool) {
	if RepairWithMatchingSpare(g, cfg) {
		return RepairMatchingSpare, true
	}
	if RepairWithAnySpare(g, cfg) {
		return RepairAnySpare, true
	}
	if RepairWithBudget(g, cfg, allowDebt) {
		return RepairBudget, true
	}
	return "", false
}

// TickVehicleDay advances cooldowns and applies critical-wear attrition.
func TickVehicleDay(g *GameState, cfg VehicleConfig) {
	if g.Vehicle.Cooldown > 0 {
		g.Vehicle.Cooldown--
	}
	if g.Vehicle.Wear >= cfg.CriticalWear {
		g.Vehicle.Health = ClampInt(g.Vehicle.Health-1, 0, 100)
	}
}
