package engine

import "fmt"

// Camp subsystem: scripted resource exchanges on a Stop day, gated by
// per-action cooldown counters.

// CampResult summarizes what a camp day did.
type CampResult struct {
	Action CampAction `json:"action"`
	Delta  Stats      `json:"delta"`
	Bought Part       `json:"bought,omitempty"`
	Spent  int64      `json:"spent,omitempty"`
}

// CanCamp reports whether the action is off cooldown.
func CanCamp(g *GameState, action CampAction) bool {
	return g.CampCooldowns[action] <= 0
}

// TickCampCooldowns decrements every cooldown, saturating at zero.
func TickCampCooldowns(g *GameState) {
	for action, days := range g.CampCooldowns {
		g.CampCooldowns[action] = satSub(days, 1)
	}
}

// ApplyCamp performs one camp exchange. The caller books the day as a Stop;
// camp never produces mileage.
func ApplyCamp(g *GameState, cfg CampConfig, action CampAction) (CampResult, error) {
	if !action.Validate() {
		return CampResult{}, fmt.Errorf("unknown camp action %q", action)
	}
	if !CanCamp(g, action) {
		return CampResult{}, fmt.Errorf("camp action %q on cooldown for %d more days", action, g.CampCooldowns[action])
	}
	res := CampResult{Action: action}
	switch action {
	case CampRest:
		res.Delta = Stats{Sanity: cfg.RestSanity, HP: cfg.RestHealth, Supplies: -cfg.RestSupplyCost}
	case CampForage:
		res.Delta = Stats{Supplies: cfg.ForageSupplies, Sanity: cfg.ForageSanity}
	case CampWrench:
		g.Vehicle.Wear = ClampFloat(g.Vehicle.Wear-cfg.WrenchWearDrop, 0, 100)
		res.Delta = Stats{Morale: cfg.WrenchMorale}
	case CampShop:
		// Shop purchases go through BuySpare; the day itself is free.
	}
	g.Stats.Apply(res.Delta)
	g.CampCooldowns[action] = cfg.Cooldowns[action]
	return res, nil
}

// BuySpare exchanges budget for a spare part at the camp shop. Player spends
// never drive the budget negative.
func BuySpare(g *GameState, cfg CampConfig, part Part) (CampResult, error) {
	if !part.Validate() {
		return CampResult{}, fmt.Errorf("unknown part %q", part)
	}
	price := cfg.SparePriceCents[part]
	if g.BudgetCents < price {
		return CampResult{}, fmt.Errorf("cannot afford %s: need %d cents, have %d", part, price, g.BudgetCents)
	}
	g.BudgetCents -= price
	if g.Inventory.Spares == nil {
		g.Inventory.Spares = map[Part]int{}
	}
	g.Inventory.Spares[part]++
	return CampResult{Action: CampShop, Bought: part, Spent: price}, nil
}
