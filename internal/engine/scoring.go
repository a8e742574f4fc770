package engine

// Scoring and ending selection.

// JourneyScore totals the run so far: distance is the backbone, with the
// social and material stats weighing in and elapsed days dragging.
func JourneyScore(g *GameState) float64 {
	score := g.MilesTraveled
	score += float64(g.Stats.Credibility) * 8
	score += float64(g.Stats.Morale) * 5
	score += float64(g.Stats.Allies) * 25
	score += float64(g.Stats.Supplies) * 3
	score += float64(g.Stats.HP) * 2
	if g.BudgetCents > 0 {
		score += float64(g.BudgetCents) / 100
	}
	score -= float64(g.Day) * 2
	if score < 0 {
		score = 0
	}
	return score
}

// SelectEnding applies the strict failure-cause precedence. The order
// encodes which failure explains a lost run and must not be reordered
// without a deliberate design change.
func SelectEnding(g *GameState) Ending {
	switch {
	case g.Stats.Pants >= PantsCeiling:
		return EndingPantsed
	case g.Stats.Sanity <= StatFloor:
		return EndingUnravelled
	case g.Stats.HP <= StatFloor || g.Stats.Supplies <= StatFloor:
		return EndingDestitute
	case !g.BossWon:
		return EndingFloodedOut
	default:
		return EndingVictory
	}
}

// FinalScore is the end-of-run point total with an ending multiplier.
func FinalScore(g *GameState, ending Ending) int {
	base := JourneyScore(g)
	switch ending {
	case EndingVictory:
		base *= 1.5
	case EndingFloodedOut:
		base *= 0.8
	case EndingDestitute:
		base *= 0.5
	case EndingUnravelled, EndingPantsed:
		base *= 0.25
	}
	return SafeInt(base)
}
