package engine

// Boss minigame: a fixed number of attrition rounds, then one draw against a
// score-derived win probability.

type BossOutcome string

const (
	BossOutcomePantsedOut    BossOutcome = "pantsed_out"    // pants ceiling mid-round
	BossOutcomeCrackedUp     BossOutcome = "cracked_up"     // sanity floor mid-round
	BossOutcomeSurvivedFlood BossOutcome = "survived_flood" // endured but lost the final draw
	BossOutcomePassedCloture BossOutcome = "passed_cloture" // won
)

// BossResult is transient; the kernel copies the verdict onto GameState.
type BossResult struct {
	Outcome BossOutcome `json:"outcome"`
	Rounds  int         `json:"rounds"`
	Chance  float64     `json:"chance"`
	Won     bool        `json:"won"`
}

// WinChance derives the final-draw probability: journey score over the
// distance threshold, clamped to the policy range, with a small bonus for
// the deep+aggressive combination.
func WinChance(g *GameState, cfg BossConfig) float64 {
	raw := JourneyScore(g) / cfg.DistanceRequired
	chance := ClampFloat(raw, cfg.MinChance[g.Policy], cfg.MaxChance[g.Policy])
	if g.Mode == ModeDeep && g.Policy == PolicyAggressive {
		chance += cfg.DeepAggroBonus
	}
	return Clamp01(chance)
}

// RunBoss plays the confrontation to completion and marks the state
// resolved. Attrition deltas are applied to the live stats, so a loss here
// is visible to the ending selector.
func RunBoss(g *GameState, cfg BossConfig, stream *Stream) BossResult {
	res := BossResult{}
	for round := 0; round < cfg.Rounds; round++ {
		res.Rounds = round + 1
		g.Stats.Apply(Stats{Pants: cfg.PantsPerRound, Sanity: cfg.SanityPerRound})
		if g.Stats.Pants >= PantsCeiling {
			res.Outcome = BossOutcomePantsedOut
			return finishBoss(g, res)
		}
		if g.Stats.Sanity <= StatFloor {
			res.Outcome = BossOutcomeCrackedUp
			return finishBoss(g, res)
		}
	}
	res.Chance = WinChance(g, cfg)
	if stream.Float64() < res.Chance {
		res.Outcome = BossOutcomePassedCloture
		res.Won = true
	} else {
		res.Outcome = BossOutcomeSurvivedFlood
	}
	return finishBoss(g, res)
}

func finishBoss(g *GameState, res BossResult) BossResult {
	g.BossResolved = true
	g.BossWon = res.Won
	g.BossOutcome = res.Outcome
	return res
}
