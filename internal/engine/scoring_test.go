package engine

import "testing"

func scoringTestState() *GameState {
	seed, _ := NewRunSeed("scoring-fixture")
	return NewGameState(seed, ModeStandard, PolicyModerate)
}

func TestSelectEndingPrecedence(t *testing.T) {
	cases := []struct {
		name string
		prep func(*GameState)
		want Ending
	}{
		{"pants beats everything", func(g *GameState) {
			g.Stats.Pants = 100
			g.Stats.Sanity = 0
			g.Stats.HP = 0
			g.BossWon = false
		}, EndingPantsed},
		{"sanity beats health", func(g *GameState) {
			g.Stats.Sanity = 0
			g.Stats.HP = 0
		}, EndingUnravelled},
		{"health exhaustion", func(g *GameState) {
			g.Stats.HP = 0
		}, EndingDestitute},
		{"supplies exhaustion", func(g *GameState) {
			g.Stats.Supplies = 0
		}, EndingDestitute},
		{"boss loss", func(g *GameState) {
			g.BossResolved = true
			g.BossWon = false
		}, EndingFloodedOut},
		{"victory", func(g *GameState) {
			g.BossResolved = true
			g.BossWon = true
		}, EndingVictory},
	}
	for _, c := range cases {
		g := scoringTestState()
		c.prep(g)
		if got := SelectEnding(g); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestJourneyScoreFloorsAtZero(t *testing.T) {
	g := scoringTestState()
	g.Stats = Stats{}
	g.BudgetCents = -50000
	g.MilesTraveled = 0
	g.Day = 300
	if score := JourneyScore(g); score != 0 {
		t.Fatalf("score = %v, want 0", score)
	}
}

func TestJourneyScoreIgnoresDebt(t *testing.T) {
	g := scoringTestState()
	g.MilesTraveled = 1000
	base := JourneyScore(g)
	g.BudgetCents = -999999
	if JourneyScore(g) >= base {
		t.Fatal("debt should not raise the score")
	}
}

func TestFinalScoreMultipliers(t *testing.T) {
	g := scoringTestState()
	g.MilesTraveled = 2000
	base := JourneyScore(g)

	victory := FinalScore(g, EndingVictory)
	flooded := FinalScore(g, EndingFloodedOut)
	destitute := FinalScore(g, EndingDestitute)
	pantsed := FinalScore(g, EndingPantsed)

	if victory != SafeInt(base*1.5) {
		t.Fatalf("victory score = %d, want %d", victory, SafeInt(base*1.5))
	}
	if !(victory > flooded && flooded > destitute && destitute > pantsed) {
		t.Fatalf("multiplier ordering broken: %d %d %d %d", victory, flooded, destitute, pantsed)
	}
}
