package ui

import (
	"testing"

	"github.com/DaanHessen/trail-tui/internal/engine"
)

func TestShareCodeReplayKeepsToken(t *testing.T) {
	const token = "DP-ORANGE42"
	m := &model{}
	m.applyShareCode(token)
	if m.preMode != engine.ModeDeep {
		t.Fatalf("mode not carried from share code: %s", m.preMode)
	}
	seed, err := m.resolveRunSeed()
	if err != nil {
		t.Fatalf("resolve replayed seed: %v", err)
	}
	g := engine.NewGameState(seed, m.preMode, m.prePolicy)
	if got := engine.EncodeShareCode(g.Mode, g.SeedRoot); got != token {
		t.Fatalf("replayed run re-encodes to %s, want %s", got, token)
	}
}

func TestEditedSeedTextOverridesShareCode(t *testing.T) {
	m := &model{}
	m.applyShareCode("TR-WILLOW07")
	m.preSeedText = "my-own-seed"
	seed, err := m.resolveRunSeed()
	if err != nil {
		t.Fatalf("resolve typed seed: %v", err)
	}
	want, _ := engine.NewRunSeed("my-own-seed")
	if seed.Root() != want.Root() {
		t.Fatal("typed seed text must be hashed, not replayed from the stale share code")
	}
}

func TestCycleHelpersWrapAround(t *testing.T) {
	p := engine.PaceSteady
	for i := 0; i < 3; i++ {
		p = cyclePace(p)
	}
	if p != engine.PaceSteady {
		t.Fatalf("pace cycle does not wrap: %s", p)
	}
	d := engine.DietFull
	for i := 0; i < 3; i++ {
		d = cycleDiet(d)
	}
	if d != engine.DietFull {
		t.Fatalf("diet cycle does not wrap: %s", d)
	}
	if cycleMode(cycleMode(engine.ModeStandard)) != engine.ModeStandard {
		t.Fatal("mode cycle does not wrap")
	}
}

func TestNextThemeNameWraps(t *testing.T) {
	names := themeNames()
	if len(names) < 2 {
		t.Fatal("expected multiple palettes")
	}
	cur := names[0]
	for range names {
		cur = nextThemeName(cur, 1)
	}
	if cur != names[0] {
		t.Fatalf("theme cycle does not wrap: %s", cur)
	}
	if nextThemeName(names[0], -1) != names[len(names)-1] {
		t.Fatal("negative step should wrap to last theme")
	}
}

func TestStatBarBounds(t *testing.T) {
	if got := bar(0); got != "··········" {
		t.Fatalf("empty bar wrong: %q", got)
	}
	if got := bar(100); got != "██████████" {
		t.Fatalf("full bar wrong: %q", got)
	}
	if len([]rune(bar(250))) != 10 {
		t.Fatal("bar must clamp above 100")
	}
}
