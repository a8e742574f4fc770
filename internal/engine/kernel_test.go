package engine

import (
	"bytes"
	"errors"
	"testing"
)

func kernelTestController(t *testing.T) *Controller {
	t.Helper()
	ctrl, err := NewController(DefaultTuning())
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return ctrl
}

// scriptedDecision is a pure function of the day number so two runs of the
// same seed consume identical inputs.
func scriptedDecision(day int) Decision {
	switch {
	case day%7 == 0:
		return Decision{Pace: PaceSteady, Diet: DietMeager, Camp: CampRest}
	case day%3 == 0:
		return Decision{Pace: PaceSteady, Diet: DietMeager, Camp: CampForage}
	default:
		return Decision{Pace: PacePushing, Diet: DietMeager, BribeIntent: day%2 == 0}
	}
}

func runScripted(t *testing.T, ctrl *Controller, g *GameState, maxDays int) {
	t.Helper()
	for i := 0; i < maxDays; i++ {
		outcome, err := ctrl.TickDay(g, scriptedDecision(g.Day))
		if err != nil {
			t.Fatalf("tick day %d: %v", g.Day, err)
		}
		if outcome.Ended {
			return
		}
	}
}

func TestTickDayAdvancesExactlyOneDay(t *testing.T) {
	ctrl := kernelTestController(t)
	seed, _ := NewRunSeed("one-day")
	g := NewGameState(seed, ModeStandard, PolicyModerate)

	outcome, err := ctrl.TickDay(g, Decision{Pace: PaceSteady, Diet: DietMeager})
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if g.Day != 2 || g.Phase != PhaseDayEnded {
		t.Fatalf("day=%d phase=%s after one tick", g.Day, g.Phase)
	}
	if len(g.Ledger) != 1 || g.Ledger[0].DayIndex != 1 {
		t.Fatalf("ledger not appended: %+v", g.Ledger)
	}
	if outcome.Record.DayIndex != 1 {
		t.Fatalf("outcome record day = %d", outcome.Record.DayIndex)
	}
	if len(g.Decisions) != 1 {
		t.Fatalf("decision not recorded: %d", len(g.Decisions))
	}
	if len(outcome.Events) == 0 {
		t.Fatal("tick produced no events")
	}
}

func TestTickDayRejectsFinishedRun(t *testing.T) {
	ctrl := kernelTestController(t)
	seed, _ := NewRunSeed("finished")
	g := NewGameState(seed, ModeStandard, PolicyModerate)
	g.RunOver = true
	if _, err := ctrl.TickDay(g, Decision{}); !errors.Is(err, ErrRunOver) {
		t.Fatalf("expected ErrRunOver, got %v", err)
	}
}

func TestTickDayRejectsMidDayReentry(t *testing.T) {
	ctrl := kernelTestController(t)
	seed, _ := NewRunSeed("reentry")
	g := NewGameState(seed, ModeStandard, PolicyModerate)
	g.Phase = PhaseDayInitialized
	if _, err := ctrl.TickDay(g, Decision{}); err == nil {
		t.Fatal("mid-day re-entry accepted")
	}
}

func TestRunDeterministicEndToEnd(t *testing.T) {
	ctrl := kernelTestController(t)
	seed1, _ := NewRunSeed("replay-me")
	seed2, _ := NewRunSeed("replay-me")
	g1 := NewGameState(seed1, ModeStandard, PolicyModerate)
	g2 := NewGameState(seed2, ModeStandard, PolicyModerate)

	runScripted(t, ctrl, g1, 400)
	runScripted(t, ctrl, g2, 400)

	s1, err := g1.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	s2, err := g2.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatal("identical seeds and decisions produced different final states")
	}
	if len(g1.Ledger) == 0 {
		t.Fatal("run produced no ledger")
	}
	for i, rec := range g1.Ledger {
		if rec.DayIndex != i+1 {
			t.Fatalf("ledger gap at %d: day %d", i, rec.DayIndex)
		}
	}
}

func TestSnapshotMidRunResume(t *testing.T) {
	ctrl := kernelTestController(t)
	seedA, _ := NewRunSeed("pause-resume")
	seedB, _ := NewRunSeed("pause-resume")
	full := NewGameState(seedA, ModeStandard, PolicyModerate)
	paused := NewGameState(seedB, ModeStandard, PolicyModerate)

	const total, splitAt = 40, 15

	ticksLeft := total
	for ticksLeft > 0 && !full.RunOver {
		if _, err := ctrl.TickDay(full, scriptedDecision(full.Day)); err != nil {
			t.Fatalf("full run tick day %d: %v", full.Day, err)
		}
		ticksLeft--
	}

	ticksLeft = total
	for i := 0; i < splitAt && !paused.RunOver; i++ {
		if _, err := ctrl.TickDay(paused, scriptedDecision(paused.Day)); err != nil {
			t.Fatalf("pre-pause tick day %d: %v", paused.Day, err)
		}
		ticksLeft--
	}

	data, err := paused.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	resumed, err := RestoreSnapshot(data)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	for ticksLeft > 0 && !resumed.RunOver {
		if _, err := ctrl.TickDay(resumed, scriptedDecision(resumed.Day)); err != nil {
			t.Fatalf("post-resume tick day %d: %v", resumed.Day, err)
		}
		ticksLeft--
	}

	sF, _ := full.Snapshot()
	sR, _ := resumed.Snapshot()
	if !bytes.Equal(sF, sR) {
		t.Fatal("resumed run diverged from the uninterrupted run")
	}
}

func TestRunEndsWhenSuppliesExhausted(t *testing.T) {
	ctrl := kernelTestController(t)
	seed, _ := NewRunSeed("empty-larder")
	g := NewGameState(seed, ModeStandard, PolicyModerate)
	g.Stats.Supplies = 1

	var ended bool
	var ending Ending
	for i := 0; i < 10 && !ended; i++ {
		outcome, err := ctrl.TickDay(g, Decision{Pace: PaceSteady, Diet: DietBust})
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		ended = outcome.Ended
		ending = outcome.Ending
	}
	if !ended {
		t.Fatal("run should end once supplies hit zero")
	}
	if ending != EndingDestitute {
		t.Fatalf("ending = %s, want destitute", ending)
	}
	if _, err := ctrl.TickDay(g, Decision{}); !errors.Is(err, ErrRunOver) {
		t.Fatalf("ticking a finished run: %v", err)
	}
}

func TestInvalidDecisionFieldsFallBack(t *testing.T) {
	ctrl := kernelTestController(t)
	seed, _ := NewRunSeed("defaults")
	g := NewGameState(seed, ModeStandard, PolicyModerate)
	if _, err := ctrl.TickDay(g, Decision{Pace: "sprint", Diet: "feast"}); err != nil {
		t.Fatalf("tick with bogus decision: %v", err)
	}
	if d := g.Decisions[0]; d.Pace != PaceSteady || d.Diet != DietMeager {
		t.Fatalf("decision not normalized: %+v", d)
	}
}

func TestControllerRejectsBrokenTuning(t *testing.T) {
	tuning := DefaultTuning()
	delete(tuning.Weather.Effects, WeatherStorm)
	if _, err := NewController(tuning); err == nil {
		t.Fatal("incomplete tuning accepted")
	}
}
