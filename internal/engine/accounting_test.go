package engine

import "testing"

func accountingTestState(mode Mode, policy Policy) *GameState {
	seed, _ := NewRunSeed("accounting-fixture")
	return NewGameState(seed, mode, policy)
}

func TestClassifyDay(t *testing.T) {
	cases := []struct {
		miles, expected float64
		want            DayKind
	}{
		{0, 180, DayStop},
		{-5, 180, DayStop},
		{180, 180, DayFull},
		{135, 180, DayFull}, // exactly 0.75
		{134, 180, DayPartial},
		{40, 180, DayPartial},
		{10, 0, DayPartial}, // degenerate expectation never yields Full
	}
	for _, c := range cases {
		if got := ClassifyDay(c.miles, c.expected); got != c.want {
			t.Fatalf("ClassifyDay(%v, %v) = %s, want %s", c.miles, c.expected, got, c.want)
		}
	}
}

func TestStopCapDemotion(t *testing.T) {
	cfg := DefaultPacingConfig()
	g := accountingTestState(ModeStandard, PolicyModerate)

	res := AccountDay(g, cfg, 0, 180)
	if res.Kind != DayStop || res.Demoted {
		t.Fatalf("first stop booked as %s demoted=%v", res.Kind, res.Demoted)
	}
	g.AppendRecord(DayRecord{DayIndex: 1, Kind: res.Kind, Miles: res.Miles})

	// One stop already sits in the window; the default cap is one.
	res = AccountDay(g, cfg, 0, 180)
	if res.Kind != DayPartial || !res.Demoted {
		t.Fatalf("second stop should demote to partial, got %s demoted=%v", res.Kind, res.Demoted)
	}
	if res.Miles <= 0 {
		t.Fatalf("demoted day must carry distance, got %v", res.Miles)
	}
}

func TestStopCapWindowSlides(t *testing.T) {
	cfg := DefaultPacingConfig()
	g := accountingTestState(ModeStandard, PolicyModerate)

	// A stop far enough back falls out of the rolling window.
	g.AppendRecord(DayRecord{DayIndex: 1, Kind: DayStop})
	for d := 2; d <= 5; d++ {
		g.AppendRecord(DayRecord{DayIndex: d, Kind: DayFull, Miles: 180})
	}
	res := AccountDay(g, cfg, 0, 180)
	if res.Kind != DayStop || res.Demoted {
		t.Fatalf("stop outside window should stand, got %s demoted=%v", res.Kind, res.Demoted)
	}
}

func TestDeepConservativeToleratesExtraStop(t *testing.T) {
	cfg := DefaultPacingConfig()
	g := accountingTestState(ModeDeep, PolicyConservative)

	g.AppendRecord(DayRecord{DayIndex: 1, Kind: DayStop})
	res := AccountDay(g, cfg, 0, 180)
	if res.Kind != DayStop {
		t.Fatalf("deep conservative should tolerate a second stop, got %s", res.Kind)
	}
	g.AppendRecord(DayRecord{DayIndex: 2, Kind: DayStop})
	res = AccountDay(g, cfg, 0, 180)
	if res.Kind != DayPartial || !res.Demoted {
		t.Fatalf("third stop should demote, got %s demoted=%v", res.Kind, res.Demoted)
	}
}

func TestFloorMilesFallbacks(t *testing.T) {
	cfg := DefaultPacingConfig()

	// Empty ledger: base miles scaled by the partial ratio.
	if got, want := floorMiles(nil, cfg), RoundMiles(cfg.BaseMiles*cfg.PartialRatio); got != want {
		t.Fatalf("empty ledger floor = %v, want %v", got, want)
	}

	// Recent partial wins over full.
	ledger := []DayRecord{
		{DayIndex: 1, Kind: DayFull, Miles: 200},
		{DayIndex: 2, Kind: DayPartial, Miles: 55},
	}
	if got := floorMiles(ledger, cfg); got != 55 {
		t.Fatalf("floor = %v, want last partial 55", got)
	}

	// Only fulls: scaled by the ratio.
	ledger = []DayRecord{{DayIndex: 1, Kind: DayFull, Miles: 200}}
	if got, want := floorMiles(ledger, cfg), RoundMiles(200*cfg.PartialRatio); got != want {
		t.Fatalf("floor = %v, want %v", got, want)
	}

	// Never below the absolute floor.
	ledger = []DayRecord{{DayIndex: 1, Kind: DayPartial, Miles: 5}}
	if got := floorMiles(ledger, cfg); got != cfg.AbsoluteFloor {
		t.Fatalf("floor = %v, want absolute floor %v", got, cfg.AbsoluteFloor)
	}
}

func TestCounterTransitions(t *testing.T) {
	var c Counters
	applyCounterTransition(&c, DayFull)
	applyCounterTransition(&c, DayFull)
	applyCounterTransition(&c, DayPartial)
	applyCounterTransition(&c, DayStop)
	if c.TravelDays != 2 || c.PartialTravelDays != 1 || c.NonTravelDays != 1 {
		t.Fatalf("counters off: %+v", c)
	}
	if c.RotationTravelDays != 2 {
		t.Fatalf("rotation = %d, want 2", c.RotationTravelDays)
	}

	// Rotation saturates at zero.
	c = Counters{}
	applyCounterTransition(&c, DayStop)
	applyCounterTransition(&c, DayStop)
	if c.RotationTravelDays != 0 {
		t.Fatalf("rotation underflowed: %d", c.RotationTravelDays)
	}
}
