package engine

import (
	"math"
	"testing"
)

func vehicleTestState() *GameState {
	seed, _ := NewRunSeed("vehicle-fixture")
	return NewGameState(seed, ModeStandard, PolicyModerate)
}

func TestBreakdownChanceBaseline(t *testing.T) {
	cfg := DefaultVehicleConfig()
	got := BreakdownChance(cfg, 0, PaceSteady, 1.0, false)
	if math.Abs(got-cfg.BaseBreakdown) > 1e-12 {
		t.Fatalf("baseline chance = %v, want %v", got, cfg.BaseBreakdown)
	}
}

func TestBreakdownChanceMonotonicInWear(t *testing.T) {
	cfg := DefaultVehicleConfig()
	prev := -1.0
	for wear := 0.0; wear <= 100; wear += 5 {
		c := BreakdownChance(cfg, wear, PaceSteady, 1.0, false)
		if c < prev {
			t.Fatalf("chance decreased at wear %v: %v < %v", wear, c, prev)
		}
		if c < 0 || c > 1 {
			t.Fatalf("chance out of range at wear %v: %v", wear, c)
		}
		prev = c
	}
}

// The baseline probability should be observable as a long-run frequency.
func TestBreakdownRateConvergence(t *testing.T) {
	cfg := DefaultVehicleConfig()
	seed, _ := NewRunSeed("convergence-check")
	stream := seed.Stream("breakdown")
	chance := BreakdownChance(cfg, 0, PaceSteady, 1.0, false)

	const n = 5000
	hits := 0
	for i := 0; i < n; i++ {
		if stream.Float64() < chance {
			hits++
		}
	}
	rate := float64(hits) / n
	if math.Abs(rate-cfg.BaseBreakdown) > 0.025 {
		t.Fatalf("observed rate %v too far from %v (%d/%d)", rate, cfg.BaseBreakdown, hits, n)
	}
}

func TestWearMonotonicWithoutRepair(t *testing.T) {
	v := Vehicle{Wear: 0, WearMult: 1.0}
	prev := v.Wear
	for i := 0; i < 50; i++ {
		ApplyWear(&v, 1.6)
		if v.Wear < prev {
			t.Fatalf("wear decreased: %v -> %v", prev, v.Wear)
		}
		prev = v.Wear
	}
	ApplyWear(&v, -5)
	if v.Wear != prev {
		t.Fatalf("negative wear amount mutated state: %v -> %v", prev, v.Wear)
	}
	if v.Wear > 100 {
		t.Fatalf("wear exceeded ceiling: %v", v.Wear)
	}
}

func TestRollBreakdownSuppressedWhileActive(t *testing.T) {
	cfg := DefaultVehicleConfig()
	g := vehicleTestState()
	g.Breakdown = &Breakdown{Part: PartTire, DayStarted: 1}
	g.Vehicle.Wear = 100
	stream := g.Rand.Breakdown
	for i := 0; i < 100; i++ {
		if _, started := RollBreakdown(g, cfg, PaceGrueling, 2.0, true, stream); started {
			t.Fatal("breakdown rolled while one was active")
		}
	}
}

func TestRollBreakdownSuppressedByCooldown(t *testing.T) {
	cfg := DefaultVehicleConfig()
	g := vehicleTestState()
	g.Vehicle.Cooldown = 2
	g.Vehicle.Wear = 100
	stream := g.Rand.Breakdown
	for i := 0; i < 100; i++ {
		if _, started := RollBreakdown(g, cfg, PaceGrueling, 2.0, true, stream); started {
			t.Fatal("breakdown rolled during repair cooldown")
		}
	}
}

func TestRepairPriorityOrder(t *testing.T) {
	cfg := DefaultVehicleConfig()

	g := vehicleTestState()
	g.Breakdown = &Breakdown{Part: PartTire, DayStarted: 1}
	if method, ok := AutoRepair(g, cfg, false); !ok || method != RepairMatchingSpare {
		t.Fatalf("expected matching spare repair, got %q ok=%v", method, ok)
	}
	if g.Inventory.Spares[PartTire] != 1 {
		t.Fatalf("tire spare not consumed: %d", g.Inventory.Spares[PartTire])
	}
	if g.Breakdown != nil {
		t.Fatal("breakdown not cleared")
	}
	if g.Vehicle.Cooldown != cfg.RepairCooldownDays {
		t.Fatalf("cooldown = %d, want %d", g.Vehicle.Cooldown, cfg.RepairCooldownDays)
	}

	// No matching spare for the fuel pump: cannibalize in declaration order.
	g = vehicleTestState()
	g.Breakdown = &Breakdown{Part: PartFuelPump, DayStarted: 1}
	if method, ok := AutoRepair(g, cfg, false); !ok || method != RepairAnySpare {
		t.Fatalf("expected any-spare repair, got %q ok=%v", method, ok)
	}
	if g.Inventory.Spares[PartTire] != 1 {
		t.Fatal("any-spare repair should walk parts in declaration order and take a tire")
	}

	// No spares at all: pay for it.
	g = vehicleTestState()
	g.Inventory.Spares = map[Part]int{}
	g.Breakdown = &Breakdown{Part: PartBattery, DayStarted: 1}
	before := g.BudgetCents
	if method, ok := AutoRepair(g, cfg, false); !ok || method != RepairBudget {
		t.Fatalf("expected budget repair, got %q ok=%v", method, ok)
	}
	if g.BudgetCents != before-cfg.EmergencyRepairCents {
		t.Fatalf("budget not charged: %d -> %d", before, g.BudgetCents)
	}
}

func TestBudgetRepairRefusedWhenBroke(t *testing.T) {
	cfg := DefaultVehicleConfig()
	g := vehicleTestState()
	g.Inventory.Spares = map[Part]int{}
	g.BudgetCents = cfg.EmergencyRepairCents - 1
	g.Breakdown = &Breakdown{Part: PartBattery, DayStarted: 1}
	if _, ok := AutoRepair(g, cfg, false); ok {
		t.Fatal("repair should be refused when funds are short and debt is disallowed")
	}
	if g.BudgetCents < 0 {
		t.Fatalf("player-path repair drove budget negative: %d", g.BudgetCents)
	}
	if method, ok := AutoRepair(g, cfg, true); !ok || method != RepairBudget {
		t.Fatalf("debt-allowed repair failed: %q ok=%v", method, ok)
	}
	if g.BudgetCents >= 0 {
		t.Fatalf("debt repair should leave a negative balance, got %d", g.BudgetCents)
	}
}

func TestPickPartCoversAllParts(t *testing.T) {
	cfg := DefaultVehicleConfig()
	seed, _ := NewRunSeed("part-pick")
	stream := seed.Stream("parts")
	seen := map[Part]bool{}
	for i := 0; i < 2000; i++ {
		p := pickPart(cfg, stream)
		if !p.Validate() {
			t.Fatalf("picked unknown part %q", p)
		}
		seen[p] = true
	}
	for _, p := range AllParts {
		if !seen[p] {
			t.Fatalf("part %q never picked in 2000 draws", p)
		}
	}
}

// A long run must not keep breaking the same part; each breakdown's part
// pick advances the shared stream.
func TestBreakdownPartsVaryAcrossRun(t *testing.T) {
	cfg := DefaultVehicleConfig()
	cfg.BaseBreakdown = 1.0
	seed, _ := NewRunSeed("fault-mix")
	stream := seed.Stream("breakdown")
	g := vehicleTestState()

	counts := map[Part]int{}
	for i := 0; i < 200; i++ {
		part, ok := RollBreakdown(g, cfg, PaceSteady, 1.0, false, stream)
		if !ok {
			t.Fatalf("roll %d: certain breakdown did not fire", i)
		}
		counts[part]++
		g.Breakdown = nil
	}
	for _, p := range AllParts {
		if counts[p] == 0 {
			t.Fatalf("part %s never broke across 200 breakdowns: %v", p, counts)
		}
	}
}
