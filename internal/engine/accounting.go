package engine

// Day accounting: classify each day as Full/Partial/Stop, enforce the
// ratio-floor rule on consecutive stops, and maintain the rolling counters.

// AccountingResult describes how a day was booked.
type AccountingResult struct {
	Kind    DayKind
	Miles   float64
	Demoted bool // a would-be Stop lifted to Partial by the ratio floor
}

// ClassifyDay buckets a day's mileage against the expected full distance.
func ClassifyDay(miles, expected float64) DayKind {
	if miles <= 0 {
		return DayStop
	}
	if expected > 0 && miles >= expected*0.75 {
		return DayFull
	}
	return DayPartial
}

// recentStops counts Stop records within the trailing window of the ledger.
func recentStops(ledger []DayRecord, window int) int {
	if window <= 0 {
		return 0
	}
	count := 0
	start := len(ledger) - window
	if start < 0 {
		start = 0
	}
	for _, rec := range ledger[start:] {
		if rec.Kind == DayStop {
			count++
		}
	}
	return count
}

// floorMiles derives the demotion mileage: the most recent partial day's
// distance, else the most recent full day's distance scaled by the partial
// ratio, else base distance scaled, never below the absolute floor.
func floorMiles(ledger []DayRecord, cfg PacingConfig) float64 {
	var lastPartial, lastFull float64
	for i := len(ledger) - 1; i >= 0; i-- {
		rec := ledger[i]
		if lastPartial == 0 && rec.Kind == DayPartial && rec.Miles > 0 {
			lastPartial = rec.Miles
		}
		if lastFull == 0 && rec.Kind == DayFull && rec.Miles > 0 {
			lastFull = rec.Miles
		}
		if lastPartial > 0 && lastFull > 0 {
			break
		}
	}
	miles := cfg.BaseMiles * cfg.PartialRatio
	if lastPartial > 0 {
		miles = lastPartial
	} else if lastFull > 0 {
		miles = lastFull * cfg.PartialRatio
	}
	if miles < cfg.AbsoluteFloor {
		miles = cfg.AbsoluteFloor
	}
	return RoundMiles(miles)
}

// AccountDay classifies the day, applies the ratio floor, and updates the
// counters. The returned miles may exceed the input when a Stop is demoted.
func AccountDay(g *GameState, cfg PacingConfig, miles, expected float64) AccountingResult {
	kind := ClassifyDay(miles, expected)
	res := AccountingResult{Kind: kind, Miles: RoundMiles(miles)}

	if kind == DayStop {
		stopCap := cfg.StopCap(g.Policy, g.Mode)
		if recentStops(g.Ledger, cfg.StopWindow-1) >= stopCap {
			res.Kind = DayPartial
			res.Miles = floorMiles(g.Ledger, cfg)
			res.Demoted = true
		}
	}

	applyCounterTransition(&g.Counters, res.Kind)
	return res
}

// applyCounterTransition is the counter transition table. All decrements
// saturate at zero.
func applyCounterTransition(c *Counters, kind DayKind) {
	switch kind {
	case DayFull:
		c.TravelDays++
		c.RotationTravelDays++
	case DayPartial:
		c.PartialTravelDays++
		c.RotationTravelDays++
	case DayStop:
		c.NonTravelDays++
		c.RotationTravelDays = satSub(c.RotationTravelDays, 1)
	}
}
