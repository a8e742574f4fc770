package engine

// Crossing resolver. Pure: the outcome of crossing N on day D under seed S
// is a function of those values alone, regardless of how many draws any
// other subsystem has made.

type CrossingKind string

const (
	CrossingPass     CrossingKind = "pass"
	CrossingDetour   CrossingKind = "detour"
	CrossingTerminal CrossingKind = "terminal"
)

// CrossingOutcome is transient; it is not persisted beyond the day it
// resolves.
type CrossingOutcome struct {
	Kind       CrossingKind `json:"kind"`
	DetourDays int          `json:"detour_days,omitempty"`
	Bribed     bool         `json:"bribed,omitempty"`
}

const (
	crossingSaltIndex = 0x51_7C_C1_B7_27_22_0A_95
	crossingSaltDay   = 0x2B_2E_27_16_1F_8A_11_3D
)

// crossingStream derives the event's private stream by XOR-mixing the run
// seed with salted multiples of the crossing and day indices, hashed through
// FNV-1a 64.
func crossingStream(seed uint64, crossingIdx, dayIdx int) *Stream {
	return EventStream(seed,
		uint64(crossingIdx)*crossingSaltIndex,
		uint64(dayIdx)*crossingSaltDay,
	)
}

// bribeChance is the clamped success probability of a bribe attempt. Deep
// mode operators are harder to buy.
func bribeChance(cfg CrossingConfig, mode Mode) float64 {
	chance := cfg.BribeBase
	if mode == ModeDeep {
		chance -= cfg.BribeDeepMalus
	}
	return ClampFloat(chance, cfg.BribeMin, cfg.BribeMax)
}

// detourDays picks the detour tier (2/3/4 days by default) with a secondary
// roll on the event stream.
func detourDays(cfg CrossingConfig, stream *Stream) int {
	if len(cfg.DetourTiers) == 0 {
		return 2
	}
	return cfg.DetourTiers[stream.Intn(len(cfg.DetourTiers))]
}

func drawDetourOrTerminal(w CrossingWeights, cfg CrossingConfig, stream *Stream) CrossingOutcome {
	total := w.Detour + w.Terminal
	if total <= 0 {
		return CrossingOutcome{Kind: CrossingDetour, DetourDays: detourDays(cfg, stream)}
	}
	if stream.Intn(total) < w.Detour {
		return CrossingOutcome{Kind: CrossingDetour, DetourDays: detourDays(cfg, stream.Child("tier"))}
	}
	return CrossingOutcome{Kind: CrossingTerminal}
}

// ResolveCrossing resolves one checkpoint/river crossing. A permit passes
// outright. A bribe attempt rolls against the mode-adjusted chance; on
// failure the draw falls through to the stricter bribe weighting.
func ResolveCrossing(cfg CrossingConfig, policy Policy, mode Mode, hasPermit, bribeIntent bool, crossingIdx, dayIdx int, seed uint64) CrossingOutcome {
	if hasPermit {
		return CrossingOutcome{Kind: CrossingPass}
	}
	stream := crossingStream(seed, crossingIdx, dayIdx)
	if bribeIntent {
		if stream.Child("bribe").Float64() < bribeChance(cfg, mode) {
			return CrossingOutcome{Kind: CrossingPass, Bribed: true}
		}
		// Weights for a failed bribe by contract exist for every policy;
		// config validation guarantees it at load time.
		return drawDetourOrTerminal(cfg.BribeWeights[policy], cfg, stream.Child("outcome"))
	}
	return drawDetourOrTerminal(cfg.Weights[policy], cfg, stream.Child("outcome"))
}
