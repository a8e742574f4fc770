package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// Derive returns a deterministic child seed based on a base seed and a label
// using HMAC-SHA256. Labels should be stable strings such as "weather" or
// "crossing#2:day:14".
func Derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// RunSeed encapsulates the canonical seed for a run and exposes deterministic streams.
type RunSeed struct {
	Text string
	root uint64
}

// NewRunSeed creates a deterministic RunSeed from a textual seed. Empty text is rejected.
func NewRunSeed(seedText string) (RunSeed, error) {
	if seedText == "" {
		return RunSeed{}, fmt.Errorf("seed text must not be empty")
	}
	return RunSeed{Text: seedText, root: SeedFromString(seedText)}, nil
}

// RunSeedFromRaw wraps an already-derived 64-bit root, e.g. one decoded
// from a share code.
func RunSeedFromRaw(root uint64) RunSeed {
	return RunSeed{Text: fmt.Sprintf("raw:%016x", root), root: root}
}

// Root exposes the 64-bit root for share-code encoding.
func (r RunSeed) Root() uint64 { return r.root }

// Stream returns a new deterministic RNG stream derived from the run's root seed.
func (r RunSeed) Stream(label string) *Stream {
	return newStream(Derive(r.root, label))
}

// SplitMix64 PRNG implementation for deterministic streams.
type SplitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *SplitMix64 { return &SplitMix64{state: seed} }

func (s *SplitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *SplitMix64) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}

func (s *SplitMix64) float64() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// Stream provides deterministic random numbers with support for labelled child streams.
type Stream struct {
	base uint64
	sm   *SplitMix64
}

func newStream(seed uint64) *Stream {
	return &Stream{base: seed, sm: newSplitMix64(seed)}
}

// Intn mirrors math/rand.Intn but is deterministic per stream.
func (s *Stream) Intn(n int) int { return s.sm.intn(n) }

// Float64 returns a float in [0,1).
func (s *Stream) Float64() float64 { return s.sm.float64() }

// Uint64 exposes the underlying 64-bit stream when coarse-grained randomness is needed.
func (s *Stream) Uint64() uint64 { return s.sm.next() }

// Child creates a stable sub-stream derived from this stream's base seed and label.
func (s *Stream) Child(label string) *Stream { return newStream(Derive(s.base, label)) }

// streamSnapshot captures a stream's position for pause/resume.
type streamSnapshot struct {
	Base  uint64 `json:"base"`
	State uint64 `json:"state"`
}

// MarshalJSON serializes the stream position so a restored run resumes its
// draw sequence exactly.
func (s *Stream) MarshalJSON() ([]byte, error) {
	return json.Marshal(streamSnapshot{Base: s.base, State: s.sm.state})
}

// UnmarshalJSON restores a serialized stream position.
func (s *Stream) UnmarshalJSON(data []byte) error {
	var snap streamSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.base = snap.Base
	s.sm = &SplitMix64{state: snap.State}
	return nil
}

// Bundle holds one independent substream per simulation domain. Streams are
// derived once at session construction and shared by reference; draws in one
// domain never perturb another, so a subsystem can be replayed in isolation.
type Bundle struct {
	Travel    *Stream
	Breakdown *Stream
	Encounter *Stream
	Crossing  *Stream
	Weather   *Stream
}

// NewBundle derives the five domain substreams from a run seed.
func NewBundle(seed RunSeed) *Bundle {
	return &Bundle{
		Travel:    seed.Stream("travel"),
		Breakdown: seed.Stream("breakdown"),
		Encounter: seed.Stream("encounter"),
		Crossing:  seed.Stream("crossing"),
		Weather:   seed.Stream("weather"),
	}
}

// MixEventSeed folds salted multiples of per-event indices into a base seed
// and hashes with FNV-1a 64. The same event at the same day under the same
// seed always yields the same stream regardless of draws made elsewhere.
func MixEventSeed(seed uint64, salts ...uint64) uint64 {
	mixed := seed
	for i, s := range salts {
		mixed ^= s * (0x9E3779B97F4A7C15 + uint64(i)*0xA24BAED4963EE407)
	}
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], mixed)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// EventStream returns a counter-based stream for a single resolved event.
func EventStream(seed uint64, salts ...uint64) *Stream {
	return newStream(MixEventSeed(seed, salts...))
}
