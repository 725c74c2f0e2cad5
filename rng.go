package wmediumd

//
// Transmit simulator PRNG
//
// The transmit simulator needs a seedable, injectable PRNG so tests can
// assert exact outcomes (§8, "PRNG determinism"). This mirrors the
// teacher's LinkFwdRNG: an interface narrow enough to be satisfied by
// *rand.Rand, but swappable in tests for scripted sequences.
//

import (
	"math/rand"
	"time"
)

// TransmitRNG is the view of a PRNG the transmit simulator depends on.
type TransmitRNG interface {
	// Float64 returns a pseudo-random number in [0.0,1.0), used as the
	// per-attempt ack/fail draw u in §4.3 step 3.b.
	Float64() float64
}

var _ TransmitRNG = &rand.Rand{}

// NewSeededRNG returns a [TransmitRNG] seeded deterministically, for tests
// and for reproducible simulation runs.
func NewSeededRNG(seed int64) TransmitRNG {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeededRNG returns a [TransmitRNG] seeded from the current time,
// for normal (non-test) operation.
func NewTimeSeededRNG() TransmitRNG {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ScriptedRNG is a [TransmitRNG] that replays a fixed sequence of draws,
// useful for tests that need to force specific per-attempt outcomes (e.g.
// "p_err at idx 7 forced to 1.0" in spec scenario 3 can instead be expressed
// by scripting the draw directly). Repeats the final value once exhausted.
type ScriptedRNG struct {
	draws []float64
	pos   int
}

// NewScriptedRNG creates a [ScriptedRNG] that returns draws in order.
func NewScriptedRNG(draws ...float64) *ScriptedRNG {
	return &ScriptedRNG{draws: draws}
}

var _ TransmitRNG = &ScriptedRNG{}

// Float64 implements [TransmitRNG].
func (s *ScriptedRNG) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	if s.pos >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.pos]
	s.pos++
	return v
}
