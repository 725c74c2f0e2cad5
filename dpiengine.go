package wmediumd

//
// Channel override engine
//
// An operator/test-only mechanism for deterministically forcing or
// perturbing the channel model's verdict for specific attempts, so that
// scenarios like "p_err at idx 7 forced to 1.0" (spec §8 scenario 3) are
// expressible without touching ChannelModel itself. Adapted from the
// teacher's DPI engine: same "ordered rules, first match wins" shape, but
// matching on (sender, dest, rate index, class) instead of a TCP/UDP flow
// five-tuple, and with no per-flow memory since attempts are stateless.
//

import (
	"sync"
	"time"
)

// OverridePolicy is the result of an [OverrideRule] match.
type OverridePolicy struct {
	// ForceAck, if true, makes this attempt succeed without drawing from
	// the PRNG, exactly like a noack short-circuit (the noack-determinism
	// property in spec §8 extends to forced outcomes).
	ForceAck bool

	// ForceFail, if true, makes this attempt fail without drawing from
	// the PRNG. Ignored if ForceAck is also set.
	ForceFail bool

	// ExtraPER is added to the channel model's error probability for this
	// attempt when neither ForceAck nor ForceFail is set.
	ExtraPER float64

	// ExtraDelay is added to the attempt's air time.
	ExtraDelay time.Duration
}

// OverrideRule decides whether it applies to a given attempt.
type OverrideRule interface {
	// Match returns a policy and true if this rule applies to an attempt
	// by sender to dest at rateIdx for a frame of the given class.
	Match(sender, dest Addr, rateIdx int8, class AccessCategory) (*OverridePolicy, bool)
}

// ChannelOverrideEngine holds an ordered list of [OverrideRule]; the first
// rule to match wins. The zero value is ready to use (no rules, no-op).
type ChannelOverrideEngine struct {
	mu    sync.Mutex
	rules []OverrideRule
}

// NewChannelOverrideEngine creates an empty [ChannelOverrideEngine].
func NewChannelOverrideEngine() *ChannelOverrideEngine {
	return &ChannelOverrideEngine{}
}

// AddRule appends a rule to the engine.
func (e *ChannelOverrideEngine) AddRule(rule OverrideRule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rule)
}

// rulesShallowCopy returns a copy of the current rule slice so Apply can
// run without holding the lock across each rule's Match call.
func (e *ChannelOverrideEngine) rulesShallowCopy() []OverrideRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]OverrideRule{}, e.rules...)
}

// Apply runs every registered rule in order and returns the first match,
// or (nil, false) if none apply, in which case the channel model's natural
// output is used unchanged. A nil engine is a valid no-op engine.
func (e *ChannelOverrideEngine) Apply(
	sender, dest Addr, rateIdx int8, class AccessCategory,
) (*OverridePolicy, bool) {
	if e == nil {
		return nil, false
	}
	for _, rule := range e.rulesShallowCopy() {
		if policy, match := rule.Match(sender, dest, rateIdx, class); match {
			return policy, true
		}
	}
	return nil, false
}
