package wmediumd

//
// Channel override rules: perturb error probability
//

import "time"

// ThrottleRateForStationPair is an [OverrideRule] that adds extra error
// probability to a specific (sender, dest) pair without forcing a fixed
// outcome, modeling e.g. an operator-injected fade between two stations.
// The zero value is not valid. Make sure you initialize all fields marked
// MANDATORY.
type ThrottleRateForStationPair struct {
	// Logger is the MANDATORY logger to use.
	Logger Logger

	// Sender is the MANDATORY sender address to match.
	Sender Addr

	// Dest is the MANDATORY destination address to match.
	Dest Addr

	// ExtraPER is the OPTIONAL extra error probability to add.
	ExtraPER float64

	// ExtraDelay is the OPTIONAL extra per-attempt delay to add.
	ExtraDelay time.Duration
}

var _ OverrideRule = &ThrottleRateForStationPair{}

// Match implements [OverrideRule].
func (r *ThrottleRateForStationPair) Match(
	sender, dest Addr, rateIdx int8, class AccessCategory,
) (*OverridePolicy, bool) {
	if sender != r.Sender || dest != r.Dest {
		return nil, false
	}
	r.Logger.Infof(
		"wmediumd: override: throttling %s->%s by +%.4f PER at rate %d",
		sender, dest, r.ExtraPER, rateIdx,
	)
	return &OverridePolicy{ExtraPER: r.ExtraPER, ExtraDelay: r.ExtraDelay}, true
}
