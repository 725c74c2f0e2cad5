package wmediumd

//
// Channel override rules: force an outcome for a specific rate index
//

// ForceOutcomeForRateIndex is an [OverrideRule] that forces every attempt at
// a specific rate index to succeed or fail, regardless of sender/dest. Used
// by tests to script MRR fallback scenarios deterministically (spec §8
// scenario 3: "p_err at idx 7 forced to 1.0 and at idx 3 forced to 0.0").
// The zero value is invalid; fill all fields marked MANDATORY.
type ForceOutcomeForRateIndex struct {
	// Logger is the MANDATORY logger.
	Logger Logger

	// RateIdx is the MANDATORY rate index to match.
	RateIdx int8

	// Ack forces the outcome to succeed when true, fail when false.
	Ack bool
}

var _ OverrideRule = &ForceOutcomeForRateIndex{}

// Match implements [OverrideRule].
func (r *ForceOutcomeForRateIndex) Match(
	sender, dest Addr, rateIdx int8, class AccessCategory,
) (*OverridePolicy, bool) {
	if rateIdx != r.RateIdx {
		return nil, false
	}
	r.Logger.Infof(
		"wmediumd: override: forcing rate %d ack=%v for %s->%s",
		rateIdx, r.Ack, sender, dest,
	)
	return &OverridePolicy{ForceAck: r.Ack, ForceFail: !r.Ack}, true
}

// ForceFailForAccessCategory is an [OverrideRule] that forces every attempt
// of a given access category (management or data) to fail, regardless of
// rate or station pair. Useful for exercising MRR exhaustion paths.
type ForceFailForAccessCategory struct {
	// Logger is the MANDATORY logger.
	Logger Logger

	// Class is the MANDATORY access category to match.
	Class AccessCategory
}

var _ OverrideRule = &ForceFailForAccessCategory{}

// Match implements [OverrideRule].
func (r *ForceFailForAccessCategory) Match(
	sender, dest Addr, rateIdx int8, class AccessCategory,
) (*OverridePolicy, bool) {
	if class != r.Class {
		return nil, false
	}
	r.Logger.Infof(
		"wmediumd: override: forcing %s frames from %s to fail",
		class, sender,
	)
	return &OverridePolicy{ForceFail: true}, true
}
