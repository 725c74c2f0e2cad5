package wmediumd

//
// Channel override rules: force an outcome
//

// ForceOutcomeForStationPair is an [OverrideRule] that forces every attempt
// between a specific (sender, dest) pair to either always succeed or always
// fail, regardless of rate index or the channel model's natural output. The
// zero value is invalid; fill all fields marked MANDATORY.
type ForceOutcomeForStationPair struct {
	// Logger is the MANDATORY logger.
	Logger Logger

	// Sender is the MANDATORY sender address to match.
	Sender Addr

	// Dest is the MANDATORY destination address to match.
	Dest Addr

	// Ack forces the outcome to succeed when true, fail when false.
	Ack bool
}

var _ OverrideRule = &ForceOutcomeForStationPair{}

// Match implements [OverrideRule].
func (r *ForceOutcomeForStationPair) Match(
	sender, dest Addr, rateIdx int8, class AccessCategory,
) (*OverridePolicy, bool) {
	if sender != r.Sender || dest != r.Dest {
		return nil, false
	}
	r.Logger.Infof(
		"wmediumd: override: forcing %s->%s ack=%v at rate %d",
		sender, dest, r.Ack, rateIdx,
	)
	return &OverridePolicy{ForceAck: r.Ack, ForceFail: !r.Ack}, true
}
