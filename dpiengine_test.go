package wmediumd

import "testing"

func TestChannelOverrideEngineFirstMatchWins(t *testing.T) {
	a := Addr{0x02, 0, 0, 0, 0, 1}
	b := Addr{0x02, 0, 0, 0, 0, 2}

	engine := NewChannelOverrideEngine()
	engine.AddRule(&ForceOutcomeForStationPair{Logger: &nullLogger{}, Sender: a, Dest: b, Ack: true})
	engine.AddRule(&ForceFailForAccessCategory{Logger: &nullLogger{}, Class: ACData})

	policy, matched := engine.Apply(a, b, 0, ACData)
	if !matched {
		t.Fatal("expected a match")
	}
	if !policy.ForceAck {
		t.Fatal("expected the first matching rule (force ack) to win")
	}
}

func TestChannelOverrideEngineNoMatch(t *testing.T) {
	engine := NewChannelOverrideEngine()
	engine.AddRule(&ForceOutcomeForRateIndex{Logger: &nullLogger{}, RateIdx: 5, Ack: true})

	_, matched := engine.Apply(Addr{1}, Addr{2}, 3, ACData)
	if matched {
		t.Fatal("expected no match for an unrelated rate index")
	}
}

func TestChannelOverrideEngineNilIsNoOp(t *testing.T) {
	var engine *ChannelOverrideEngine
	_, matched := engine.Apply(Addr{1}, Addr{2}, 0, ACData)
	if matched {
		t.Fatal("a nil engine must never match")
	}
}

func TestThrottleRateForStationPair(t *testing.T) {
	a := Addr{0x02, 0, 0, 0, 0, 1}
	b := Addr{0x02, 0, 0, 0, 0, 2}
	rule := &ThrottleRateForStationPair{Logger: &nullLogger{}, Sender: a, Dest: b, ExtraPER: 0.1}

	policy, matched := rule.Match(a, b, 0, ACData)
	if !matched || policy.ExtraPER != 0.1 {
		t.Fatalf("expected a match with ExtraPER=0.1, got matched=%v policy=%+v", matched, policy)
	}

	if _, matched := rule.Match(b, a, 0, ACData); matched {
		t.Fatal("expected no match for the reversed pair")
	}
}
