package wmediumd

//
// Transmit simulator (§4.3)
//
// Walks a submitted frame's MRR schedule, draws per-attempt acks from the
// channel model, accumulates on-air time including backoff, and appends the
// frame to the correct queue with its expiry set and its flags/MRR
// schedule rewritten to reflect the outcome.
//

import (
	"time"
)

// TransmitSimulator turns a submission into a queued [Frame] with a
// deterministic future expiry. The zero value is not usable; fill all
// fields marked MANDATORY before calling Submit.
type TransmitSimulator struct {
	// Channel is the MANDATORY channel model oracle.
	Channel ChannelModel

	// Overrides is the OPTIONAL channel override engine; nil means no
	// overrides are ever applied.
	Overrides *ChannelOverrideEngine

	// SNR is the fixed signal-to-noise ratio (dB) used for every link.
	// Per-link SNR is not modeled (see DESIGN.md, Open Questions).
	SNR float64

	// NewRNG is the MANDATORY factory used to obtain a fresh PRNG view
	// for each Submit call. Tests inject a deterministic or scripted RNG
	// here; production code uses [NewTimeSeededRNG] once per run and
	// returns the same instance so draws accumulate across submissions.
	NewRNG func() TransmitRNG

	// Now is the MANDATORY monotonic clock; tests inject a fake.
	Now func() time.Time

	// Logger is the MANDATORY logger.
	Logger Logger
}

// Submit classifies payload, walks mrr against the channel model, and
// pushes the resulting frame onto station's appropriate queue. It returns
// the queued frame. The caller is responsible for rearming the scheduler.
func (ts *TransmitSimulator) Submit(
	station *Station, payload []byte, cookie uint64, mrr MRRSchedule,
) (*Frame, error) {
	class, dest, noack, err := classify(payload)
	if err != nil {
		return nil, err
	}

	queue := station.QueueFor(class)
	rng := ts.NewRNG()

	sendTime, acked := ts.walk(station.Addr, dest, class, len(payload), noack, queue.Config, &mrr, rng)

	frame := &Frame{
		Payload: payload,
		Sender:  station.Addr,
		Dest:    dest,
		Class:   class,
		Noack:   noack,
		Cookie:  cookie,
		MRR:     mrr,
		Acked:   acked,
	}
	if acked {
		frame.Flags |= TxStatAck
	}
	// A frame cannot pass the frames already queued ahead of it: its air
	// time starts once the current tail is due, or now if that is earlier.
	start := ts.Now()
	if n := queue.Len(); n > 0 && queue.frames[n-1].Expiry.After(start) {
		start = queue.frames[n-1].Expiry
	}
	frame.Expiry = start.Add(sendTime)

	queue.PushTail(frame)
	ts.Logger.Debugf(
		"wmediumd: simulator: %s->%s class=%s acked=%v sendTime=%s",
		station.Addr, dest, class, acked, sendTime,
	)
	return frame, nil
}

// walk executes spec §4.3 step 3: it mutates mrr in place to reflect
// truncation on success and returns the total send time and whether the
// sequence was ultimately acked.
func (ts *TransmitSimulator) walk(
	sender, dest Addr,
	class AccessCategory,
	payloadLen int,
	noack bool,
	qcfg QueueConfig,
	mrr *MRRSchedule,
	rng TransmitRNG,
) (time.Duration, bool) {
	var sendTime time.Duration
	cw := qcfg.CwMin
	acked := false

	for i := 0; i < NRates && !acked; i++ {
		slot := mrr[i]
		if slot.terminal() {
			break
		}
		rate, ok := rateOf(slot.Idx)
		if !ok {
			// An out-of-range index terminates the walk exactly as if
			// idx<0 (spec §4.6).
			break
		}
		baseErr := ts.Channel.ErrorProbability(ts.SNR, slot.Idx, payloadLen)

		usedAttempts := 0
		for j := 0; j < int(slot.Count) && !acked; j++ {
			sendTime += DIFS + duration(payloadLen, rate)
			usedAttempts = j + 1

			if noack {
				acked = true
				break
			}

			if j > 0 {
				sendTime += time.Duration(cw) * SlotTime / 2
				cw = (cw << 1) + 1
				if cw > qcfg.CwMax {
					cw = qcfg.CwMax
				}
			}

			policy, matched := ts.Overrides.Apply(sender, dest, slot.Idx, class)
			var succeeded bool
			switch {
			case matched && policy.ForceAck:
				succeeded = true
			case matched && policy.ForceFail:
				succeeded = false
			default:
				errProb := baseErr
				if matched {
					errProb += policy.ExtraPER
				}
				succeeded = rng.Float64() > errProb
			}
			if matched {
				sendTime += policy.ExtraDelay
			}

			if succeeded {
				acked = true
				break
			}
			sendTime += ackTime(rate)
		}

		if acked {
			mrr.truncateAfter(i, usedAttempts)
		}
	}

	return sendTime, acked
}
