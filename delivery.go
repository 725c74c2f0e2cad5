package wmediumd

//
// Delivery engine (§4.5)
//
// On timer fire, drains every expired frame, station by station in registry
// order and management before data within a station, emits a receive-side
// copy to every matching peer, and reports tx status back to the sender.
//

import "time"

// DefaultRxSignal and DefaultTxSignal are the design-fixed receive/tx
// signal values used in this version, absent any per-link path-loss model
// (§4.5, "design-fixed constants... extensible by parameterizing them per
// (sender, receiver) pair without changing the scheduler").
const (
	DefaultRxSignal = -60
	DefaultTxSignal = -50
)

// RxRateIdx is the nominal receive rate reported on every Deliver event:
// the lowest configured rate index.
const RxRateIdx int8 = 0

// DeliveryEngine drains expired frames and emits Deliver/TxStatus events.
// The zero value is not usable; fill all fields marked MANDATORY.
type DeliveryEngine struct {
	// Registry is the MANDATORY station registry.
	Registry *StationRegistry

	// Channel is the MANDATORY control channel used to emit events.
	Channel ControlChannel

	// RxSignal and TxSignal are the OPTIONAL fixed signal values; zero
	// value falls back to [DefaultRxSignal]/[DefaultTxSignal].
	RxSignal int
	TxSignal int

	// Logger is the MANDATORY logger.
	Logger Logger

	// Trace is an OPTIONAL frame trace writer (§4.8); when set, every
	// Deliver and TxStatus emission is also captured to it. Nil disables
	// tracing.
	Trace *FrameTraceWriter
}

// rxSignal returns the configured RxSignal, defaulting to DefaultRxSignal.
func (e *DeliveryEngine) rxSignal() int {
	if e.RxSignal != 0 {
		return e.RxSignal
	}
	return DefaultRxSignal
}

// txSignal returns the configured TxSignal, defaulting to DefaultTxSignal.
func (e *DeliveryEngine) txSignal() int {
	if e.TxSignal != 0 {
		return e.TxSignal
	}
	return DefaultTxSignal
}

// Drain pops and delivers every frame whose expiry is at or before now,
// scanning stations in registry order and, within a station, management
// before data (§5's tie-break order).
func (e *DeliveryEngine) Drain(now time.Time) {
	for _, st := range e.Registry.Stations() {
		for _, q := range [2]*Queue{st.Mgmt, st.Data} {
			for _, frame := range q.DrainExpired(now) {
				e.deliverOne(frame)
			}
		}
	}
}

// deliverOne implements §4.5 step 3: fan out Deliver events to every
// matching receiver (if acked), then always emit one TxStatus.
func (e *DeliveryEngine) deliverOne(frame *Frame) {
	if frame.Flags&TxStatAck != 0 {
		for _, st := range e.Registry.Stations() {
			if st.Addr == frame.Sender {
				continue
			}
			if !frame.Dest.Multicast() && st.Addr != frame.Dest {
				continue
			}
			if err := e.Channel.SendDeliver(DeliverEvent{
				Receiver:  st.Addr,
				Payload:   frame.Payload,
				RxRateIdx: RxRateIdx,
				RxSignal:  e.rxSignal(),
			}); err != nil {
				e.Logger.Warnf("wmediumd: delivery: SendDeliver: %s", err.Error())
			}
			e.captureTrace(frame.Payload)
		}
	}

	if err := e.Channel.SendTxStatus(TxStatusEvent{
		Sender:   frame.Sender,
		Flags:    frame.Flags,
		TxSignal: e.txSignal(),
		MRR:      frame.MRR,
		Cookie:   frame.Cookie,
	}); err != nil {
		e.Logger.Warnf("wmediumd: delivery: SendTxStatus: %s", err.Error())
	}
	e.captureTrace(frame.Payload)
}

// captureTrace forwards payload to Trace if tracing is enabled.
func (e *DeliveryEngine) captureTrace(payload []byte) {
	if e.Trace != nil {
		e.Trace.Capture(payload)
	}
}
