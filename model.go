package wmediumd

//
// Data model
//

import (
	"time"
)

// NRates is the maximum number of (rate, attempt-count) pairs carried by
// an MRR schedule.
const NRates = 4

// RateSlot is one entry of a multi-rate retry schedule. Idx is an index
// into the rate table, or negative to mark the end of the schedule.
// Count is the number of attempts to make at that rate.
type RateSlot struct {
	Idx   int8
	Count int8
}

// terminal reports whether this slot marks the end of the schedule.
func (s RateSlot) terminal() bool {
	return s.Idx < 0
}

// MRRSchedule is a fixed-size multi-rate retry schedule.
type MRRSchedule [NRates]RateSlot

// truncateAfter rewrites the schedule in place to reflect that the
// frame was acked at slot i after usedCount attempts: slot i's count is
// set to usedCount and every later slot is marked terminal.
func (m *MRRSchedule) truncateAfter(i int, usedCount int) {
	m[i].Count = int8(usedCount)
	for j := i + 1; j < NRates; j++ {
		m[j] = RateSlot{Idx: -1, Count: -1}
	}
}

// AccessCategory identifies which per-station queue a frame belongs to.
type AccessCategory int

const (
	// ACData is the data queue.
	ACData AccessCategory = iota

	// ACManagement is the management queue.
	ACManagement
)

// String implements fmt.Stringer.
func (ac AccessCategory) String() string {
	if ac == ACManagement {
		return "mgmt"
	}
	return "data"
}

// TxStatusFlag is a bit in a Frame's status flags word.
type TxStatusFlag uint32

// TxStatAck marks that the frame sequence was acknowledged.
const TxStatAck TxStatusFlag = 1 << 0

// Addr is a 48-bit hardware address.
type Addr [6]byte

// BroadcastAddr is the all-ones link-layer broadcast address.
var BroadcastAddr = Addr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// String formats the address in colon-hex notation.
func (a Addr) String() string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 17)
	j := 0
	for i, b := range a {
		if i > 0 {
			buf[j] = ':'
			j++
		}
		buf[j] = hex[b>>4]
		buf[j+1] = hex[b&0xf]
		j += 2
	}
	return string(buf)
}

// Multicast reports whether this address is a multicast or broadcast
// address, per the low bit of the first octet.
func (a Addr) Multicast() bool {
	return a[0]&0x01 != 0
}

// Frame is an in-flight 802.11 frame as tracked by a station queue. The
// zero value is not meaningful; construct via the transmit simulator.
type Frame struct {
	// Payload is the raw, immutable frame bytes (header + body) as
	// submitted by the driver.
	Payload []byte

	// Sender is the address of the station that submitted this frame.
	Sender Addr

	// Dest is the frame's destination address, parsed once at submission.
	Dest Addr

	// Class reports whether this is a management or data frame.
	Class AccessCategory

	// Noack reports whether this frame expects no acknowledgement.
	Noack bool

	// Cookie is the opaque 64-bit token supplied by the driver; it is
	// echoed verbatim in the TxStatus event.
	Cookie uint64

	// Flags carries TxStatusFlag bits, set by the transmit simulator.
	Flags TxStatusFlag

	// MRR is the (possibly truncated) multi-rate retry schedule.
	MRR MRRSchedule

	// Expiry is the absolute monotonic instant at which this frame is
	// due for delivery.
	Expiry time.Time

	// Acked records the transmit simulator's verdict.
	Acked bool
}

// ShallowCopy returns a copy of the frame's fields. The payload slice is
// shared with the original, so a change to the payload bytes is visible
// through both frames.
func (f *Frame) ShallowCopy() *Frame {
	cp := *f
	return &cp
}

// Logger is the logger used throughout this module. Satisfied by
// github.com/apex/log's Logger among others.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}
