package wmediumd

import (
	"testing"
	"time"
)

func mustAddStation(t *testing.T, reg *StationRegistry, last byte) *Station {
	t.Helper()
	st, err := reg.Add(Addr{0x02, 0, 0, 0, 0, last}, DefaultDataQueueConfig(), DefaultManagementQueueConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	return st
}

func TestDeliveryEngineUnicastFanOut(t *testing.T) {
	reg := NewStationRegistry()
	a := mustAddStation(t, reg, 1)
	b := mustAddStation(t, reg, 2)
	_ = mustAddStation(t, reg, 3)

	channel := NewMockControlChannel()
	engine := &DeliveryEngine{Registry: reg, Channel: channel, Logger: &nullLogger{}}

	now := time.Now()
	a.Data.PushTail(&Frame{
		Sender: a.Addr, Dest: b.Addr, Cookie: 42,
		Flags: TxStatAck, Payload: []byte("hello"), Expiry: now.Add(-time.Millisecond),
	})

	engine.Drain(now)

	delivered := channel.Delivered()
	if len(delivered) != 1 {
		t.Fatalf("expected exactly one Deliver event, got %d", len(delivered))
	}
	if delivered[0].Receiver != b.Addr {
		t.Fatalf("expected delivery to %s, got %s", b.Addr, delivered[0].Receiver)
	}

	statuses := channel.TxStatuses()
	if len(statuses) != 1 {
		t.Fatalf("expected exactly one TxStatus event, got %d", len(statuses))
	}
	if statuses[0].Sender != a.Addr || statuses[0].Cookie != 42 {
		t.Fatalf("unexpected tx status: %+v", statuses[0])
	}
}

func TestDeliveryEngineBroadcastFanOut(t *testing.T) {
	reg := NewStationRegistry()
	a := mustAddStation(t, reg, 1)
	b := mustAddStation(t, reg, 2)
	c := mustAddStation(t, reg, 3)

	channel := NewMockControlChannel()
	engine := &DeliveryEngine{Registry: reg, Channel: channel, Logger: &nullLogger{}}

	now := time.Now()
	a.Mgmt.PushTail(&Frame{
		Sender: a.Addr, Dest: BroadcastAddr, Cookie: 7,
		Flags: TxStatAck, Payload: []byte("beacon"), Expiry: now.Add(-time.Millisecond),
	})

	engine.Drain(now)

	delivered := channel.Delivered()
	if len(delivered) != 2 {
		t.Fatalf("expected 2 Deliver events, got %d", len(delivered))
	}
	if delivered[0].Receiver != b.Addr || delivered[1].Receiver != c.Addr {
		t.Fatalf("expected fan-out in registry order, got %+v", delivered)
	}
}

func TestDeliveryEngineNoAckNoDeliver(t *testing.T) {
	reg := NewStationRegistry()
	a := mustAddStation(t, reg, 1)
	b := mustAddStation(t, reg, 2)

	channel := NewMockControlChannel()
	engine := &DeliveryEngine{Registry: reg, Channel: channel, Logger: &nullLogger{}}

	now := time.Now()
	a.Data.PushTail(&Frame{
		Sender: a.Addr, Dest: b.Addr, Cookie: 1,
		Flags: 0, Payload: []byte("lost"), Expiry: now.Add(-time.Millisecond),
	})

	engine.Drain(now)

	if len(channel.Delivered()) != 0 {
		t.Fatal("expected no Deliver events for an unacked frame")
	}
	if len(channel.TxStatuses()) != 1 {
		t.Fatal("expected exactly one TxStatus even when unacked")
	}
}

// nullLogger discards every message; used where tests don't care about log
// output but need something satisfying [Logger].
type nullLogger struct{}

func (*nullLogger) Debug(string)          {}
func (*nullLogger) Debugf(string, ...any) {}
func (*nullLogger) Info(string)           {}
func (*nullLogger) Infof(string, ...any)  {}
func (*nullLogger) Warn(string)           {}
func (*nullLogger) Warnf(string, ...any)  {}
