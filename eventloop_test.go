package wmediumd

import (
	"testing"
	"time"
)

// TestEventLoopSubmitToDelivery drives a single submission through the
// control channel, simulator, scheduler, and delivery engine end to end,
// asserting a Deliver event and a TxStatus event both arrive at the mock
// control channel. This is the package's sole full-stack integration test;
// per-component behavior is covered elsewhere.
func TestEventLoopSubmitToDelivery(t *testing.T) {
	reg := NewStationRegistry()
	a, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 1}, DefaultDataQueueConfig(), DefaultManagementQueueConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	b, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 2}, DefaultDataQueueConfig(), DefaultManagementQueueConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	channel := NewMockControlChannel()
	simulator := &TransmitSimulator{
		Channel: alwaysErr{p: 0},
		NewRNG:  func() TransmitRNG { return NewScriptedRNG(0.9) },
		Now:     func() time.Time { return time.Now() },
		Logger:  &nullLogger{},
	}
	scheduler := NewScheduler(time.Now)
	defer scheduler.Stop()
	delivery := &DeliveryEngine{Registry: reg, Channel: channel, Logger: &nullLogger{}}

	loop := &EventLoop{
		Channel:   channel,
		Registry:  reg,
		Simulator: simulator,
		Scheduler: scheduler,
		Delivery:  delivery,
		Logger:    &nullLogger{},
	}

	done := make(chan any)
	go func() {
		loop.Run()
		close(done)
	}()

	channel.Inject(&Submission{
		Sender:  a.Addr,
		Payload: mkPayload(ACData, b.Addr),
		Cookie:  123,
		MRR:     mkMRR(RateSlot{Idx: 0, Count: 1}),
	})

	deadline := time.After(2 * time.Second)
	for {
		if len(channel.TxStatuses()) >= 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a TxStatus event")
		case <-time.After(5 * time.Millisecond):
		}
	}

	statuses := channel.TxStatuses()
	if statuses[0].Cookie != 123 || statuses[0].Flags&TxStatAck == 0 {
		t.Fatalf("unexpected tx status: %+v", statuses[0])
	}

	delivered := channel.Delivered()
	if len(delivered) != 1 || delivered[0].Receiver != b.Addr {
		t.Fatalf("expected one Deliver event to b, got %+v", delivered)
	}

	channel.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit after the control channel closed")
	}
}

// TestEventLoopDropsUnknownSender exercises the unknown-sender drop path
// (§7): a submission from an address with no registered station must be
// dropped without producing any TxStatus.
func TestEventLoopDropsUnknownSender(t *testing.T) {
	reg := NewStationRegistry()
	if _, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 1}, DefaultDataQueueConfig(), DefaultManagementQueueConfig()); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	channel := NewMockControlChannel()
	simulator := &TransmitSimulator{
		Channel: alwaysErr{p: 0},
		NewRNG:  func() TransmitRNG { return NewScriptedRNG(0.9) },
		Now:     time.Now,
		Logger:  &nullLogger{},
	}
	scheduler := NewScheduler(time.Now)
	defer scheduler.Stop()
	delivery := &DeliveryEngine{Registry: reg, Channel: channel, Logger: &nullLogger{}}

	loop := &EventLoop{
		Channel:   channel,
		Registry:  reg,
		Simulator: simulator,
		Scheduler: scheduler,
		Delivery:  delivery,
		Logger:    &nullLogger{},
	}

	done := make(chan any)
	go func() {
		loop.Run()
		close(done)
	}()

	unknown := Addr{0x02, 0, 0, 0, 0, 0xaa}
	channel.Inject(&Submission{
		Sender:  unknown,
		Payload: mkPayload(ACData, Addr{0x02, 0, 0, 0, 0, 1}),
		Cookie:  1,
		MRR:     mkMRR(RateSlot{Idx: 0, Count: 1}),
	})

	time.Sleep(50 * time.Millisecond)
	if len(channel.TxStatuses()) != 0 {
		t.Fatal("expected no TxStatus for an unknown sender")
	}

	channel.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit after the control channel closed")
	}
}
