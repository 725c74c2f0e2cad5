package wmediumd

import (
	"testing"
	"time"
)

func TestSchedulerRearmDisarmsWhenEmpty(t *testing.T) {
	base := time.Now()
	clock := base
	now := func() time.Time { return clock }

	reg := NewStationRegistry()
	if _, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 1}, DefaultDataQueueConfig(), DefaultManagementQueueConfig()); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	s := NewScheduler(now)
	defer s.Stop()
	s.Rearm(reg)

	select {
	case <-s.C():
		t.Fatal("timer must not fire when every queue is empty")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedulerRearmToEarliestExpiry(t *testing.T) {
	base := time.Now()
	clock := base
	now := func() time.Time { return clock }

	reg := NewStationRegistry()
	st, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 1}, DefaultDataQueueConfig(), DefaultManagementQueueConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	st.Data.PushTail(&Frame{Expiry: base.Add(20 * time.Millisecond)})
	st.Mgmt.PushTail(&Frame{Expiry: base.Add(5 * time.Millisecond)})

	s := NewScheduler(now)
	defer s.Stop()
	s.Rearm(reg)

	select {
	case <-s.C():
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestEarliestExpiry(t *testing.T) {
	reg := NewStationRegistry()
	st, err := reg.Add(Addr{0x02, 0, 0, 0, 0, 1}, DefaultDataQueueConfig(), DefaultManagementQueueConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	if _, ok := earliestExpiry(reg); ok {
		t.Fatal("expected no expiry when every queue is empty")
	}

	base := time.Now()
	st.Data.PushTail(&Frame{Expiry: base.Add(2 * time.Second)})
	st.Mgmt.PushTail(&Frame{Expiry: base.Add(time.Second)})

	got, ok := earliestExpiry(reg)
	if !ok {
		t.Fatal("expected an expiry once a queue is non-empty")
	}
	if !got.Equal(base.Add(time.Second)) {
		t.Fatalf("expected the earlier (management) expiry, got %s", got)
	}
}
