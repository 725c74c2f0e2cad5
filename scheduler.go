package wmediumd

//
// Global scheduler (§4.4)
//
// One process-wide timer armed to an absolute monotonic deadline: the
// minimum head-of-queue expiry across every station's two queues, or
// disarmed when all queues are empty. Adapted from the teacher's
// LinkFwdWithDelay: "rearm to the next deadline, or park" is exactly the
// same algorithm, generalized from one inflight slice to a scan over every
// station/queue head.
//

import "time"

// Scheduler owns the single timer that drives expiry-ordered delivery.
// The zero value is not usable; construct with [NewScheduler].
type Scheduler struct {
	timer *time.Timer
	now   func() time.Time
}

// NewScheduler creates a disarmed [Scheduler]. now is the monotonic clock
// to use; tests inject a fake.
func NewScheduler(now func() time.Time) *Scheduler {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return &Scheduler{timer: t, now: now}
}

// C returns the channel that becomes readable when the timer fires.
func (s *Scheduler) C() <-chan time.Time {
	return s.timer.C
}

// Rearm implements the rearm protocol: compute the minimum head-of-queue
// expiry across reg, arm the timer there if one exists, else disarm.
func (s *Scheduler) Rearm(reg *StationRegistry) {
	drainTimer(s.timer)
	next, ok := earliestExpiry(reg)
	if !ok {
		return
	}
	d := next.Sub(s.now())
	if d <= 0 {
		d = time.Nanosecond
	}
	s.timer.Reset(d)
}

// Stop releases the timer. Idempotent.
func (s *Scheduler) Stop() {
	s.timer.Stop()
}

// drainTimer stops t and, if it had already fired, drains the pending
// value so a subsequent Reset starts from a clean slate.
func drainTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// earliestExpiry is an O(#stations) scan for the minimum head-of-queue
// expiry over every station's management and data queue, scanned in
// registry order with management before data, matching the delivery
// engine's tie-break order (§5). No priority-queue structure is required
// because each queue's head is always its earliest frame (§4.4).
func earliestExpiry(reg *StationRegistry) (time.Time, bool) {
	var best time.Time
	found := false
	reg.Each(func(st *Station) {
		for _, q := range [2]*Queue{st.Mgmt, st.Data} {
			if exp, ok := q.HeadExpiry(); ok {
				if !found || exp.Before(best) {
					best = exp
					found = true
				}
			}
		}
	})
	return best, found
}
