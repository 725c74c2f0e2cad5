package wmediumd

//
// Per-access-category queue
//
// A Queue is an owned, ordered sequence of frames: a frame's identity is
// its position in the queue, not a pointer into an intrusive list. Frames
// move only via PopHead, so no back-pointer from frame to queue is ever
// needed (see DESIGN.md's entry for queue.go).
//

import "time"

// QueueConfig bounds the contention window used when computing backoff for
// frames submitted to a queue.
type QueueConfig struct {
	// CwMin is the initial contention window.
	CwMin int

	// CwMax is the ceiling the contention window never exceeds.
	CwMax int
}

// DefaultDataQueueConfig returns the spec's default data-queue parameters.
func DefaultDataQueueConfig() QueueConfig {
	return QueueConfig{CwMin: 15, CwMax: 1023}
}

// DefaultManagementQueueConfig returns the spec's default management-queue
// parameters.
func DefaultManagementQueueConfig() QueueConfig {
	return QueueConfig{CwMin: 3, CwMax: 7}
}

// Queue is a FIFO of pending frames. The zero value is not usable; build
// one with [NewQueue]. Because every frame's air time is computed against
// the queue's own state at submission time, insertion order equals
// non-decreasing expiry order: the scheduler relies on this invariant to
// treat the queue head as its earliest-expiry frame.
type Queue struct {
	Config QueueConfig
	frames []*Frame
}

// NewQueue creates an empty [Queue] with the given contention parameters.
func NewQueue(cfg QueueConfig) *Queue {
	return &Queue{Config: cfg}
}

// Len returns the number of frames currently queued.
func (q *Queue) Len() int {
	return len(q.frames)
}

// Empty reports whether the queue holds no frames.
func (q *Queue) Empty() bool {
	return len(q.frames) == 0
}

// PushTail appends a frame to the tail of the queue. Callers must ensure
// frame.Expiry is not before the expiry of the current tail, preserving the
// queue's non-decreasing-expiry invariant.
func (q *Queue) PushTail(frame *Frame) {
	q.frames = append(q.frames, frame)
}

// Head returns the earliest-queued frame without removing it, or nil if
// the queue is empty.
func (q *Queue) Head() *Frame {
	if len(q.frames) == 0 {
		return nil
	}
	return q.frames[0]
}

// HeadExpiry returns the head frame's expiry and true, or the zero time and
// false if the queue is empty.
func (q *Queue) HeadExpiry() (time.Time, bool) {
	head := q.Head()
	if head == nil {
		return time.Time{}, false
	}
	return head.Expiry, true
}

// PopHead removes and returns the head frame, or nil if the queue is empty.
func (q *Queue) PopHead() *Frame {
	if len(q.frames) == 0 {
		return nil
	}
	head := q.frames[0]
	q.frames = q.frames[1:]
	return head
}

// DrainExpired removes and returns, in order, every leading frame whose
// expiry is at or before now, stopping at the first non-expired head as
// required by §4.5 step 2 ("do not scan further into the queue").
func (q *Queue) DrainExpired(now time.Time) []*Frame {
	var drained []*Frame
	for {
		head := q.Head()
		if head == nil || head.Expiry.After(now) {
			break
		}
		drained = append(drained, q.PopHead())
	}
	return drained
}
