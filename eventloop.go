package wmediumd

//
// Supervisor loop (§5, §7, §9)
//
// One select multiplexing exactly one control channel and one timer.
// Adapted from the teacher's linkForward: a single goroutine owns both the
// channel and the scheduler, so no locking is needed anywhere in the
// simulation core.
//

import (
	"os"
	"os/signal"
	"syscall"
)

// EventLoop ties a [ControlChannel], [Scheduler], [TransmitSimulator],
// [StationRegistry] and [DeliveryEngine] together into the single-threaded
// supervisor described by §5. The zero value is not usable; fill all fields
// marked MANDATORY and call Run.
type EventLoop struct {
	// Channel is the MANDATORY control channel.
	Channel ControlChannel

	// Registry is the MANDATORY station registry.
	Registry *StationRegistry

	// Simulator is the MANDATORY transmit simulator.
	Simulator *TransmitSimulator

	// Scheduler is the MANDATORY scheduler.
	Scheduler *Scheduler

	// Delivery is the MANDATORY delivery engine.
	Delivery *DeliveryEngine

	// Logger is the MANDATORY logger.
	Logger Logger

	// shutdownRequested is created by Run and notified on SIGUSR1 to
	// request a graceful shutdown (§9 Design Notes).
	shutdownRequested chan os.Signal
}

// Run drives the supervisor loop until the control channel closes or a
// shutdown signal arrives. On return, every frame still queued is dropped
// without a TxStatus, per §5 ("a frame in flight when the process exits is
// simply lost").
func (loop *EventLoop) Run() {
	loop.shutdownRequested = make(chan os.Signal, 1)
	signal.Notify(loop.shutdownRequested, syscall.SIGUSR1)
	defer signal.Stop(loop.shutdownRequested)

	for {
		select {
		case <-loop.Channel.SubmissionAvailable():
			loop.handleSubmission()

		case now := <-loop.Scheduler.C():
			loop.Delivery.Drain(now)
			loop.Scheduler.Rearm(loop.Registry)

		case <-loop.Channel.Closed():
			loop.Logger.Info("wmediumd: eventloop: control channel closed, exiting")
			return

		case <-loop.shutdownRequested:
			loop.Logger.Info("wmediumd: eventloop: shutdown requested, exiting")
			return
		}
	}
}

// handleSubmission reads one pending submission and, if it decodes and
// names a known station, feeds it to the transmit simulator and rearms the
// scheduler (§7: unknown-sender and decode errors are dropped and logged,
// the loop continues).
func (loop *EventLoop) handleSubmission() {
	sub, err := loop.Channel.ReadSubmissionNonblocking()
	if err != nil {
		if err == ErrNoSubmission {
			return
		}
		loop.Logger.Warnf("wmediumd: eventloop: read submission: %s", err.Error())
		return
	}

	station := loop.Registry.Lookup(sub.Sender)
	if station == nil {
		loop.Logger.Warnf("wmediumd: eventloop: unknown sender %s, dropping submission", sub.Sender)
		return
	}

	if _, err := loop.Simulator.Submit(station, sub.Payload, sub.Cookie, sub.MRR); err != nil {
		loop.Logger.Warnf("wmediumd: eventloop: submit from %s: %s", sub.Sender, err.Error())
		return
	}
	loop.Scheduler.Rearm(loop.Registry)
}
