// Package wmediumd simulates a shared wireless medium for a set of virtual
// radio interfaces driven by a kernel-side hwsim-style simulator.
//
// Each interface hands the simulator an outgoing [Frame] together with a
// multi-rate retry schedule ([MRRSchedule]). The [TransmitSimulator] decides,
// per rate attempt, whether the frame would have been acknowledged given a
// probabilistic [ChannelModel], computes the total on-air time the attempt
// sequence would have consumed, and schedules a delivery event at that
// future instant. The [Scheduler] maintains a single shared timer across all
// stations so that no per-frame timer is ever armed; on fire, the
// [DeliveryEngine] drains every frame whose expiry has passed, re-injects it
// to every matching receiver, and reports the final transmit status back to
// the sender.
//
// A [StationRegistry] holds the set of known stations, each owning a
// management and a data [Queue]. The [ControlChannel] interface is the
// kernel-facing contract: it decodes Submit events and emits Deliver/TxStatus
// events; [NetlinkControlChannel] implements it atop a raw netlink
// socket, and [MockControlChannel] implements it in memory for tests.
package wmediumd
