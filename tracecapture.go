package wmediumd

//
// Frame trace capture (§4.8 [ADDED])
//
// Adapted from the teacher's PCAPDumper/pcapDumperNIC: the same
// background-goroutine-plus-buffered-channel architecture, but captures
// every frame the delivery engine reports rather than wrapping a NIC, since
// this simulator has no NIC abstraction. Link type is IEEE 802.11 instead
// of IPv4.
//

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// FrameTraceWriter captures the frame payloads passed to Capture (by the
// delivery engine, once per Deliver and once per TxStatus emission) to a
// PCAP file with link-type IEEE802_11. Each record's timestamp is the wall
// clock at the moment the background writer writes it. The zero value is invalid; use
// [NewFrameTraceWriter]. Capture is non-blocking and best-effort: a full
// internal buffer silently drops further captures rather than stalling the
// caller (mirrors the teacher's pcapDumperNIC.deliverPacketInfo).
type FrameTraceWriter struct {
	cancel    context.CancelFunc
	closeOnce sync.Once
	joined    chan any
	logger    Logger
	pich      chan *traceEntry
}

// traceEntry is one captured frame awaiting the background writer.
type traceEntry struct {
	originalLength int
	snapshot       []byte
}

// NewFrameTraceWriter creates filename and starts the background writer
// goroutine. Call Close when done to flush and release the file.
func NewFrameTraceWriter(filename string, logger Logger) (*FrameTraceWriter, error) {
	const manyFrames = 4096
	ctx, cancel := context.WithCancel(context.Background())
	tw := &FrameTraceWriter{
		cancel: cancel,
		joined: make(chan any),
		logger: logger,
		pich:   make(chan *traceEntry, manyFrames),
	}
	ready := make(chan error, 1)
	go tw.loop(ctx, filename, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return tw, nil
}

// Capture records payload for the trace. Safe for concurrent use, though
// the event loop only ever calls it from its own goroutine.
func (tw *FrameTraceWriter) Capture(payload []byte) {
	const captureLength = 512
	snapLen := len(payload)
	if snapLen > captureLength {
		snapLen = captureLength
	}
	entry := &traceEntry{
		originalLength: len(payload),
		snapshot:       append([]byte{}, payload[:snapLen]...),
	}
	select {
	case tw.pich <- entry:
	default:
		tw.logger.Warnf("wmediumd: tracecapture: buffer full, dropping frame")
	}
}

// loop opens filename, writes the PCAP header, and then writes each
// captured entry until ctx is done, at which point it writes the entries
// still buffered and returns.
func (tw *FrameTraceWriter) loop(ctx context.Context, filename string, ready chan<- error) {
	defer close(tw.joined)

	filep, err := os.Create(filename)
	if err != nil {
		ready <- err
		return
	}
	defer filep.Close()

	w := pcapgo.NewWriter(filep)
	const largeSnapLen = 262144
	if err := w.WriteFileHeader(largeSnapLen, layers.LinkTypeIEEE802_11); err != nil {
		ready <- err
		return
	}
	ready <- nil

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case entry := <-tw.pich:
					tw.writeEntry(entry, w)
				default:
					return
				}
			}
		case entry := <-tw.pich:
			tw.writeEntry(entry, w)
		}
	}
}

// writeEntry appends one captured frame to w.
func (tw *FrameTraceWriter) writeEntry(entry *traceEntry, w *pcapgo.Writer) {
	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(entry.snapshot),
		Length:        entry.originalLength,
	}
	if err := w.WritePacket(ci, entry.snapshot); err != nil {
		tw.logger.Warnf("wmediumd: tracecapture: WritePacket: %s", err.Error())
	}
}

// Close stops the background writer and releases the file. Idempotent.
func (tw *FrameTraceWriter) Close() error {
	tw.closeOnce.Do(func() {
		tw.cancel()
		tw.logger.Debugf("wmediumd: tracecapture: awaiting background writer to finish")
		<-tw.joined
	})
	return nil
}
