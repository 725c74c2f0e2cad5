package wmediumd

//
// Netlink-backed control channel
//
// A generic-netlink-style socket carrying Submit/Deliver/TxStatus
// datagrams to and from the kernel driver. Uses a simplified, self-defined
// attribute-free wire format on top of a real netlink socket and real
// nlmsghdr framing (golang.org/x/sys/unix) rather than the full NL80211
// generic-netlink attribute grammar, which is out of scope for this
// simulator (§1: the control channel is an external collaborator whose
// interior is not specified). Background goroutines do the actual
// blocking syscalls and signal readiness through channels, mirroring the
// teacher's pcapDumperNIC/RouterPort pattern of a small worker goroutine
// feeding a channel that the single-threaded event loop polls.
//

import (
	"bytes"
	"encoding/binary"
	"sync"

	"golang.org/x/sys/unix"
)

// netlink message types used on the wire. These are local to this
// simulator's socket family and carry no relation to a real NL80211
// command set.
const (
	nlMsgSubmit   uint16 = 1
	nlMsgDeliver  uint16 = 2
	nlMsgTxStatus uint16 = 3
)

// NetlinkControlChannel implements [ControlChannel] over a netlink socket.
type NetlinkControlChannel struct {
	fd     int
	logger Logger

	closeOnce sync.Once
	closed    chan any

	avail chan any
	inbox chan *Submission

	wg sync.WaitGroup
}

// NewNetlinkControlChannel opens a netlink socket in the given protocol
// family (a locally-assigned NETLINK_* protocol number reserved for this
// simulator) and starts the background reader. Call Close when done.
func NewNetlinkControlChannel(protocol int, logger Logger) (*NetlinkControlChannel, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, protocol)
	if err != nil {
		return nil, err
	}
	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}

	cc := &NetlinkControlChannel{
		fd:     fd,
		logger: logger,
		closed: make(chan any),
		avail:  make(chan any, 1),
		inbox:  make(chan *Submission, 64),
	}
	cc.wg.Add(1)
	go cc.readLoop()
	return cc, nil
}

var _ ControlChannel = &NetlinkControlChannel{}

// SubmissionAvailable implements [ControlChannel].
func (cc *NetlinkControlChannel) SubmissionAvailable() <-chan any {
	return cc.avail
}

// Closed implements [ControlChannel].
func (cc *NetlinkControlChannel) Closed() <-chan any {
	return cc.closed
}

// ReadSubmissionNonblocking implements [ControlChannel].
func (cc *NetlinkControlChannel) ReadSubmissionNonblocking() (*Submission, error) {
	select {
	case sub := <-cc.inbox:
		return sub, nil
	default:
		select {
		case <-cc.closed:
			return nil, ErrChannelClosed
		default:
			return nil, ErrNoSubmission
		}
	}
}

// readLoop blocks on the socket, for at most submissionDeadline per read,
// and decodes Submit datagrams, posting each onto inbox and signalling
// avail. It exits when the socket is closed.
func (cc *NetlinkControlChannel) readLoop() {
	defer cc.wg.Done()
	tv := unix.NsecToTimeval(int64(submissionDeadline))
	if err := unix.SetsockoptTimeval(cc.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		cc.logger.Warnf("wmediumd: netlink: SO_RCVTIMEO: %s", err.Error())
	}
	buf := make([]byte, 1<<16)
	for {
		n, _, err := unix.Recvfrom(cc.fd, buf, 0)
		if err == unix.EAGAIN || err == unix.EINTR {
			select {
			case <-cc.closed:
				return
			default:
				continue
			}
		}
		if err != nil {
			return
		}
		msgs, err := unix.ParseNetlinkMessage(buf[:n])
		if err != nil {
			cc.logger.Warnf("wmediumd: netlink: ParseNetlinkMessage: %s", err.Error())
			continue
		}
		for _, msg := range msgs {
			if msg.Header.Type != nlMsgSubmit {
				continue
			}
			sub, err := decodeSubmission(msg.Data)
			if err != nil {
				cc.logger.Warnf("wmediumd: netlink: %s", err.Error())
				continue
			}
			select {
			case cc.inbox <- sub:
				select {
				case cc.avail <- true:
				default:
				}
			default:
				cc.logger.Warnf("wmediumd: netlink: inbox full, dropping submission")
			}
		}
	}
}

// SendDeliver implements [ControlChannel].
func (cc *NetlinkControlChannel) SendDeliver(event DeliverEvent) error {
	return cc.send(nlMsgDeliver, encodeDeliver(event))
}

// SendTxStatus implements [ControlChannel].
func (cc *NetlinkControlChannel) SendTxStatus(event TxStatusEvent) error {
	return cc.send(nlMsgTxStatus, encodeTxStatus(event))
}

// send wraps payload in an nlmsghdr and writes it to the socket.
func (cc *NetlinkControlChannel) send(msgType uint16, payload []byte) error {
	hdr := unix.NlMsghdr{
		Len:   uint32(unix.SizeofNlMsghdr + len(payload)),
		Type:  msgType,
		Flags: 0,
		Seq:   0,
		Pid:   0,
	}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return err
	}
	buf.Write(payload)
	return unix.Sendto(cc.fd, buf.Bytes(), 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK})
}

// Close implements [ControlChannel].
func (cc *NetlinkControlChannel) Close() error {
	var err error
	cc.closeOnce.Do(func() {
		err = unix.Close(cc.fd)
		close(cc.closed)
		cc.wg.Wait()
	})
	return err
}

//
// Wire encoding
//
// Submit:  6-byte sender | 2-byte payload length | payload | 4-byte flags |
//          NRates*2 bytes of (idx:int8,count:int8) | 8-byte cookie
// Deliver: 6-byte receiver | 1-byte rx rate idx | 4-byte rx signal (int32) |
//          2-byte payload length | payload
// TxStatus: 6-byte sender | 4-byte flags | 4-byte tx signal (int32) |
//          NRates*2 bytes of MRR | 8-byte cookie
//

func decodeSubmission(data []byte) (*Submission, error) {
	const minLen = 6 + 2 + 4 + NRates*2 + 8
	if len(data) < minLen {
		return nil, ErrDecodeSubmission
	}
	var sub Submission
	copy(sub.Sender[:], data[0:6])
	payloadLen := int(binary.LittleEndian.Uint16(data[6:8]))
	off := 8
	if len(data) < off+payloadLen+4+NRates*2+8 {
		return nil, ErrDecodeSubmission
	}
	sub.Payload = append([]byte{}, data[off:off+payloadLen]...)
	off += payloadLen
	sub.Flags = binary.LittleEndian.Uint32(data[off : off+4])
	off += 4
	for i := 0; i < NRates; i++ {
		sub.MRR[i] = RateSlot{Idx: int8(data[off]), Count: int8(data[off+1])}
		off += 2
	}
	sub.Cookie = binary.LittleEndian.Uint64(data[off : off+8])
	return &sub, nil
}

func encodeDeliver(event DeliverEvent) []byte {
	buf := new(bytes.Buffer)
	buf.Write(event.Receiver[:])
	buf.WriteByte(byte(event.RxRateIdx))
	_ = binary.Write(buf, binary.LittleEndian, int32(event.RxSignal))
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(event.Payload)))
	buf.Write(event.Payload)
	return buf.Bytes()
}

func encodeTxStatus(event TxStatusEvent) []byte {
	buf := new(bytes.Buffer)
	buf.Write(event.Sender[:])
	_ = binary.Write(buf, binary.LittleEndian, uint32(event.Flags))
	_ = binary.Write(buf, binary.LittleEndian, int32(event.TxSignal))
	for _, slot := range event.MRR {
		buf.WriteByte(byte(slot.Idx))
		buf.WriteByte(byte(slot.Count))
	}
	_ = binary.Write(buf, binary.LittleEndian, event.Cookie)
	return buf.Bytes()
}
