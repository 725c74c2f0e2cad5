package wmediumd

//
// Frame classification
//
// Classifies a submitted 802.11 frame as management or data, and decides
// whether it is a "noack" frame, from nothing but the raw bytes the driver
// handed us. This runs once, at submission time (§4.3 steps 1-2); the
// verdict is cached on the in-flight [Frame] so the delivery engine never
// needs to re-parse.
//

const (
	// dot11Addr1Offset is the byte offset of address 1 (the receiver
	// address for frames to an AP, or destination for IBSS/ad-hoc frames)
	// within the 802.11 MAC header that follows the 2-byte frame-control
	// field and 2-byte duration/ID field.
	dot11Addr1Offset = 4

	// dot11TypeMask isolates the 2-bit type subfield (bits 2-3) of the
	// first frame-control octet; 00 is management, 01 is control, 10 is
	// data.
	dot11TypeMask = 0x0c
	dot11TypeMgmt = 0x00
)

// ErrFrameTooShort reports that a submitted frame is too short to contain
// even a minimal 802.11 header.
var ErrFrameTooShort = errFrameTooShort{}

type errFrameTooShort struct{}

func (errFrameTooShort) Error() string { return "wmediumd: frame shorter than an 802.11 header" }

// classify parses payload's frame-control byte and first address field,
// returning the access category, destination address, and whether the
// frame is noack, per spec §4.3 steps 1-2.
func classify(payload []byte) (class AccessCategory, dest Addr, noack bool, err error) {
	if len(payload) < dot11Addr1Offset+6 {
		return ACData, Addr{}, false, ErrFrameTooShort
	}
	fc := payload[0]
	if fc&dot11TypeMask == dot11TypeMgmt {
		class = ACManagement
	} else {
		class = ACData
	}
	copy(dest[:], payload[dot11Addr1Offset:dot11Addr1Offset+6])
	noack = class == ACManagement || dest.Multicast()
	return class, dest, noack, nil
}
