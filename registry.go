package wmediumd

//
// Station registry
//

import (
	"errors"
	"fmt"
)

// Station is a single virtual radio interface, identified by its 48-bit
// hardware address. A station owns exactly two queues and is never moved
// after creation; all references elsewhere are by address lookup.
type Station struct {
	Addr Addr
	Data *Queue
	Mgmt *Queue
}

// QueueFor returns the station's queue for the given access category.
func (s *Station) QueueFor(ac AccessCategory) *Queue {
	if ac == ACManagement {
		return s.Mgmt
	}
	return s.Data
}

// ErrDuplicateAddr reports that a station address was already registered.
var ErrDuplicateAddr = errors.New("wmediumd: station address already registered")

// ErrUnknownStation reports that an address has no corresponding station.
var ErrUnknownStation = errors.New("wmediumd: unknown station address")

// StationRegistry is the set of stations known to a running simulation,
// keyed by address. The zero value is ready to use. Registry order (the
// order stations were added) is significant: it is the fan-out and
// tie-break order used by the delivery engine (§4.5, §5).
type StationRegistry struct {
	order  []Addr
	byAddr map[Addr]*Station
}

// NewStationRegistry creates an empty [StationRegistry].
func NewStationRegistry() *StationRegistry {
	return &StationRegistry{
		byAddr: make(map[Addr]*Station),
	}
}

// Add creates and registers a new station with the given queue parameters.
// Returns [ErrDuplicateAddr] if addr is already registered.
func (r *StationRegistry) Add(addr Addr, dataCfg, mgmtCfg QueueConfig) (*Station, error) {
	if _, found := r.byAddr[addr]; found {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAddr, addr)
	}
	if r.byAddr == nil {
		r.byAddr = make(map[Addr]*Station)
	}
	st := &Station{
		Addr: addr,
		Data: NewQueue(dataCfg),
		Mgmt: NewQueue(mgmtCfg),
	}
	r.byAddr[addr] = st
	r.order = append(r.order, addr)
	return st, nil
}

// Lookup returns the station with the given address, or nil if none is
// registered.
func (r *StationRegistry) Lookup(addr Addr) *Station {
	return r.byAddr[addr]
}

// Len returns the number of registered stations.
func (r *StationRegistry) Len() int {
	return len(r.order)
}

// Each calls fn once per station, in registry order. fn must not mutate
// the registry.
func (r *StationRegistry) Each(fn func(*Station)) {
	for _, addr := range r.order {
		fn(r.byAddr[addr])
	}
}

// Stations returns the registered stations in registry order.
func (r *StationRegistry) Stations() []*Station {
	out := make([]*Station, 0, len(r.order))
	r.Each(func(s *Station) { out = append(out, s) })
	return out
}
