package wmediumd

//
// YAML configuration loading
//
// Parses the station/queue topology the driver will submit frames against.
// Grounded on the pack's YAML-config convention (gopkg.in/yaml.v3); the
// teacher itself wires station/link parameters in Go literals rather than
// from a file, so the parsed shape below is new but the "decode into a
// plain struct, then validate" pattern matches the teacher's own
// LinkConfig/DPIEngine construction style.
//

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrTooFewStations reports a config describing fewer than two stations:
// a simulated medium with zero or one station has nothing to deliver to.
var ErrTooFewStations = errors.New("wmediumd: config: need at least two stations")

// ErrConfigDuplicateAddr reports two station entries sharing an address.
var ErrConfigDuplicateAddr = errors.New("wmediumd: config: duplicate station address")

// ErrConfigBadAddr reports a station entry whose addr field does not parse
// as a colon-hex 48-bit address.
var ErrConfigBadAddr = errors.New("wmediumd: config: malformed station address")

// QueueConfigFile is the on-disk shape of a [QueueConfig]; an omitted (nil)
// field falls back to the relevant default when the enclosing block is
// present, and the full default applies when the block itself is absent.
// An explicit zero is kept as zero.
type QueueConfigFile struct {
	CwMin *int `yaml:"cw_min"`
	CwMax *int `yaml:"cw_max"`
}

// resolve merges the file overrides onto def, taking def's values for any
// nil field.
func (f *QueueConfigFile) resolve(def QueueConfig) QueueConfig {
	out := def
	if f != nil {
		if f.CwMin != nil {
			out.CwMin = *f.CwMin
		}
		if f.CwMax != nil {
			out.CwMax = *f.CwMax
		}
	}
	return out
}

// StationConfigFile is the on-disk shape of one station entry.
type StationConfigFile struct {
	Addr string           `yaml:"addr"`
	Data *QueueConfigFile `yaml:"data"`
	Mgmt *QueueConfigFile `yaml:"mgmt"`
}

// ConfigFile is the top-level on-disk configuration shape.
type ConfigFile struct {
	Stations []StationConfigFile `yaml:"stations"`

	// Trace, if present, is a filesystem path where a [FrameTraceWriter]
	// records every Deliver/TxStatus emission as a PCAP trace (§4.8). A
	// "-trace" CLI flag passed to cmd/wmediumd overrides this field.
	Trace string `yaml:"trace,omitempty"`
}

// ParseAddr decodes a colon-hex address of the form "aa:bb:cc:dd:ee:ff".
func ParseAddr(s string) (Addr, error) {
	var addr Addr
	_, err := fmt.Sscanf(
		s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&addr[0], &addr[1], &addr[2], &addr[3], &addr[4], &addr[5],
	)
	if err != nil || !strings.EqualFold(addr.String(), s) {
		return Addr{}, fmt.Errorf("%w: %q", ErrConfigBadAddr, s)
	}
	return addr, nil
}

// Config is the result of loading a configuration file: the seeded station
// registry plus the ambient options that sit alongside the simulated
// medium rather than inside it.
type Config struct {
	Registry  *StationRegistry
	TracePath string
}

// LoadConfig reads and validates a YAML configuration from r, returning the
// populated [Config].
func LoadConfig(r io.Reader) (*Config, error) {
	var cf ConfigFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("wmediumd: config: decode: %w", err)
	}
	reg, err := buildRegistry(cf)
	if err != nil {
		return nil, err
	}
	return &Config{Registry: reg, TracePath: cf.Trace}, nil
}

// LoadConfigFile opens path and calls [LoadConfig] on its contents.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

func buildRegistry(cf ConfigFile) (*StationRegistry, error) {
	if len(cf.Stations) < 2 {
		return nil, ErrTooFewStations
	}
	reg := NewStationRegistry()
	for _, sc := range cf.Stations {
		addr, err := ParseAddr(sc.Addr)
		if err != nil {
			return nil, err
		}
		dataCfg := sc.Data.resolve(DefaultDataQueueConfig())
		mgmtCfg := sc.Mgmt.resolve(DefaultManagementQueueConfig())
		if _, err := reg.Add(addr, dataCfg, mgmtCfg); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigDuplicateAddr, addr)
		}
	}
	return reg, nil
}

// WriteSkeletonConfig writes a minimal valid configuration for n stations
// (n must be at least 2) to w, with sequentially-assigned addresses and no
// queue overrides, for use by "wmediumd -o".
func WriteSkeletonConfig(w io.Writer, n int) error {
	if n < 2 {
		return ErrTooFewStations
	}
	cf := ConfigFile{Stations: make([]StationConfigFile, n)}
	for i := 0; i < n; i++ {
		addr := Addr{0x02, 0x00, 0x00, 0x00, 0x00, byte(i + 1)}
		cf.Stations[i] = StationConfigFile{Addr: addr.String()}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(cf)
}
