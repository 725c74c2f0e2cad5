// Command wmediumd simulates an 802.11 wireless medium for a configured
// set of stations.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"

	"github.com/virtmedium/wmediumd"
)

func main() {
	configPath := flag.String("c", "", "load station configuration from `path`")
	skeletonOut := flag.String("o", "", "write a skeleton configuration to `path` and exit")
	skeletonStations := flag.Int("n", 2, "number of stations in the skeleton configuration")
	netlinkProtocol := flag.Int("netlink-protocol", 0, "netlink protocol number for the control channel")
	mock := flag.Bool("mock", false, "use an in-memory control channel instead of netlink (testing only)")
	tracePath := flag.String("trace", "", "capture every Deliver/TxStatus emission as a PCAP trace to `path`")
	version := flag.Bool("V", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("wmediumd (reimplementation)")
		return
	}

	if *skeletonOut != "" {
		n := *skeletonStations
		switch flag.NArg() {
		case 0:
		case 1:
			v, err := strconv.Atoi(flag.Arg(0))
			if err != nil {
				usage()
				os.Exit(2)
			}
			n = v
		default:
			usage()
			os.Exit(2)
		}
		runSkeleton(*skeletonOut, n)
		return
	}

	if *configPath == "" || flag.NArg() != 0 {
		usage()
		os.Exit(2)
	}

	run(*configPath, *netlinkProtocol, *mock, *tracePath)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: wmediumd -c config.yaml [-netlink-protocol N] [-mock] [-trace path]\n")
	fmt.Fprintf(os.Stderr, "       wmediumd -o config.yaml [-n stations | stations]\n")
	flag.PrintDefaults()
}

func runSkeleton(path string, n int) {
	f, err := os.Create(path)
	if err != nil {
		log.Log.Warnf("wmediumd: create %s: %s", path, err.Error())
		os.Exit(1)
	}
	defer f.Close()
	if err := wmediumd.WriteSkeletonConfig(f, n); err != nil {
		log.Log.Warnf("wmediumd: write skeleton: %s", err.Error())
		os.Exit(1)
	}
}

func run(configPath string, netlinkProtocol int, mock bool, tracePathFlag string) {
	cfg, err := wmediumd.LoadConfigFile(configPath)
	if err != nil {
		log.Log.Warnf("wmediumd: load config: %s", err.Error())
		os.Exit(1)
	}

	var channel wmediumd.ControlChannel
	if mock {
		log.Log.Warnf("wmediumd: -mock given, using an in-memory control channel (testing only)")
		channel = wmediumd.NewMockControlChannel()
	} else {
		netlinkChannel, err := wmediumd.NewNetlinkControlChannel(netlinkProtocol, log.Log)
		if err != nil {
			log.Log.Warnf("wmediumd: netlink control channel: %s", err.Error())
			os.Exit(1)
		}
		channel = netlinkChannel
	}
	defer channel.Close()

	rng := wmediumd.NewTimeSeededRNG()
	simulator := &wmediumd.TransmitSimulator{
		Channel: wmediumd.NewPERTableModel(),
		SNR:     20,
		NewRNG:  func() wmediumd.TransmitRNG { return rng },
		Now:     time.Now,
		Logger:  log.Log,
	}

	scheduler := wmediumd.NewScheduler(time.Now)
	defer scheduler.Stop()

	delivery := &wmediumd.DeliveryEngine{
		Registry: cfg.Registry,
		Channel:  channel,
		Logger:   log.Log,
	}

	tracePath := tracePathFlag
	if tracePath == "" {
		tracePath = cfg.TracePath
	}
	if tracePath != "" {
		trace, err := wmediumd.NewFrameTraceWriter(tracePath, log.Log)
		if err != nil {
			log.Log.Warnf("wmediumd: trace capture: %s", err.Error())
			os.Exit(1)
		}
		defer trace.Close()
		delivery.Trace = trace
	}

	loop := &wmediumd.EventLoop{
		Channel:   channel,
		Registry:  cfg.Registry,
		Simulator: simulator,
		Scheduler: scheduler,
		Delivery:  delivery,
		Logger:    log.Log,
	}
	loop.Run()
}
