package exporter

import (
	"sync"

	"github.com/SyntropyNet/syntropy-ping/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

type Collector interface {
	probe.ProbeClient
	Describe(ch chan<- *prometheus.Desc)
	Collect(ch chan<- prometheus.Metric)
}

// probeCollector counts probe outcomes of a single destination
type probeCollector struct {
	sync.Mutex
	destination string
	address     string
	sent        uint64
	outcomes    map[probe.Status]uint64
}

// NewCollector creates a collector for destination (as given by user) resolved to address
func NewCollector(destination, address string) Collector {
	return &probeCollector{
		destination: destination,
		address:     address,
		outcomes:    make(map[probe.Status]uint64),
	}
}

func (pc *probeCollector) ProbeProcess(res probe.Result) {
	pc.Lock()
	defer pc.Unlock()

	pc.sent++
	pc.outcomes[res.Status]++
}

func (pc *probeCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(pc, ch)
}

var (
	labels   = []string{"destination", "address"}
	descSent = prometheus.NewDesc(
		"ping_probes_total",
		"Echo request probes made to destination",
		labels, nil,
	)
	descOutcome = prometheus.NewDesc(
		"ping_probe_outcomes_total",
		"Probe outcomes by status",
		[]string{"destination", "address", "status"}, nil,
	)
	statuses = []probe.Status{probe.StatusReply, probe.StatusTimeout, probe.StatusIgnored, probe.StatusError}
)

func (pc *probeCollector) Collect(ch chan<- prometheus.Metric) {
	pc.Lock()
	defer pc.Unlock()

	ch <- prometheus.MustNewConstMetric(
		descSent,
		prometheus.CounterValue,
		float64(pc.sent),
		pc.destination, pc.address,
	)
	for _, s := range statuses {
		ch <- prometheus.MustNewConstMetric(
			descOutcome,
			prometheus.CounterValue,
			float64(pc.outcomes[s]),
			pc.destination, pc.address, s.String(),
		)
	}
}
