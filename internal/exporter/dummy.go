package exporter

import (
	"github.com/SyntropyNet/syntropy-ping/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

// DummyCollector is used when exporter is disabled
type DummyCollector struct {
}

func (dc *DummyCollector) ProbeProcess(res probe.Result) {
}

func (dc *DummyCollector) Describe(ch chan<- *prometheus.Desc) {
}

func (dc *DummyCollector) Collect(ch chan<- prometheus.Metric) {
}
