package config

const pkgName = "PingConfig. "

// This struct is used to cache ping configuration.
// All of them are exported shell variables, parsed once in Init.
type configCache struct {
	debugLevel   int
	exporterPort uint16
}

var cache configCache

// LogLevel returns the configured logger level
func LogLevel() int {
	return cache.debugLevel
}

// ExporterPort returns Prometheus exporter port. Zero means exporter is disabled.
func ExporterPort() uint16 {
	return cache.exporterPort
}
