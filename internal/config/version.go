package config

// Overridden at build time with -ldflags "-X ...config.version=..."
var (
	version    = "0.0.0"
	subversion = "local"
)

func GetFullVersion() string {
	if subversion != "" {
		return version + "-" + subversion
	}
	return version
}
