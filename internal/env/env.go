// Env packet describes all settings, common to whole application
package env

import "time"

const (
	// Outgoing IPv4 time to live of every echo request.
	DefaultTTL = 64
	// How long to wait for an echo reply before reporting a timeout.
	ReplyTimeout = time.Second
	// Pause between two consecutive probes.
	ProbeInterval = time.Second

	// Echo request payload. Its content has no meaning, it only pads the frame.
	EchoPayload = "abcdefghijklmnopqrstuvwxyz"
	// ICMP header length: type, code, checksum, identifier and sequence.
	IcmpHeaderLength = 8
	// Receive buffer size. Large enough for any ICMP message we may get on a
	// raw socket without fragmentation.
	RecvBufferSize = 1500

	// Default log level name, used when PING_LOG_LEVEL is not set.
	DefaultLogLevel = "WARNING"
)
