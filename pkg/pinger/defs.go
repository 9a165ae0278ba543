package pinger

import "errors"

const (
	ProtocolICMP = 1

	// network passed to icmp.ListenPacket for a raw (privileged) ICMPv4 socket
	rawNetwork = "ip4:icmp"
)

var (
	ErrInvalidConn = errors.New("invalid connection")
	ErrInvalidAddr = errors.New("invalid address")
	ErrBadChecksum = errors.New("invalid icmp checksum")
)
