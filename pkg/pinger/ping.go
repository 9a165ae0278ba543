package pinger

import (
	"github.com/SyntropyNet/syntropy-ping/internal/env"
)

// NewPinger returns a new Pinger instance.
// id is ICMP identifier put into every echo request (usually process ID truncated to 16 bits).
func NewPinger(conn PacketConn, id uint16) *Pinger {
	return &Pinger{
		TTL:     env.DefaultTTL,
		id:      id,
		payload: []byte(env.EchoPayload),
		conn:    conn,
	}
}

// Pinger represents an ICMPv4 echo sender/receiver.
// Pinger owns its connection. It is not safe for concurrent use.
type Pinger struct {
	// TTL of outgoing echo requests
	TTL int

	id      uint16
	payload []byte
	conn    PacketConn
}

// ID returns ICMP identifier of this pinger
func (p *Pinger) ID() uint16 {
	return p.id
}

// PayloadSize returns size of echo request payload in bytes
func (p *Pinger) PayloadSize() int {
	return len(p.payload)
}

// PacketSize returns logical size of echo request: payload and ICMP header
func (p *Pinger) PacketSize() int {
	return len(p.payload) + env.IcmpHeaderLength
}

// Close closes underlying connection. Pinger cannot be used afterwards.
func (p *Pinger) Close() error {
	if p.conn == nil {
		return ErrInvalidConn
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
