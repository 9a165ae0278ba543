package pinger

import (
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// PacketConn is the transport Pinger sends and receives ICMP frames over.
// Listen returns the raw IPv4 implementation, tests substitute their own.
type PacketConn interface {
	// ReadFrom reads a single ICMP message (without IP header).
	// ttl is the IP TTL of received packet, or 0 when not available.
	ReadFrom(b []byte) (n, ttl int, src net.Addr, err error)
	WriteTo(b []byte, dst net.Addr) (int, error)
	SetReadDeadline(t time.Time) error
	SetTTL(ttl int) error
	Close() error
}

// rawConn is a privileged ip4:icmp socket
type rawConn struct {
	conn *icmp.PacketConn
}

// Listen opens a raw ICMPv4 socket.
// NOTE: this requires super-user privileges (or CAP_NET_RAW).
func Listen() (PacketConn, error) {
	conn, err := icmp.ListenPacket(rawNetwork, "0.0.0.0")
	if err != nil {
		return nil, err
	}

	// TTL is only informational, don't fail if the platform can't deliver it
	conn.IPv4PacketConn().SetControlMessage(ipv4.FlagTTL, true)

	return &rawConn{conn: conn}, nil
}

func (rc *rawConn) ReadFrom(b []byte) (n, ttl int, src net.Addr, err error) {
	var cm *ipv4.ControlMessage
	n, cm, src, err = rc.conn.IPv4PacketConn().ReadFrom(b)
	if cm != nil {
		ttl = cm.TTL
	}
	return n, ttl, src, err
}

func (rc *rawConn) WriteTo(b []byte, dst net.Addr) (int, error) {
	return rc.conn.WriteTo(b, dst)
}

func (rc *rawConn) SetReadDeadline(t time.Time) error {
	return rc.conn.SetReadDeadline(t)
}

func (rc *rawConn) SetTTL(ttl int) error {
	return rc.conn.IPv4PacketConn().SetTTL(ttl)
}

func (rc *rawConn) Close() error {
	return rc.conn.Close()
}
