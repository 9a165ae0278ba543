package pinger

import (
	"errors"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/SyntropyNet/syntropy-ping/internal/env"
)

// SetReadDeadline limits how long RecvPacket may block
func (p *Pinger) SetReadDeadline(t time.Time) error {
	if p.conn == nil {
		return ErrInvalidConn
	}
	return p.conn.SetReadDeadline(t)
}

// RecvPacket reads a single ICMP message from the connection.
// Deadline expiry is returned as is, use IsTimeout to detect it.
func (p *Pinger) RecvPacket() (*Packet, error) {
	if p.conn == nil {
		return nil, ErrInvalidConn
	}

	bytes := make([]byte, env.RecvBufferSize)
	n, ttl, src, err := p.conn.ReadFrom(bytes)
	if err != nil {
		return nil, err
	}

	addr, err := addrFromNet(src)
	if err != nil {
		return nil, err
	}

	return &Packet{Bytes: bytes[:n], Len: n, TTL: ttl, Addr: addr}, nil
}

// ParsePacket classifies received packet. Only echo replies are accepted.
func (p *Pinger) ParsePacket(recv *Packet) (Reply, bool) {
	return ClassifyReply(recv.Bytes[:recv.Len], recv.Addr)
}

// IsTimeout reports whether err is a read deadline expiry
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var neterr net.Error
	return errors.As(err, &neterr) && neterr.Timeout()
}

func addrFromNet(src net.Addr) (netip.Addr, error) {
	var ip net.IP
	switch a := src.(type) {
	case *net.IPAddr:
		ip = a.IP
	case *net.UDPAddr:
		ip = a.IP
	default:
		return netip.Addr{}, ErrInvalidAddr
	}

	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, ErrInvalidAddr
	}
	return addr.Unmap(), nil
}
