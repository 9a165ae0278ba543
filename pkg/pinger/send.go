package pinger

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Do not retry infinitely when kernel has no buffer space
const sendRetries = 6

func (p *Pinger) SendICMP(addr netip.Addr, sequence uint16) error {
	pkt, err := p.PrepareICMP(addr, sequence)
	if err != nil {
		return err
	}

	return p.SendPacket(pkt)
}

// PrepareICMP builds an echo request to addr. Only IPv4 destinations are supported.
func (p *Pinger) PrepareICMP(addr netip.Addr, seq uint16) (*Packet, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return nil, ErrInvalidAddr
	}

	frame, err := BuildEchoRequest(p.id, seq, p.payload)
	if err != nil {
		return nil, err
	}

	return &Packet{
		Bytes: frame,
		Len:   len(frame),
		TTL:   p.TTL,
		Seq:   seq,
		Addr:  addr,
	}, nil
}

// SendPacket writes a prepared echo request to the connection.
// Frames with invalid checksum are never transmitted.
func (p *Pinger) SendPacket(pkt *Packet) error {
	if p.conn == nil {
		return ErrInvalidConn
	}
	if !pkt.Addr.Is4() {
		return ErrInvalidAddr
	}
	if !VerifyChecksum(pkt.Bytes[:pkt.Len]) {
		return ErrBadChecksum
	}

	if err := p.conn.SetTTL(pkt.TTL); err != nil {
		return fmt.Errorf("set ttl %d: %w", pkt.TTL, err)
	}

	dst := &net.IPAddr{IP: pkt.Addr.AsSlice()}

	var err error
	// Some retries in case of ENOBUFS may occure
	for tries := sendRetries; tries > 0; tries-- {
		_, err = p.conn.WriteTo(pkt.Bytes[:pkt.Len], dst)
		if errors.Is(err, unix.ENOBUFS) {
			continue
		}
		break
	}

	return err
}
