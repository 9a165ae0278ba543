// Package pingertest provides an in-memory ICMP transport for tests.
package pingertest

import (
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var ErrClosed = errors.New("use of closed connection")

// Frame is a scripted result of a single ReadFrom call
type Frame struct {
	Bytes []byte
	Src   net.Addr
	TTL   int
	Err   error
}

// Responder decides what a peer answers to a written frame.
// Returned frames are queued for reading, returned error fails the write.
type Responder func(b []byte, dst net.Addr) ([]Frame, error)

// Conn is a fake ICMP connection. Reading from an empty queue reports a deadline expiry.
type Conn struct {
	mu        sync.Mutex
	responder Responder
	queue     []Frame
	written   [][]byte
	ttls      []int
	closed    bool
}

func NewConn(r Responder) *Conn {
	return &Conn{responder: r}
}

func (c *Conn) ReadFrom(b []byte) (int, int, net.Addr, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, 0, nil, ErrClosed
	}
	if len(c.queue) == 0 {
		return 0, 0, nil, &net.OpError{Op: "read", Net: "ip4:icmp", Err: os.ErrDeadlineExceeded}
	}

	f := c.queue[0]
	c.queue = c.queue[1:]
	if f.Err != nil {
		return 0, 0, nil, f.Err
	}
	n := copy(b, f.Bytes)
	return n, f.TTL, f.Src, nil
}

func (c *Conn) WriteTo(b []byte, dst net.Addr) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrClosed
	}

	frame := append([]byte(nil), b...)
	c.written = append(c.written, frame)

	if c.responder != nil {
		frames, err := c.responder(frame, dst)
		if err != nil {
			return 0, err
		}
		c.queue = append(c.queue, frames...)
	}
	return len(b), nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return nil
}

func (c *Conn) SetTTL(ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls = append(c.ttls, ttl)
	return nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return nil
}

// Written returns copies of all frames written so far
func (c *Conn) Written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.written...)
}

// TTLs returns all TTL values set before writes
func (c *Conn) TTLs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.ttls...)
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// EchoReply turns an echo request into the matching echo reply
func EchoReply(req []byte) ([]byte, error) {
	m, err := icmp.ParseMessage(1, req)
	if err != nil {
		return nil, err
	}
	reply := icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Code: 0,
		Body: m.Body,
	}
	return reply.Marshal(nil)
}

// Echo answers every request with an echo reply from the destination itself
func Echo(ttl int) Responder {
	return func(b []byte, dst net.Addr) ([]Frame, error) {
		reply, err := EchoReply(b)
		if err != nil {
			return nil, err
		}
		return []Frame{{Bytes: reply, Src: dst, TTL: ttl}}, nil
	}
}

// Loopback behaves like a raw socket on the loopback interface:
// our own request is read back first, then the reply arrives.
func Loopback(ttl int) Responder {
	echo := Echo(ttl)
	return func(b []byte, dst net.Addr) ([]Frame, error) {
		frames, err := echo(b, dst)
		if err != nil {
			return nil, err
		}
		own := Frame{Bytes: append([]byte(nil), b...), Src: dst, TTL: ttl}
		return append([]Frame{own}, frames...), nil
	}
}

// Silent never answers
func Silent() Responder {
	return func(b []byte, dst net.Addr) ([]Frame, error) {
		return nil, nil
	}
}
