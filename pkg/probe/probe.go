package probe

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/SyntropyNet/syntropy-ping/internal/env"
	"github.com/SyntropyNet/syntropy-ping/internal/logger"
	"github.com/SyntropyNet/syntropy-ping/pkg/pinger"
	"github.com/SyntropyNet/syntropy-ping/pkg/resolver"
)

const pkgName = "Probe. "

// Prober sends an echo request to a single destination every Interval
// and reports the outcome to its writer, until the context is cancelled.
type Prober struct {
	// Interval is a pause between two consecutive probes. Default is 1s.
	Interval time.Duration

	// Timeout specifies how long to wait for an echo reply. Default is 1s.
	Timeout time.Duration

	pinger *pinger.Pinger
	dest   resolver.Destination
	w      io.Writer
	client ProbeClient

	sequence    uint16 // ICMP seq number. Incremented before every probe
	headerShown bool
	running     uint32
	state       uint32
}

func New(p *pinger.Pinger, dest resolver.Destination, w io.Writer) *Prober {
	return &Prober{
		Interval: env.ProbeInterval,
		Timeout:  env.ReplyTimeout,
		pinger:   p,
		dest:     dest,
		w:        w,
	}
}

// SetClient sets a client that receives every probe result (e.g. metrics collector)
func (pr *Prober) SetClient(c ProbeClient) {
	pr.client = c
}

// State returns current state of the probe loop
func (pr *Prober) State() State {
	return State(atomic.LoadUint32(&pr.state))
}

func (pr *Prober) setState(s State) {
	atomic.StoreUint32(&pr.state, uint32(s))
}

// Run probes the destination until ctx is cancelled.
// Transport errors are reported and do not stop the loop.
func (pr *Prober) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&pr.running, 0, 1) {
		return ErrRunning
	}
	defer atomic.StoreUint32(&pr.running, 0)

	logger.Info().Println(pkgName, "probing", pr.dest.DisplayName(), pr.dest.Addr, "id", pr.pinger.ID())

	for {
		if ctx.Err() != nil {
			return nil
		}

		res := pr.probe()
		pr.report(res)
		pr.setState(StateIdle)

		timer := time.NewTimer(pr.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Println(pkgName, "stopped after", pr.sequence, "probes")
			return nil
		case <-timer.C:
		}
	}
}

func (pr *Prober) probe() Result {
	pr.sequence++
	res := Result{
		Seq:    pr.sequence,
		TTL:    pr.pinger.TTL,
		Status: StatusError,
	}

	if !pr.headerShown {
		fmt.Fprintf(pr.w, "PING %s (%s) %d(%d) bytes of data\n",
			pr.dest.DisplayName(), pr.dest.Addr, pr.pinger.PayloadSize(), pr.pinger.PacketSize())
		pr.headerShown = true
	}

	pkt, err := pr.pinger.PrepareICMP(pr.dest.Addr, pr.sequence)
	if err != nil {
		res.Err = err
		return res
	}
	res.TTL = pkt.TTL

	if err = pr.pinger.SendPacket(pkt); err != nil {
		res.Err = err
		return res
	}
	pr.setState(StateSent)

	return pr.await(res)
}

// await reads until an echo reply arrives or Timeout elapses.
// Non echo reply frames are silently dropped.
func (pr *Prober) await(res Result) Result {
	pr.setState(StateAwaitingReply)

	if err := pr.pinger.SetReadDeadline(time.Now().Add(pr.Timeout)); err != nil {
		res.Err = err
		return res
	}

	res.Status = StatusTimeout
	for {
		recv, err := pr.pinger.RecvPacket()
		if err != nil {
			if pinger.IsTimeout(err) {
				return res
			}
			res.Status = StatusError
			res.Err = err
			return res
		}

		reply, ok := pr.pinger.ParsePacket(recv)
		if !ok {
			logger.Debug().Println(pkgName, "ignoring non echo reply from", recv.Addr, "len", recv.Len)
			res.Status = StatusIgnored
			continue
		}

		logger.Debug().Println(pkgName, "echo reply from", reply.Addr, "id", reply.ID,
			"seq", reply.Seq, "ttl", recv.TTL)
		res.Status = StatusReply
		res.Reply = reply
		return res
	}
}

func (pr *Prober) report(res Result) {
	switch res.Status {
	case StatusReply:
		// Sequence and TTL are the ones we sent, not decoded from the reply
		fmt.Fprintf(pr.w, "%d bytes from %s: icmp_seq=%d ttl=%d \n",
			res.Reply.Len, res.Reply.Addr, res.Seq, res.TTL)
	case StatusTimeout:
		fmt.Fprintln(pr.w, "Request timed out.")
	case StatusError:
		fmt.Fprintf(pr.w, "Error: %s\n", res.Err)
	case StatusIgnored:
	}
	pr.setState(StateReported)

	if pr.client != nil {
		pr.client.ProbeProcess(res)
	}
}
