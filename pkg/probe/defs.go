package probe

import (
	"errors"

	"github.com/SyntropyNet/syntropy-ping/pkg/pinger"
)

var ErrRunning = errors.New("already running")

// State of a probe loop iteration
type State uint32

const (
	StateIdle State = iota
	StateSent
	StateAwaitingReply
	StateReported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSent:
		return "sent"
	case StateAwaitingReply:
		return "awaiting reply"
	case StateReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Status is the outcome of a single probe
type Status int

const (
	StatusReply   Status = iota // echo reply received
	StatusTimeout               // nothing received in time
	StatusIgnored               // only non echo reply ICMP traffic was received
	StatusError                 // transport error
)

func (s Status) String() string {
	switch s {
	case StatusReply:
		return "reply"
	case StatusTimeout:
		return "timeout"
	case StatusIgnored:
		return "ignored"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result describes a single probe iteration
type Result struct {
	Seq    uint16       // sequence number of sent echo request
	TTL    int          // TTL of sent echo request
	Status Status       // probe outcome
	Reply  pinger.Reply // valid only when Status is StatusReply
	Err    error        // valid only when Status is StatusError
}

// Unified interface to process probe results
type ProbeClient interface {
	ProbeProcess(res Result)
}
