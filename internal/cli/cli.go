// Package cli wires destination resolution, the ICMP transport and the probe loop
// into the ping command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SyntropyNet/syntropy-ping/internal/logger"
	"github.com/SyntropyNet/syntropy-ping/pkg/pinger"
	"github.com/SyntropyNet/syntropy-ping/pkg/probe"
	"github.com/SyntropyNet/syntropy-ping/pkg/resolver"
	"golang.org/x/sys/unix"
)

const pkgName = "Ping. "

// Exit codes
const (
	ExitOK       = 0
	ExitResolve  = 2
	ExitNoAccess = -int(unix.EPERM)
	ExitFault    = -int(unix.EFAULT)
)

type App struct {
	Name   string // program name used as output prefix
	ID     uint16 // ICMP identifier
	Stdout io.Writer
	Stderr io.Writer

	Resolver *resolver.Resolver
	// Listen opens ICMP transport
	Listen func() (pinger.PacketConn, error)
	// NewClient creates probe result consumer for resolved destination. May be nil.
	NewClient func(dest resolver.Destination) probe.ProbeClient
}

// New returns an App using system resolver and a raw ICMP socket
func New(name string, id uint16) *App {
	return &App{
		Name:     name,
		ID:       id,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Resolver: resolver.New(nil),
		Listen:   pinger.Listen,
	}
}

// Run pings the destination given in args[0] until ctx is cancelled and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "" {
		fmt.Fprintf(a.Stdout, "%s: usage error: Destination address required\n", a.Name)
		return ExitOK
	}
	token := args[0]
	if len(args) > 1 {
		logger.Warning().Println(pkgName, "extra arguments ignored:", args[1:])
	}

	dest, err := a.Resolver.Resolve(ctx, token)
	switch {
	case err == nil:
	case errors.Is(err, resolver.ErrIPv6Unsupported):
		fmt.Fprintf(a.Stdout, "%s: Ipv6 isn't supported at this moment.\n", a.Name)
		return ExitOK
	case errors.Is(err, resolver.ErrNameNotKnown):
		fmt.Fprintf(a.Stderr, "%s: %s: Name or service not known.\n", a.Name, token)
		return ExitResolve
	default:
		fmt.Fprintf(a.Stderr, "%s: %s: %s\n", a.Name, token, err)
		return ExitResolve
	}

	conn, err := a.Listen()
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s: %s\n", a.Name, err)
		logger.Error().Println(pkgName, "could not open ICMP socket:", err)
		if errors.Is(err, os.ErrPermission) {
			return ExitNoAccess
		}
		return ExitFault
	}

	p := pinger.NewPinger(conn, a.ID)
	defer p.Close()

	prober := probe.New(p, dest, a.Stdout)
	if a.NewClient != nil {
		if client := a.NewClient(dest); client != nil {
			prober.SetClient(client)
		}
	}

	if err := prober.Run(ctx); err != nil {
		logger.Error().Println(pkgName, err)
		return ExitFault
	}
	return ExitOK
}
