// Package resolver turns a user supplied destination into an IPv4 address
package resolver

import (
	"context"
	"errors"
	"net"
	"net/netip"

	"github.com/SyntropyNet/syntropy-ping/internal/logger"
)

const pkgName = "Resolver. "

var (
	ErrIPv6Unsupported = errors.New("ipv6 is not supported")
	ErrNameNotKnown    = errors.New("name or service not known")
)

// Destination is a resolved ping target. It is never modified after resolution.
type Destination struct {
	Token      string     // destination as given by user
	Addr       netip.Addr // resolved IPv4 address
	IsHostname bool       // Token was resolved via DNS
}

// DisplayName returns hostname if it was resolved, IP address otherwise
func (d Destination) DisplayName() string {
	if d.IsHostname {
		return d.Token
	}
	return d.Addr.String()
}

// Lookuper is the forward DNS backend. *net.Resolver implements it.
type Lookuper interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

type Resolver struct {
	lookup Lookuper
}

// New creates a resolver. Nil lookuper means the system resolver.
func New(l Lookuper) *Resolver {
	if l == nil {
		l = net.DefaultResolver
	}
	return &Resolver{lookup: l}
}

// Resolve validates token as an IP literal or resolves it as a hostname.
// IPv4 literals are returned as is without any network I/O.
// IPv6 literals (and hostnames having only IPv6 addresses) yield ErrIPv6Unsupported.
// Unknown hostnames yield ErrNameNotKnown. Other lookup failures are returned as is.
func (r *Resolver) Resolve(ctx context.Context, token string) (Destination, error) {
	if ip, err := netip.ParseAddr(token); err == nil {
		if ip.Is4() {
			return Destination{Token: token, Addr: ip}, nil
		}
		return Destination{}, ErrIPv6Unsupported
	}

	addrs, err := r.lookup.LookupNetIP(ctx, "ip", token)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return Destination{}, ErrNameNotKnown
		}
		return Destination{}, err
	}

	logger.Debug().Println(pkgName, token, "resolved to", addrs)

	ip, ok := firstIPv4(addrs)
	if !ok {
		if len(addrs) > 0 {
			return Destination{}, ErrIPv6Unsupported
		}
		return Destination{}, ErrNameNotKnown
	}

	return Destination{Token: token, Addr: ip, IsHostname: true}, nil
}

// firstIPv4 returns the first IPv4 address in lookup order.
// The system resolver returns IPv4 addresses in IPv6-mapped form, so unmap them first.
func firstIPv4(addrs []netip.Addr) (netip.Addr, bool) {
	for _, a := range addrs {
		if a = a.Unmap(); a.Is4() {
			return a, true
		}
	}
	return netip.Addr{}, false
}
