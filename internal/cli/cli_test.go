package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"testing"

	"github.com/SyntropyNet/syntropy-ping/pkg/pinger"
	"github.com/SyntropyNet/syntropy-ping/pkg/pinger/pingertest"
	"github.com/SyntropyNet/syntropy-ping/pkg/probe"
	"github.com/SyntropyNet/syntropy-ping/pkg/resolver"
	"github.com/google/go-cmp/cmp"
)

type fakeLookup struct {
	addrs []netip.Addr
	err   error
}

func (f *fakeLookup) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	return f.addrs, f.err
}

type testApp struct {
	*App
	stdout, stderr bytes.Buffer
	listened       int
}

func newTestApp(lookup *fakeLookup, listen func() (pinger.PacketConn, error)) *testApp {
	ta := &testApp{}
	ta.App = &App{
		Name:     "ping",
		ID:       0x0101,
		Stdout:   &ta.stdout,
		Stderr:   &ta.stderr,
		Resolver: resolver.New(lookup),
		Listen: func() (pinger.PacketConn, error) {
			ta.listened++
			return listen()
		},
	}
	return ta
}

func noListen() (pinger.PacketConn, error) {
	return nil, errors.New("transport must not be opened")
}

func TestUsageError(t *testing.T) {
	for _, args := range [][]string{nil, {}, {""}} {
		ta := newTestApp(&fakeLookup{}, noListen)

		code := ta.Run(context.Background(), args)
		if code != ExitOK {
			t.Errorf("Usage error exit code %d", code)
		}
		if diff := cmp.Diff("ping: usage error: Destination address required\n", ta.stdout.String()); diff != "" {
			t.Errorf("Output mismatch (-want +got):\n%s", diff)
		}
		if ta.stderr.Len() != 0 || ta.listened != 0 {
			t.Errorf("Usage error must not do anything else")
		}
	}
}

func TestIPv6Unsupported(t *testing.T) {
	ta := newTestApp(&fakeLookup{}, noListen)

	code := ta.Run(context.Background(), []string{"::1"})
	if code != ExitOK {
		t.Errorf("IPv6 exit code %d", code)
	}
	if diff := cmp.Diff("ping: Ipv6 isn't supported at this moment.\n", ta.stdout.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if ta.listened != 0 {
		t.Errorf("Transport opened for IPv6 destination")
	}
}

func TestNameNotKnown(t *testing.T) {
	lookup := &fakeLookup{err: &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}}
	ta := newTestApp(lookup, noListen)

	code := ta.Run(context.Background(), []string{"nope.invalid"})
	if code != ExitResolve {
		t.Errorf("Resolve failure exit code %d", code)
	}
	if diff := cmp.Diff("ping: nope.invalid: Name or service not known.\n", ta.stderr.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if ta.stdout.Len() != 0 || ta.listened != 0 {
		t.Errorf("Resolve failure must abort before probing")
	}
}

func TestResolverIOError(t *testing.T) {
	ta := newTestApp(&fakeLookup{err: errors.New("i/o timeout")}, noListen)

	code := ta.Run(context.Background(), []string{"slow.example"})
	if code != ExitResolve {
		t.Errorf("Resolve failure exit code %d", code)
	}
	if diff := cmp.Diff("ping: slow.example: i/o timeout\n", ta.stderr.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestListenFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"permission", &os.SyscallError{Syscall: "socket", Err: os.ErrPermission}, ExitNoAccess},
		{"other", errors.New("too many open files"), ExitFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(&fakeLookup{}, func() (pinger.PacketConn, error) { return nil, tt.err })

			code := ta.Run(context.Background(), []string{"127.0.0.1"})
			if code != tt.code {
				t.Errorf("Exit code %d, want %d", code, tt.code)
			}
			if ta.stdout.Len() != 0 {
				t.Errorf("Nothing must be probed: %q", ta.stdout.String())
			}
			if want := fmt.Sprintf("ping: %s\n", tt.err); ta.stderr.String() != want {
				t.Errorf("Stderr %q, want %q", ta.stderr.String(), want)
			}
		})
	}
}

type countingClient struct {
	dest    resolver.Destination
	results int
}

func (cc *countingClient) ProbeProcess(res probe.Result) {
	cc.results++
}

func TestPingHostname(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	echo := pingertest.Echo(64)
	writes := 0
	conn := pingertest.NewConn(func(b []byte, dst net.Addr) ([]pingertest.Frame, error) {
		writes++
		if writes == 2 {
			cancel()
		}
		return echo(b, dst)
	})

	lookup := &fakeLookup{addrs: []netip.Addr{netip.MustParseAddr("1.2.3.4"), netip.MustParseAddr("5.6.7.8")}}
	ta := newTestApp(lookup, func() (pinger.PacketConn, error) { return conn, nil })

	client := &countingClient{}
	ta.NewClient = func(dest resolver.Destination) probe.ProbeClient {
		client.dest = dest
		return client
	}

	code := ta.Run(ctx, []string{"example.com"})
	if code != ExitOK {
		t.Errorf("Exit code %d", code)
	}

	want := "PING example.com (1.2.3.4) 26(34) bytes of data\n" +
		"34 bytes from 1.2.3.4: icmp_seq=1 ttl=64 \n" +
		"34 bytes from 1.2.3.4: icmp_seq=2 ttl=64 \n"
	if diff := cmp.Diff(want, ta.stdout.String()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if !conn.Closed() {
		t.Errorf("Transport not closed on exit")
	}
	if client.results != 2 || client.dest.Token != "example.com" || !client.dest.IsHostname {
		t.Errorf("Client not wired: %+v", client)
	}
}
