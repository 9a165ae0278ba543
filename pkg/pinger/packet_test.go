package pinger

import (
	"encoding/binary"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var testSrc = netip.MustParseAddr("127.0.0.1")

func TestBuildEchoRequest(t *testing.T) {
	payload := []byte("abcdefghijklmnopqrstuvwxyz")
	frame, err := BuildEchoRequest(0xbeef, 7, payload)
	if err != nil {
		t.Fatalf("Build echo request: %s", err)
	}

	if len(frame) != len(payload)+8 {
		t.Fatalf("Invalid frame length %d", len(frame))
	}
	if frame[0] != 8 || frame[1] != 0 {
		t.Errorf("Invalid type/code %d/%d", frame[0], frame[1])
	}
	if id := binary.BigEndian.Uint16(frame[4:]); id != 0xbeef {
		t.Errorf("Invalid identifier 0x%04x", id)
	}
	if seq := binary.BigEndian.Uint16(frame[6:]); seq != 7 {
		t.Errorf("Invalid sequence %d", seq)
	}
	if diff := cmp.Diff(payload, frame[8:]); diff != "" {
		t.Errorf("Payload mismatch (-want +got):\n%s", diff)
	}

	packet, err := icmp.ParseMessage(ProtocolICMP, frame)
	if err != nil {
		t.Fatalf("Icmp parse %s", err)
	}
	if packet.Type != ipv4.ICMPTypeEcho {
		t.Errorf("Invalid parsed type %v", packet.Type)
	}
}

func rawFrame(typ, code byte) []byte {
	frame := make([]byte, 8+26)
	frame[0] = typ
	frame[1] = code
	binary.BigEndian.PutUint16(frame[4:], 0x1111)
	binary.BigEndian.PutUint16(frame[6:], 3)
	copy(frame[8:], "abcdefghijklmnopqrstuvwxyz")
	binary.BigEndian.PutUint16(frame[2:], Checksum(frame))
	return frame
}

func TestClassifyReplyAccepted(t *testing.T) {
	frame := rawFrame(0, 0)

	reply, ok := ClassifyReply(frame, testSrc)
	if !ok {
		t.Fatalf("Echo reply not accepted")
	}

	want := Reply{Len: 34, Addr: testSrc, ID: 0x1111, Seq: 3}
	if diff := cmp.Diff(want, reply, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Errorf("Reply mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyReplyRejected(t *testing.T) {
	// every (type, code) pair except (0, 0) must be ignored
	for typ := 0; typ < 256; typ++ {
		for _, code := range []int{0, 1, 3, 255} {
			if typ == 0 && code == 0 {
				continue
			}
			if _, ok := ClassifyReply(rawFrame(byte(typ), byte(code)), testSrc); ok {
				t.Errorf("Frame type=%d code=%d classified as echo reply", typ, code)
			}
		}
	}
}

func TestClassifyOwnRequest(t *testing.T) {
	frame, err := BuildEchoRequest(1, 1, []byte("abcdefghijklmnopqrstuvwxyz"))
	if err != nil {
		t.Fatalf("Build echo request: %s", err)
	}
	if _, ok := ClassifyReply(frame, testSrc); ok {
		t.Errorf("Looped back echo request must not be taken for a reply")
	}
}

func TestClassifyGarbage(t *testing.T) {
	for _, b := range [][]byte{nil, {0}, {0, 0, 0}} {
		if _, ok := ClassifyReply(b, testSrc); ok {
			t.Errorf("Truncated frame %v classified as reply", b)
		}
	}
}
