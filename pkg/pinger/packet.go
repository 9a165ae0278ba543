package pinger

import (
	"net/netip"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

type Packet struct {
	Bytes []byte     // Marshaled package
	Len   int        // length of package
	TTL   int        // TTL of received packet, taken from IP control message (0 if unknown)
	Seq   uint16     // Sequence number of sent package
	Addr  netip.Addr // Dest address for sending package and Src address for received
}

// Reply describes an accepted ICMP echo reply
type Reply struct {
	Len  int        // total ICMP message length in bytes
	Addr netip.Addr // source address of the reply
	ID   uint16     // identifier echoed back by the peer
	Seq  uint16     // sequence number echoed back by the peer
}

// BuildEchoRequest marshals an ICMPv4 echo request frame.
// Type is 8, code is 0. Checksum is calculated over the whole frame
// (header and payload) with checksum field zeroed.
func BuildEchoRequest(id, seq uint16, payload []byte) ([]byte, error) {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   int(id),  // ICMP packet's id field is uint16, not sure why Echo struct has int there
			Seq:  int(seq), // ICMP packet's sequence field is uint16, not sure why Echo struct has int there
			Data: payload,
		},
	}

	// For ICMPv4 no pseudo header is used
	return msg.Marshal(nil)
}

// ClassifyReply parses an inbound ICMPv4 frame and returns reply info only
// if it is an echo reply (type 0, code 0). Everything else, including our own
// echo requests looped back to a raw socket, is not a reply and is ignored.
func ClassifyReply(b []byte, src netip.Addr) (Reply, bool) {
	m, err := icmp.ParseMessage(ProtocolICMP, b)
	if err != nil {
		return Reply{}, false
	}

	if m.Type != ipv4.ICMPTypeEchoReply || m.Code != 0 {
		return Reply{}, false
	}

	reply := Reply{
		Len:  len(b),
		Addr: src,
	}
	if echo, ok := m.Body.(*icmp.Echo); ok {
		reply.ID = uint16(echo.ID)
		reply.Seq = uint16(echo.Seq)
	}

	return reply, true
}
