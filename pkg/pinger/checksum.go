package pinger

import "encoding/binary"

// Offset of the checksum field in the ICMP header
const checksumOffset = 2

// Checksum calculates the Internet checksum (RFC 1071) of b:
// one's complement of the one's complement sum of all 16-bit big endian words.
// An odd trailing byte is padded with zero.
func Checksum(b []byte) uint16 {
	var sum uint32
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[i:]))
	}
	if len(b)&1 != 0 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

// VerifyChecksum reports whether an ICMP frame carries a valid checksum.
// Summing a frame together with its own checksum must give 0xffff.
func VerifyChecksum(b []byte) bool {
	if len(b) < checksumOffset+2 {
		return false
	}
	return Checksum(b) == 0
}

// FrameChecksum returns checksum field value stored in the frame
func FrameChecksum(b []byte) uint16 {
	if len(b) < checksumOffset+2 {
		return 0
	}
	return binary.BigEndian.Uint16(b[checksumOffset:])
}
