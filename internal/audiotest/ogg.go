// SPDX-License-Identifier: EPL-2.0

package audiotest

import "encoding/binary"

// OggPage flags.
const (
	OggContinued = 0x01
	OggBOS       = 0x02
	OggEOS       = 0x04
)

var oggCRC = func() *[256]uint32 {
	var table [256]uint32
	for i := range table {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		table[i] = r
	}
	return &table
}()

// Lace builds the segment table and body for packets that all fit on one
// page. open leaves the last packet unterminated so it continues on the
// next page.
func Lace(open bool, packets ...[]byte) (lacing, body []byte) {
	for i, p := range packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		if !open || i < len(packets)-1 {
			lacing = append(lacing, byte(n))
		} else if n > 0 {
			panic("audiotest: open packet must be a multiple of 255 bytes")
		}
		body = append(body, p...)
	}
	return lacing, body
}

// OggPage encodes one Ogg page with a valid checksum.
func OggPage(flags byte, granule uint64, serial, seq uint32, lacing, body []byte) []byte {
	page := make([]byte, 27, 27+len(lacing)+len(body))
	copy(page, "OggS")
	page[5] = flags
	binary.LittleEndian.PutUint64(page[6:], granule)
	binary.LittleEndian.PutUint32(page[14:], serial)
	binary.LittleEndian.PutUint32(page[18:], seq)
	page[26] = byte(len(lacing))
	page = append(page, lacing...)
	page = append(page, body...)

	var crc uint32
	for _, b := range page {
		crc = crc<<8 ^ oggCRC[byte(crc>>24)^b]
	}
	binary.LittleEndian.PutUint32(page[22:], crc)

	return page
}

// OpusHead returns the identification packet of a 48 kHz Opus stream.
func OpusHead(channels int, preSkip uint16) []byte {
	head := []byte("OpusHead\x01")
	head = append(head, byte(channels))
	head = binary.LittleEndian.AppendUint16(head, preSkip)
	head = binary.LittleEndian.AppendUint32(head, 48000)
	head = binary.LittleEndian.AppendUint16(head, 0)
	return append(head, 0)
}
