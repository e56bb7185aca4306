// SPDX-License-Identifier: EPL-2.0

// Package oggpacket reassembles Ogg packets from pages. pion's oggreader
// checks page framing and checksums but returns each page body as one
// blob; the lacing values it reads and discards are recovered here from
// the raw page bytes so pages holding several packets, and packets
// spanning pages, split correctly.
package oggpacket

import (
	"errors"
	"io"

	"github.com/pion/webrtc/v4/pkg/media/oggreader"
)

// NoGranule marks a packet that is not the last one completed on its page.
const NoGranule = ^uint64(0)

const (
	pageHeaderLen = 27
	flagContinued = 0x01
	flagBOS       = 0x02
	lacingFull    = 255
)

var errShortPage = errors.New("ogg page shorter than its header")

// Packet is one logical packet of the stream.
type Packet struct {
	Data []byte
	// Granule is the position of the page the packet ends on when it is
	// the last packet to end there, and NoGranule otherwise.
	Granule uint64
	// BOS is set for packets that end on a beginning-of-stream page.
	BOS bool
}

// tap records everything pion reads for the current page.
type tap struct {
	r   io.Reader
	raw []byte
}

func (t *tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.raw = append(t.raw, p[:n]...)
	return n, err
}

// Reader yields the packets of a single logical Ogg stream.
type Reader struct {
	tap   *tap
	pages *oggreader.OggReader

	queue   []Packet
	partial []byte
	// partial holds the head of a packet that continues on the next page
	continuing bool
}

func NewReader(r io.Reader) (*Reader, error) {
	t := &tap{r: r}
	pages, err := oggreader.NewWithOptions(t)
	if err != nil {
		return nil, err
	}

	return &Reader{tap: t, pages: pages}, nil
}

// Next returns the next complete packet. It returns io.EOF at a clean end
// of stream and io.ErrUnexpectedEOF when the last page is cut short.
func (r *Reader) Next() (Packet, error) {
	for len(r.queue) == 0 {
		if err := r.readPage(); err != nil {
			return Packet{}, err
		}
	}

	p := r.queue[0]
	r.queue = r.queue[1:]

	return p, nil
}

func (r *Reader) readPage() error {
	r.tap.raw = r.tap.raw[:0]
	payload, header, err := r.pages.ParseNextPage()
	if err != nil {
		return err
	}

	raw := r.tap.raw
	if len(raw) < pageHeaderLen || len(raw) < pageHeaderLen+int(raw[26]) {
		return errShortPage
	}
	flags := raw[5]
	lacing := raw[pageHeaderLen : pageHeaderLen+int(raw[26])]

	// A continuation with nothing to continue is the tail of a packet
	// whose head was never seen; a fresh page abandons any unfinished one.
	skip := flags&flagContinued != 0 && !r.continuing
	if flags&flagContinued == 0 {
		r.partial = nil
	}

	off := 0
	for _, l := range lacing {
		seg := payload[off : off+int(l)]
		off += int(l)

		if !skip {
			r.partial = append(r.partial, seg...)
		}
		if l < lacingFull {
			if !skip {
				r.queue = append(r.queue, Packet{
					Data:    r.partial,
					Granule: NoGranule,
					BOS:     flags&flagBOS != 0,
				})
			}
			r.partial = nil
			skip = false
		}
	}
	r.continuing = !skip && len(lacing) > 0 && lacing[len(lacing)-1] == lacingFull

	if n := len(r.queue); n > 0 {
		r.queue[n-1].Granule = header.GranulePosition
	}

	return nil
}
