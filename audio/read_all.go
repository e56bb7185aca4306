// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxPreallocFrames caps the capacity hint taken from Sized.Frames, which
// comes from an untrusted header.
const maxPreallocFrames = 1 << 20

// ReadAll drains src and returns every interleaved sample it produced.
// Partial trailing frames are dropped so the result is always a whole
// number of frames. io.EOF is not reported as an error.
func ReadAll(src Source) ([]float32, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("read all: %d channels", channels)
	}

	bufSize := max(src.BufSize(), 1024)
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	var out []float32
	if sized, ok := src.(Sized); ok && sized.Frames() > 0 {
		out = make([]float32, 0, min(sized.Frames(), maxPreallocFrames)*channels)
	}

	buf := make([]float32, bufSize)
	// A source that keeps returning nothing without EOF is treated as done
	// after a few attempts rather than spinning forever.
	idle := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			idle = 0
		} else if err == nil {
			idle++
			if idle > 64 {
				break
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read all: %w", err)
		}
	}

	return out[:len(out)-len(out)%channels], nil
}
