package format

import (
	"encoding/binary"
	"io"

	"github.com/ValentinKolb/owire/wire/common"
)

// frameHeaderSize is the size of the length prefix of every frame
const frameHeaderSize = 4

// writeFrame writes an encoded frame (including its length prefix) to w.
// Short writes are reported as errors so a caller never sends half a frame
// without noticing.
func writeFrame(w io.Writer, frame []byte) error {
	n, err := w.Write(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return io.ErrShortWrite
	}
	return nil
}

// readFrame reads one frame from r with the format:
//   - 4 bytes: body length (int32, big endian)
//   - N bytes: body (type byte followed by the encoded object)
//
// buf is reused when it is large enough. A clean end of stream before the
// first header byte is returned as io.EOF.
func readFrame(r io.Reader, buf []byte, maxSize int) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, common.Transportf(common.ReasonIO, "readFrame", err, "reading frame header")
	}

	size := int(int32(binary.BigEndian.Uint32(header[:])))
	if size < 1 {
		return nil, common.Protocolf(common.ReasonMalformed, "readFrame", "invalid frame size %d", size)
	}
	if size > maxSize {
		return nil, common.Protocolf(common.ReasonFrameTooLarge, "readFrame",
			"frame of %d bytes exceeds the maximum of %d", size, maxSize)
	}

	if cap(buf) < size {
		buf = make([]byte, size)
	}
	buf = buf[:size]
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, common.Transportf(common.ReasonIO, "readFrame", err, "reading %d byte frame body", size)
	}
	return buf, nil
}
