package tcp

import (
	"io"

	"github.com/ValentinKolb/owire/wire/common"
)

// socketInputStream adapts Socket.Read to io.Reader
type socketInputStream struct {
	s *Socket
}

func (in socketInputStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := in.s.Read(p, 0, len(p))
	if err != nil {
		return 0, common.Observe(err)
	}
	if n < 0 {
		return 0, io.EOF
	}
	return n, nil
}

// socketOutputStream adapts Socket.Write to io.Writer
type socketOutputStream struct {
	s *Socket
}

func (out socketOutputStream) Write(p []byte) (int, error) {
	if err := out.s.Write(p, 0, len(p)); err != nil {
		return 0, common.Observe(err)
	}
	return len(p), nil
}

// InputStream returns a reader over the socket. It shares the closed and
// shutdown state of the socket and returns io.EOF once the peer is done.
func (s *Socket) InputStream() io.Reader {
	return socketInputStream{s: s}
}

// OutputStream returns a writer over the socket
func (s *Socket) OutputStream() io.Writer {
	return socketOutputStream{s: s}
}
