// Package tcp implements the blocking TCP socket the OpenWire transport
// runs on.
//
// Socket wraps a net.TCPConn (or net.TCPListener) behind an explicit
// lifecycle with byte range based Read and Write calls:
//
//   - Read returns -1 instead of an error once the peer shut down its side.
//   - Write loops until the whole range is sent.
//   - Close is idempotent and unblocks pending reads and writes from any
//     goroutine.
//   - Connect is bounded by a timeout given in milliseconds; a failed
//     connect leaves the socket closed.
//
// Options (OptionTimeout, OptionTCPNoDelay, ...) are exchanged as ints in
// the unit documented on each option and applied to the connection as soon
// as it exists. Dial builds a connected socket from a
// common.TransportConfig.
//
// InputStream and OutputStream adapt a socket to io.Reader and io.Writer so
// the wire format can read frames directly from it.
package tcp
