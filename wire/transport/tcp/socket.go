package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/owire/wire/common"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("transport/tcp")

// State is the lifecycle state of a Socket
type State int

const (
	StateUnconnected State = iota
	StateCreated
	StateBound
	StateListening
	StateConnected
	StateHalfShutdown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateCreated:
		return "created"
	case StateBound:
		return "bound"
	case StateListening:
		return "listening"
	case StateConnected:
		return "connected"
	case StateHalfShutdown:
		return "half-shutdown"
	case StateClosed:
		return "closed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Socket is a blocking TCP socket with an explicit lifecycle:
//
//	Unconnected -> Create -> Created -> Connect -> Connected
//	Created -> Bind -> Bound -> Listen -> Listening -> Accept
//	Connected -> ShutdownInput/ShutdownOutput -> HalfShutdown
//	any -> Close -> Closed
//
// Read and Write may be called from one goroutine each. Close may be called
// from any goroutine and unblocks pending reads and writes.
type Socket struct {
	mu       sync.Mutex
	state    State
	conn     *net.TCPConn
	listener *net.TCPListener

	opts    options
	timeout atomic.Int64 // read/write timeout in ns, 0 = none

	closed         atomic.Bool
	inputShutdown  atomic.Bool
	outputShutdown atomic.Bool

	stats *Stats
}

// NewSocket returns an unconnected socket with default options
func NewSocket() *Socket {
	return &Socket{
		opts:  defaultOptions(),
		stats: newStats(),
	}
}

// newConnectedSocket wraps an accepted connection
func newConnectedSocket(conn *net.TCPConn, opts options) (*Socket, error) {
	s := &Socket{
		state: StateConnected,
		conn:  conn,
		opts:  opts,
		stats: newStats(),
	}
	s.timeout.Store(int64(opts.timeout))
	if err := opts.apply(conn); err != nil {
		conn.Close()
		return nil, common.Transportf(common.ReasonIO, "Socket.Accept", err, "applying socket options")
	}
	return s, nil
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

// Create prepares the socket for Bind or Connect. The operating system
// socket itself is allocated by Bind or Connect.
func (s *Socket) Create() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnconnected {
		return s.stateError("Socket.Create")
	}
	s.state = StateCreated
	return nil
}

// Bind binds the socket to address:port with address reuse as configured.
// A port of 0 selects an ephemeral port, see LocalPort. On failure the
// socket is closed.
func (s *Socket) Bind(address string, port int) error {
	if port < 0 || port > 65535 {
		return common.Argumentf(common.ReasonInvalidValue, "Socket.Bind", port, "port must be in [0, 65535]")
	}

	s.mu.Lock()
	if s.state != StateCreated {
		defer s.mu.Unlock()
		return s.stateError("Socket.Bind")
	}
	lc := net.ListenConfig{}
	if s.opts.reuseAddress {
		lc.Control = reuseAddrControl
	}
	endpoint := net.JoinHostPort(address, strconv.Itoa(port))
	l, err := lc.Listen(context.Background(), "tcp", endpoint)
	if err != nil {
		s.mu.Unlock()
		s.Close()
		return common.Transportf(common.ReasonIO, "Socket.Bind", err, "binding %s", endpoint)
	}
	s.listener = l.(*net.TCPListener)
	s.state = StateBound
	s.mu.Unlock()

	plog.Debugf("bound to %s", s.listener.Addr())
	return nil
}

// Listen marks a bound socket as accepting connections. The backlog is
// managed by the operating system and only validated here.
func (s *Socket) Listen(backlog int) error {
	if backlog < 0 {
		return common.Argumentf(common.ReasonInvalidValue, "Socket.Listen", backlog, "backlog must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateBound {
		return s.stateError("Socket.Listen")
	}
	s.state = StateListening
	return nil
}

// Accept blocks until a peer connects and returns the connected socket. The
// new socket inherits the options of the listening socket.
func (s *Socket) Accept() (*Socket, error) {
	s.mu.Lock()
	if s.state != StateListening {
		defer s.mu.Unlock()
		return nil, s.stateError("Socket.Accept")
	}
	l, opts := s.listener, s.opts
	s.mu.Unlock()

	conn, err := l.AcceptTCP()
	if err != nil {
		return nil, s.ioError("Socket.Accept", err)
	}
	return newConnectedSocket(conn, opts)
}

// Connect connects to host:port. With timeoutMs > 0 the attempt is aborted
// after that many milliseconds. On failure, invalid arguments included, the
// socket is closed before the error is returned.
func (s *Socket) Connect(host string, port int, timeoutMs int) error {
	if port < 0 || port > 65535 {
		s.Close()
		return common.Argumentf(common.ReasonInvalidValue, "Socket.Connect", port, "port must be in [0, 65535]")
	}
	if timeoutMs < 0 {
		s.Close()
		return common.Argumentf(common.ReasonInvalidValue, "Socket.Connect", timeoutMs, "timeout must not be negative")
	}

	s.mu.Lock()
	if s.state != StateCreated {
		defer s.mu.Unlock()
		return s.stateError("Socket.Connect")
	}
	dialer := net.Dialer{Timeout: time.Duration(timeoutMs) * time.Millisecond}
	if s.opts.reuseAddress {
		dialer.Control = reuseAddrControl
	}
	opts := s.opts
	s.mu.Unlock()

	endpoint := net.JoinHostPort(host, strconv.Itoa(port))
	start := time.Now()
	conn, err := dialer.Dial("tcp", endpoint)
	if err != nil {
		s.Close()
		if isTimeout(err) {
			return common.Transportf(common.ReasonTimeout, "Socket.Connect", err,
				"connecting to %s timed out after %d ms", endpoint, timeoutMs)
		}
		return common.Transportf(common.ReasonIO, "Socket.Connect", err, "connecting to %s", endpoint)
	}
	tcpConn := conn.(*net.TCPConn)

	if err := opts.apply(tcpConn); err != nil {
		tcpConn.Close()
		s.Close()
		return common.Transportf(common.ReasonIO, "Socket.Connect", err, "applying socket options")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		// closed while dialing
		tcpConn.Close()
		return common.Transportf(common.ReasonClosed, "Socket.Connect", nil, "socket closed while connecting")
	}
	s.conn = tcpConn
	s.state = StateConnected
	s.stats.connectTime.UpdateSince(start)
	plog.Debugf("connected to %s from %s in %s", conn.RemoteAddr(), conn.LocalAddr(), time.Since(start))
	return nil
}

// ShutdownInput stops the receive direction. Further reads return EOF.
func (s *Socket) ShutdownInput() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil || s.state == StateClosed {
		return s.stateError("Socket.ShutdownInput")
	}
	s.inputShutdown.Store(true)
	s.state = StateHalfShutdown
	if err := s.conn.CloseRead(); err != nil {
		return common.Transportf(common.ReasonIO, "Socket.ShutdownInput", err, "shutting down input")
	}
	return nil
}

// ShutdownOutput sends a FIN to the peer. Further writes fail.
func (s *Socket) ShutdownOutput() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil || s.state == StateClosed {
		return s.stateError("Socket.ShutdownOutput")
	}
	s.outputShutdown.Store(true)
	s.state = StateHalfShutdown
	if err := s.conn.CloseWrite(); err != nil {
		return common.Transportf(common.ReasonIO, "Socket.ShutdownOutput", err, "shutting down output")
	}
	return nil
}

// Close releases the socket. It may be called any number of times and from
// any goroutine; blocked reads and writes fail with a closed error.
func (s *Socket) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		if s.state == StateConnected {
			_ = s.conn.CloseWrite()
		}
		_ = s.conn.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.state = StateClosed
	return nil
}

// --------------------------------------------------------------------------
// I/O
// --------------------------------------------------------------------------

// Read reads up to length bytes into buf[offset:]. It returns -1 once the
// peer has shut down its side of the connection, and 0 for length 0.
func (s *Socket) Read(buf []byte, offset, length int) (int, error) {
	if err := checkBounds("Socket.Read", buf, offset, length); err != nil {
		return 0, err
	}
	if s.closed.Load() {
		return 0, closedError("Socket.Read")
	}
	if length == 0 {
		return 0, nil
	}
	if s.inputShutdown.Load() {
		return -1, nil
	}
	conn, err := s.connected("Socket.Read")
	if err != nil {
		return 0, err
	}

	if d := time.Duration(s.timeout.Load()); d > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(d)); err != nil {
			return 0, s.ioError("Socket.Read", err)
		}
	}

	n, err := conn.Read(buf[offset : offset+length])
	if n > 0 {
		s.stats.bytesRead.Inc(int64(n))
	}
	if errors.Is(err, io.EOF) {
		s.inputShutdown.Store(true)
		if n > 0 {
			return n, nil
		}
		return -1, nil
	}
	if err != nil {
		return n, s.ioError("Socket.Read", err)
	}
	return n, nil
}

// Write writes buf[offset:offset+length] completely. Partial writes are
// retried until everything is sent or an error occurs.
func (s *Socket) Write(buf []byte, offset, length int) error {
	if err := checkBounds("Socket.Write", buf, offset, length); err != nil {
		return err
	}
	if s.closed.Load() {
		return closedError("Socket.Write")
	}
	if length == 0 {
		return nil
	}
	if s.outputShutdown.Load() {
		return common.Transportf(common.ReasonState, "Socket.Write", nil, "output is shut down")
	}
	conn, err := s.connected("Socket.Write")
	if err != nil {
		return err
	}

	sent := 0
	for sent < length {
		if s.closed.Load() {
			return closedError("Socket.Write")
		}
		if d := time.Duration(s.timeout.Load()); d > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(d)); err != nil {
				return s.ioError("Socket.Write", err)
			}
		}
		n, err := conn.Write(buf[offset+sent : offset+length])
		sent += n
		s.stats.bytesWritten.Inc(int64(n))
		if err != nil {
			return s.ioError("Socket.Write", err)
		}
	}
	return nil
}

// Available returns an estimate of the bytes that can be read without
// blocking. The value is advisory.
func (s *Socket) Available() (int, error) {
	if s.closed.Load() {
		return 0, closedError("Socket.Available")
	}
	conn, err := s.connected("Socket.Available")
	if err != nil {
		return 0, err
	}
	if s.inputShutdown.Load() {
		return 0, nil
	}
	return available(conn), nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// State returns the current lifecycle state
func (s *Socket) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LocalPort returns the local port after Bind or Connect, or -1
func (s *Socket) LocalPort() int {
	if addr, ok := s.localAddr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return -1
}

// LocalAddress returns the local address after Bind or Connect
func (s *Socket) LocalAddress() string {
	if addr := s.localAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// RemoteAddress returns the address of the peer of a connected socket
func (s *Socket) RemoteAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

// Stats returns the traffic statistics of the socket
func (s *Socket) Stats() *Stats {
	return s.stats
}

func (s *Socket) localAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.conn != nil:
		return s.conn.LocalAddr()
	case s.listener != nil:
		return s.listener.Addr()
	default:
		return nil
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// connected returns the connection of a connected or half shutdown socket
func (s *Socket) connected(op string) (*net.TCPConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return nil, closedError(op)
	}
	if s.conn == nil || (s.state != StateConnected && s.state != StateHalfShutdown) {
		return nil, s.stateError(op)
	}
	return s.conn, nil
}

// stateError reports an operation in the wrong state. The caller holds mu.
func (s *Socket) stateError(op string) error {
	if s.state == StateClosed {
		return closedError(op)
	}
	return common.Transportf(common.ReasonState, op, nil, "not allowed in state %s", s.state)
}

// ioError classifies a socket error as closed, timeout or generic failure
func (s *Socket) ioError(op string, err error) error {
	switch {
	case s.closed.Load() || errors.Is(err, net.ErrClosed):
		return common.Transportf(common.ReasonClosed, op, err, "socket closed")
	case isTimeout(err):
		return common.Transportf(common.ReasonTimeout, op, err, "deadline exceeded")
	default:
		return common.Transportf(common.ReasonIO, op, err, "socket failure")
	}
}

func closedError(op string) error {
	return common.Transportf(common.ReasonClosed, op, nil, "socket closed")
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func checkBounds(op string, buf []byte, offset, length int) error {
	if buf == nil && length > 0 {
		return common.Argumentf(common.ReasonInvalidValue, op, nil, "buffer is nil")
	}
	if offset < 0 || offset > len(buf) {
		return common.Argumentf(common.ReasonBounds, op, offset,
			"offset %d outside of buffer of %d bytes", offset, len(buf))
	}
	if length < 0 || length > len(buf)-offset {
		return common.Argumentf(common.ReasonBounds, op, length,
			"length %d at offset %d exceeds buffer of %d bytes", length, offset, len(buf))
	}
	return nil
}
