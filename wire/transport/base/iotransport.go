package base

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
	"github.com/ValentinKolb/owire/wire/transport"
	"github.com/ValentinKolb/owire/wire/transport/tcp"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport")

// readBufferSize is the size of the buffered reader in front of the socket
const readBufferSize = 64 * 1024

// IOTransport is the bottom link of the transport chain. It owns a socket
// and a WireFormat: a reader goroutine decodes frames and hands them to the
// listener, Oneway encodes and writes under a write mutex.
type IOTransport struct {
	connector IClientConnector // nil for accepted sockets
	wf        *format.WireFormat

	mu       sync.Mutex // protects socket, listener and readDone
	socket   *tcp.Socket
	listener transport.CommandListener
	readDone chan struct{}

	writeMu sync.Mutex // serializes encode + write of whole frames
	started atomic.Bool
	closed  atomic.Bool
}

// NewIOTransport creates a transport that connects through connector on Start
func NewIOTransport(connector IClientConnector, wf *format.WireFormat) *IOTransport {
	return &IOTransport{
		connector: connector,
		wf:        wf,
	}
}

// newAcceptedIOTransport wraps a socket returned by Accept. Such a
// transport cannot reconnect.
func newAcceptedIOTransport(socket *tcp.Socket, wf *format.WireFormat) *IOTransport {
	return &IOTransport{
		socket: socket,
		wf:     wf,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.Transport)
// --------------------------------------------------------------------------

func (t *IOTransport) Start() error {
	if t.closed.Load() {
		return common.Transportf(common.ReasonClosed, "IOTransport.Start", nil, "transport closed")
	}
	if !t.started.CompareAndSwap(false, true) {
		return common.Transportf(common.ReasonState, "IOTransport.Start", nil, "transport already started")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		t.started.Store(false)
		return common.Transportf(common.ReasonState, "IOTransport.Start", nil, "no listener set")
	}
	if t.socket == nil {
		socket, err := t.connector.Connect()
		if err != nil {
			t.started.Store(false)
			return common.Observe(err)
		}
		t.socket = socket
	}
	t.startReader()
	return nil
}

func (t *IOTransport) Oneway(ds commands.DataStructure) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	socket, err := t.current("IOTransport.Oneway")
	if err != nil {
		return err
	}
	return common.Observe(t.wf.MarshalTo(socket.OutputStream(), ds))
}

// Request is not supported by the io transport, wrap it with a
// ResponseCorrelator
func (t *IOTransport) Request(_ context.Context, _ commands.Command) (commands.ResponseCommand, error) {
	return nil, common.Transportf(common.ReasonState, "IOTransport.Request", nil,
		"request/response needs a ResponseCorrelator")
}

func (t *IOTransport) SetListener(l transport.CommandListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = l
}

func (t *IOTransport) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}

	t.mu.Lock()
	socket := t.socket
	t.mu.Unlock()

	// closing the socket unblocks the reader, which then exits silently
	if socket != nil {
		socket.Close()
	}
	return nil
}

// Done returns a channel that is closed once the current reader has
// exited, or nil if no reader was started
func (t *IOTransport) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readDone
}

// --------------------------------------------------------------------------
// Reconnect
// --------------------------------------------------------------------------

// Reconnect replaces the socket with a new one from the connector. The
// reader of the old socket is stopped without notifying the listener and
// both object caches of the wire format are cleared, the peer on the new
// connection starts with empty caches as well. Reconnect waits for the old
// reader and must not be called from a listener callback.
func (t *IOTransport) Reconnect() error {
	if t.connector == nil {
		return common.Transportf(common.ReasonState, "IOTransport.Reconnect", nil, "accepted transports cannot reconnect")
	}
	if t.closed.Load() {
		return common.Transportf(common.ReasonClosed, "IOTransport.Reconnect", nil, "transport closed")
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	// detach the old socket so its reader exits silently
	t.mu.Lock()
	old, done := t.socket, t.readDone
	t.socket, t.readDone = nil, nil
	t.mu.Unlock()
	if old != nil {
		old.Close()
	}
	if done != nil {
		<-done
	}

	socket, err := t.connector.Connect()
	if err != nil {
		Logger.Warningf("reconnect via %s failed: %v", t.connector.GetName(), err)
		return err
	}
	t.wf.Reset()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed.Load() {
		socket.Close()
		return common.Transportf(common.ReasonClosed, "IOTransport.Reconnect", nil, "transport closed while reconnecting")
	}
	t.socket = socket
	if t.started.Load() {
		t.startReader()
	}
	Logger.Infof("reconnected to %s", socket.RemoteAddress())
	return nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// WireFormat returns the codec of the transport
func (t *IOTransport) WireFormat() *format.WireFormat {
	return t.wf
}

// Socket returns the current socket or nil
func (t *IOTransport) Socket() *tcp.Socket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.socket
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// startReader starts the reader for the current socket. The caller holds mu.
func (t *IOTransport) startReader() {
	done := make(chan struct{})
	t.readDone = done
	go t.readCommands(t.socket, t.listener, done)
}

// readCommands decodes frames until the socket fails and dispatches them to
// the listener in wire order
func (t *IOTransport) readCommands(socket *tcp.Socket, listener transport.CommandListener, done chan struct{}) {
	defer close(done)
	in := bufio.NewReaderSize(socket.InputStream(), readBufferSize)

	for {
		ds, err := t.wf.UnmarshalFrom(in)
		if err != nil {
			if t.detached(socket) {
				return
			}
			if errors.Is(err, io.EOF) {
				err = common.Transportf(common.ReasonClosed, "IOTransport.read", err, "connection closed by peer")
			}
			Logger.Debugf("reader for %s stopped: %v", socket.RemoteAddress(), err)
			listener.OnError(common.Observe(err))
			return
		}
		listener.OnCommand(ds)
	}
}

// detached reports whether socket was closed on purpose by Close or Reconnect
func (t *IOTransport) detached(socket *tcp.Socket) bool {
	if t.closed.Load() {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.socket != socket
}

// current returns the socket frames are written to
func (t *IOTransport) current(op string) (*tcp.Socket, error) {
	if t.closed.Load() {
		return nil, common.Transportf(common.ReasonClosed, op, nil, "transport closed")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.socket == nil {
		return nil, common.Transportf(common.ReasonState, op, nil, "transport not connected")
	}
	return t.socket, nil
}

var _ transport.Transport = (*IOTransport)(nil)
