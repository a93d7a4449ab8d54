package base

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
	"github.com/ValentinKolb/owire/wire/transport/tcp"
	"github.com/puzpuzpuz/xsync/v3"
)

// ServerHandleFunc handles one command received by a Server. It runs on the
// reader goroutine of the connection, commands of one connection are handled
// in wire order. Replies are sent with conn.Oneway.
type ServerHandleFunc func(conn *IOTransport, ds commands.DataStructure)

// Server accepts OpenWire connections on a listening socket. Each accepted
// connection gets its own WireFormat and IOTransport. It plays the broker
// side in loopback tests and in the CLI.
type Server struct {
	socket  *tcp.Socket
	config  common.WireFormatConfig
	handler ServerHandleFunc

	conns  *xsync.MapOf[*IOTransport, struct{}]
	mu     sync.Mutex // orders wg.Add against Close
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewServer binds address:port (0 selects an ephemeral port, see Port) and
// validates config. Connections are accepted once Serve is called.
func NewServer(address string, port int, config common.WireFormatConfig, handler ServerHandleFunc) (*Server, error) {
	// fail on a bad config before anything is bound
	if _, err := format.NewWireFormat(config); err != nil {
		return nil, err
	}

	socket, err := tcp.Listen(address, port)
	if err != nil {
		return nil, err
	}

	return &Server{
		socket:  socket,
		config:  config,
		handler: handler,
		conns:   xsync.NewMapOf[*IOTransport, struct{}](),
	}, nil
}

// Port returns the bound port
func (s *Server) Port() int {
	return s.socket.LocalPort()
}

// Connections returns the number of open connections
func (s *Server) Connections() int {
	return s.conns.Size()
}

// Serve accepts connections until Close is called. It returns nil after
// Close and the accept error otherwise.
func (s *Server) Serve() error {
	Logger.Infof("Starting openwire server on %s", s.socket.LocalAddress())

	// Accept connections
	for {
		socket, err := s.socket.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, common.ErrClosed) {
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			return err
		}

		if err := s.handleConnection(socket); err != nil {
			Logger.Errorf("Failed to set up connection from %s: %v", socket.RemoteAddress(), err)
			socket.Close()
		}
	}
}

// Close stops accepting, closes all connections and waits for their readers
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.closed.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.socket.Close()
	s.conns.Range(func(conn *IOTransport, _ struct{}) bool {
		conn.Close()
		return true
	})
	s.wg.Wait()
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection starts the reader of an accepted socket
func (s *Server) handleConnection(socket *tcp.Socket) error {
	wf, err := format.NewWireFormat(s.config)
	if err != nil {
		return err
	}

	conn := newAcceptedIOTransport(socket, wf)
	remote := socket.RemoteAddress()
	conn.SetListener(serverListener{server: s, conn: conn, remote: remote})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return common.Transportf(common.ReasonClosed, "Server.accept", nil, "server closed")
	}

	s.conns.Store(conn, struct{}{})
	if err := conn.Start(); err != nil {
		s.conns.Delete(conn)
		return err
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-conn.Done()
	}()

	Logger.Debugf("Accepted connection from %s", remote)
	return nil
}

// serverListener routes the commands of one connection to the handler
type serverListener struct {
	server *Server
	conn   *IOTransport
	remote string
}

func (l serverListener) OnCommand(ds commands.DataStructure) {
	if l.server.handler != nil {
		l.server.handler(l.conn, ds)
	}
}

func (l serverListener) OnError(err error) {
	if errors.Is(err, common.ErrClosed) {
		Logger.Infof("Connection closed by client %s", l.remote)
	} else {
		Logger.Errorf("Error handling connection from %s: %v", l.remote, err)
	}
	l.server.conns.Delete(l.conn)
	l.conn.Close()
}
