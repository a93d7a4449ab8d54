package tcp

import (
	"net"
	"strconv"
	"time"

	"github.com/ValentinKolb/owire/wire/common"
)

// Option identifies a socket option for GetOption and SetOption. All values
// are ints: durations in milliseconds (OptionTimeout) or seconds
// (OptionKeepAlive, OptionLinger), sizes in bytes, flags as 0 or 1.
type Option int

const (
	// OptionTimeout bounds every blocking read and write, 0 disables it
	OptionTimeout Option = iota
	// OptionTCPNoDelay disables Nagle's algorithm
	OptionTCPNoDelay
	// OptionKeepAlive is the keep-alive period in seconds, 0 disables keep-alive
	OptionKeepAlive
	// OptionLinger is the linger time on close in seconds, -1 uses the system default
	OptionLinger
	// OptionSendBuffer is the kernel send buffer size, 0 keeps the system default
	OptionSendBuffer
	// OptionReceiveBuffer is the kernel receive buffer size, 0 keeps the system default
	OptionReceiveBuffer
	// OptionReuseAddress enables SO_REUSEADDR, only effective before Bind or Connect
	OptionReuseAddress
)

func (o Option) String() string {
	switch o {
	case OptionTimeout:
		return "timeout"
	case OptionTCPNoDelay:
		return "tcp-nodelay"
	case OptionKeepAlive:
		return "keep-alive"
	case OptionLinger:
		return "linger"
	case OptionSendBuffer:
		return "send-buffer"
	case OptionReceiveBuffer:
		return "receive-buffer"
	case OptionReuseAddress:
		return "reuse-address"
	default:
		return "Option(" + strconv.Itoa(int(o)) + ")"
	}
}

// options holds the configured values; apply pushes them to a connection
type options struct {
	timeout       time.Duration
	noDelay       bool
	keepAliveSec  int
	lingerSec     int
	sendBuffer    int
	receiveBuffer int
	reuseAddress  bool
}

func defaultOptions() options {
	return options{
		noDelay:      true,
		lingerSec:    -1,
		reuseAddress: true,
	}
}

// optionsFromConfig maps a transport configuration to socket options
func optionsFromConfig(config common.TransportConfig) options {
	return options{
		timeout:       time.Duration(config.SoTimeoutMs) * time.Millisecond,
		noDelay:       config.TCPConf.TCPNoDelay,
		keepAliveSec:  config.TCPConf.TCPKeepAliveSec,
		lingerSec:     config.TCPConf.TCPLingerSec,
		sendBuffer:    config.SocketConf.WriteBufferSize,
		receiveBuffer: config.SocketConf.ReadBufferSize,
		reuseAddress:  config.ReuseAddress,
	}
}

// apply applies the TCP options to an established connection
func (o options) apply(conn *net.TCPConn) error {
	// Disable Nagle's algorithm (TCPNoDelay) if configured
	if err := conn.SetNoDelay(o.noDelay); err != nil {
		return err
	}

	// Set socket write buffer size if configured
	if o.sendBuffer > 0 {
		if err := conn.SetWriteBuffer(o.sendBuffer); err != nil {
			return err
		}
	}

	// Set socket read buffer size if configured
	if o.receiveBuffer > 0 {
		if err := conn.SetReadBuffer(o.receiveBuffer); err != nil {
			return err
		}
	}

	// Enable TCP keep-alive if configured
	if o.keepAliveSec > 0 {
		if err := conn.SetKeepAlive(true); err != nil {
			return err
		}
		if err := conn.SetKeepAlivePeriod(time.Duration(o.keepAliveSec) * time.Second); err != nil {
			return err
		}
	} else if err := conn.SetKeepAlive(false); err != nil {
		return err
	}

	// Set TCP linger option if configured
	if o.lingerSec >= 0 {
		if err := conn.SetLinger(o.lingerSec); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Socket methods
// --------------------------------------------------------------------------

// SetOption changes an option. Options are applied to the connection
// immediately if the socket is connected, otherwise on Connect or Accept.
func (s *Socket) SetOption(opt Option, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return closedError("Socket.SetOption")
	}

	o := s.opts
	switch opt {
	case OptionTimeout:
		if value < 0 {
			return invalidOption(opt, value)
		}
		o.timeout = time.Duration(value) * time.Millisecond
	case OptionTCPNoDelay:
		o.noDelay = value != 0
	case OptionKeepAlive:
		if value < 0 {
			return invalidOption(opt, value)
		}
		o.keepAliveSec = value
	case OptionLinger:
		if value < -1 {
			return invalidOption(opt, value)
		}
		o.lingerSec = value
	case OptionSendBuffer:
		if value < 0 {
			return invalidOption(opt, value)
		}
		o.sendBuffer = value
	case OptionReceiveBuffer:
		if value < 0 {
			return invalidOption(opt, value)
		}
		o.receiveBuffer = value
	case OptionReuseAddress:
		if s.state != StateUnconnected && s.state != StateCreated {
			return s.stateError("Socket.SetOption")
		}
		o.reuseAddress = value != 0
	default:
		return invalidOption(opt, value)
	}

	if s.conn != nil && opt != OptionTimeout && opt != OptionReuseAddress {
		if err := o.apply(s.conn); err != nil {
			return common.Transportf(common.ReasonIO, "Socket.SetOption", err, "applying %s=%d", opt, value)
		}
	}
	s.opts = o
	s.timeout.Store(int64(o.timeout))
	return nil
}

// GetOption returns the configured value of an option
func (s *Socket) GetOption(opt Option) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return 0, closedError("Socket.GetOption")
	}

	switch opt {
	case OptionTimeout:
		return int(s.opts.timeout / time.Millisecond), nil
	case OptionTCPNoDelay:
		return boolToInt(s.opts.noDelay), nil
	case OptionKeepAlive:
		return s.opts.keepAliveSec, nil
	case OptionLinger:
		return s.opts.lingerSec, nil
	case OptionSendBuffer:
		return s.opts.sendBuffer, nil
	case OptionReceiveBuffer:
		return s.opts.receiveBuffer, nil
	case OptionReuseAddress:
		return boolToInt(s.opts.reuseAddress), nil
	default:
		return 0, invalidOption(opt, 0)
	}
}

// Configure replaces all options with the values of config
func (s *Socket) Configure(config common.TransportConfig) error {
	o := optionsFromConfig(config)
	if o.timeout < 0 || o.keepAliveSec < 0 || o.lingerSec < -1 || o.sendBuffer < 0 || o.receiveBuffer < 0 {
		return common.Argumentf(common.ReasonInvalidValue, "Socket.Configure", config, "negative socket option")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return closedError("Socket.Configure")
	}
	if s.conn != nil {
		if err := o.apply(s.conn); err != nil {
			return common.Transportf(common.ReasonIO, "Socket.Configure", err, "applying socket options")
		}
	}
	s.opts = o
	s.timeout.Store(int64(o.timeout))
	return nil
}

func invalidOption(opt Option, value int) error {
	return common.Argumentf(common.ReasonInvalidValue, "Socket.SetOption", value, "invalid value for option %s", opt)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
