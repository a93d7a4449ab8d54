package tcp

import (
	"github.com/ValentinKolb/owire/wire/common"
)

// Dial creates a socket, applies the options of config and connects it
// with the configured connect timeout.
func Dial(config common.TransportConfig) (*Socket, error) {
	s := NewSocket()
	if err := s.Configure(config); err != nil {
		return nil, err
	}
	if err := s.Create(); err != nil {
		return nil, err
	}
	if err := s.Connect(config.Host, config.Port, config.ConnectTimeoutMs); err != nil {
		return nil, err
	}
	plog.Infof("connected to %s", config.Address())
	return s, nil
}

// Listen creates a socket bound to address:port and ready to Accept
func Listen(address string, port int) (*Socket, error) {
	s := NewSocket()
	if err := s.Create(); err != nil {
		return nil, err
	}
	if err := s.Bind(address, port); err != nil {
		return nil, err
	}
	if err := s.Listen(0); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
