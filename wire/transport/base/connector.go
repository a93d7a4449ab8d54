package base

import (
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/transport/tcp"
)

// IClientConnector opens the socket an IOTransport runs on. It is called
// once by Start and again by every Reconnect.
type IClientConnector interface {
	// Connect establishes a new connected socket
	Connect() (*tcp.Socket, error)

	// GetName returns the name of the transport type (e.g. "tcp")
	GetName() string
}

// tcpConnector dials a broker with a fixed transport configuration
type tcpConnector struct {
	config common.TransportConfig
}

// NewTCPConnector returns a connector that dials config with tcp.Dial
func NewTCPConnector(config common.TransportConfig) IClientConnector {
	return &tcpConnector{config: config}
}

func (c *tcpConnector) GetName() string {
	return "tcp"
}

func (c *tcpConnector) Connect() (*tcp.Socket, error) {
	return tcp.Dial(c.config)
}
