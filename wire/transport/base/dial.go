package base

import (
	"time"

	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
)

// Dial builds the client chain for config: a ResponseCorrelator over an
// IOTransport using a TCP connector and a WireFormat. Nothing is connected
// until Start; set a listener first to receive unsolicited commands.
func Dial(config common.ClientConfig) (*ResponseCorrelator, error) {
	wf, err := format.NewWireFormat(config.WireFormat)
	if err != nil {
		return nil, err
	}
	if config.RequestTimeoutSecond < 0 {
		return nil, common.Argumentf(common.ReasonInvalidValue, "base.Dial", config.RequestTimeoutSecond,
			"request timeout must not be negative")
	}

	iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
	timeout := time.Duration(config.RequestTimeoutSecond) * time.Second
	return NewResponseCorrelator(iot, timeout), nil
}
