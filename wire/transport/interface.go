package transport

import (
	"context"

	"github.com/ValentinKolb/owire/wire/commands"
)

// --------------------------------------------------------------------------
// Listener
// --------------------------------------------------------------------------

// CommandListener receives what a transport reads from the wire. Both
// methods are called from the transport's reader goroutine; OnError is
// called at most once and no command follows it.
type CommandListener interface {
	// OnCommand is called for every decoded frame in wire order
	OnCommand(ds commands.DataStructure)
	// OnError reports the failure that ended the reader
	OnError(err error)
}

// --------------------------------------------------------------------------
// Transport
// --------------------------------------------------------------------------

// Transport is one link of the client transport chain. Implementations
// wrap each other (the response correlator wraps the io transport) and
// every link installs itself as the listener of the link below.
type Transport interface {
	// Start connects if needed and starts reading. The listener must be
	// set before Start.
	Start() error
	// Oneway sends ds without waiting for an answer
	Oneway(ds commands.DataStructure) error
	// Request sends cmd with ResponseRequired set and blocks until the
	// matching response arrives, ctx is done or the transport fails
	Request(ctx context.Context, cmd commands.Command) (commands.ResponseCommand, error)
	// SetListener sets the receiver of incoming commands and errors
	SetListener(l CommandListener)
	// Close stops the transport and unblocks pending calls. It is idempotent.
	Close() error
}

// ListenerFuncs adapts two functions to a CommandListener. Nil functions
// are skipped.
type ListenerFuncs struct {
	Command func(ds commands.DataStructure)
	Error   func(err error)
}

func (l ListenerFuncs) OnCommand(ds commands.DataStructure) {
	if l.Command != nil {
		l.Command(ds)
	}
}

func (l ListenerFuncs) OnError(err error) {
	if l.Error != nil {
		l.Error(err)
	}
}
