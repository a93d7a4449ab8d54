package base

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/transport"
	"github.com/puzpuzpuz/xsync/v3"
)

// responseResult contains the result of a request
type responseResult struct {
	resp commands.ResponseCommand
	err  error
}

// ResponseCorrelator adds request/response semantics on top of another
// transport. Every outgoing command gets a fresh command id; a Response whose
// CorrelationID matches a pending request completes that request, all other
// commands are passed on to the listener.
type ResponseCorrelator struct {
	next    transport.Transport
	timeout time.Duration

	nextCommandID atomic.Int32
	pending       *xsync.MapOf[int32, chan responseResult]

	mu       sync.RWMutex // protects listener and failure
	listener transport.CommandListener
	failure  error // set once the next transport failed or was closed

	closed atomic.Bool
}

// NewResponseCorrelator wraps next and installs itself as its listener.
// With timeout > 0 every request is bounded by it in addition to its ctx.
func NewResponseCorrelator(next transport.Transport, timeout time.Duration) *ResponseCorrelator {
	c := &ResponseCorrelator{
		next:    next,
		timeout: timeout,
		pending: xsync.NewMapOf[int32, chan responseResult](),
	}
	next.SetListener(c)
	return c
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.Transport)
// --------------------------------------------------------------------------

func (c *ResponseCorrelator) Start() error {
	return c.next.Start()
}

// Oneway assigns a command id and clears ResponseRequired before sending.
// Data structures that are not commands are sent unchanged.
func (c *ResponseCorrelator) Oneway(ds commands.DataStructure) error {
	if err := c.err("ResponseCorrelator.Oneway"); err != nil {
		return err
	}
	if cmd, ok := ds.(commands.Command); ok {
		base := cmd.Base()
		base.CommandID = c.nextCommandID.Add(1)
		base.ResponseRequired = false
	}
	return c.next.Oneway(ds)
}

func (c *ResponseCorrelator) Request(ctx context.Context, cmd commands.Command) (commands.ResponseCommand, error) {
	if err := c.err("ResponseCorrelator.Request"); err != nil {
		return nil, err
	}

	// Generate a unique command id
	id := c.nextCommandID.Add(1)
	base := cmd.Base()
	base.CommandID = id
	base.ResponseRequired = true

	// Register the request before sending so a fast response is not lost
	respCh := make(chan responseResult, 1)
	c.pending.Store(id, respCh)
	defer c.pending.Delete(id)

	// A failure between err() and Store would otherwise leave the request waiting
	if err := c.err("ResponseCorrelator.Request"); err != nil {
		return nil, err
	}

	if err := c.next.Oneway(cmd); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	select {
	case result := <-respCh:
		return result.resp, result.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, common.Transportf(common.ReasonTimeout, "ResponseCorrelator.Request", ctx.Err(),
				"no response for command %d", id)
		}
		return nil, ctx.Err()
	}
}

func (c *ResponseCorrelator) SetListener(l transport.CommandListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = l
}

func (c *ResponseCorrelator) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.fail(common.Transportf(common.ReasonClosed, "ResponseCorrelator.Close", nil, "transport closed"))
	return c.next.Close()
}

// --------------------------------------------------------------------------
// Listener Methods (docu see transport.CommandListener)
// --------------------------------------------------------------------------

func (c *ResponseCorrelator) OnCommand(ds commands.DataStructure) {
	if resp, ok := ds.(commands.ResponseCommand); ok {
		if respCh, found := c.pending.LoadAndDelete(resp.GetCorrelationID()); found {
			respCh <- responseResult{resp: resp}
			return
		}
	}

	c.mu.RLock()
	l := c.listener
	c.mu.RUnlock()
	if l == nil {
		Logger.Debugf("dropping unsolicited %s", commands.Describe(ds))
		return
	}
	l.OnCommand(ds)
}

func (c *ResponseCorrelator) OnError(err error) {
	c.fail(err)

	c.mu.RLock()
	l := c.listener
	c.mu.RUnlock()
	if l != nil {
		l.OnError(err)
	} else {
		Logger.Warningf("transport failed: %v", err)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// Pending returns the number of requests waiting for a response
func (c *ResponseCorrelator) Pending() int {
	return c.pending.Size()
}

// Next returns the wrapped transport
func (c *ResponseCorrelator) Next() transport.Transport {
	return c.next
}

// fail records err as the terminal failure and completes every pending request with it
func (c *ResponseCorrelator) fail(err error) {
	c.mu.Lock()
	if c.failure == nil {
		c.failure = err
	}
	c.mu.Unlock()

	c.pending.Range(func(id int32, _ chan responseResult) bool {
		if respCh, found := c.pending.LoadAndDelete(id); found {
			respCh <- responseResult{err: err}
		}
		return true
	})
}

// err returns the terminal failure, if any
func (c *ResponseCorrelator) err(op string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.failure == nil {
		return nil
	}
	var e *common.Error
	if errors.As(c.failure, &e) {
		clone := e.Clone()
		clone.Op = op
		return clone.Mark()
	}
	return common.Transportf(common.ReasonClosed, op, c.failure, "transport failed")
}

var _ transport.Transport = (*ResponseCorrelator)(nil)
var _ transport.CommandListener = (*ResponseCorrelator)(nil)
