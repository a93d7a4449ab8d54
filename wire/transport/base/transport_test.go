package base

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/transport"
)

// recorder collects what a server connection or client listener receives
type recorder struct {
	mu       sync.Mutex
	received []commands.DataStructure
	errs     []error
	notify   chan struct{}
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan struct{}, 64)}
}

func (r *recorder) OnCommand(ds commands.DataStructure) {
	r.mu.Lock()
	r.received = append(r.received, ds)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

func (r *recorder) OnError(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

// wait blocks until n events were recorded
func (r *recorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.notify:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func (r *recorder) all() []commands.DataStructure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]commands.DataStructure(nil), r.received...)
}

func (r *recorder) failures() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// brokerHandler answers every command that requires a response, except
// ControlCommand "silence". ControlCommand "push" triggers an unsolicited
// KeepAliveInfo.
func brokerHandler(seen *recorder) ServerHandleFunc {
	return func(conn *IOTransport, ds commands.DataStructure) {
		if seen != nil {
			seen.OnCommand(ds)
		}
		cmd, ok := ds.(commands.Command)
		if !ok {
			return
		}
		if ctrl, ok := cmd.(*commands.ControlCommand); ok {
			switch ctrl.Command {
			case "silence":
				return
			case "push":
				conn.Oneway(&commands.KeepAliveInfo{})
			}
		}
		if !cmd.Base().ResponseRequired {
			return
		}
		if pull, ok := cmd.(*commands.MessagePull); ok {
			conn.Oneway(&commands.DataResponse{
				Response: commands.Response{CorrelationID: cmd.Base().CommandID},
				Data:     pull.Destination,
			})
			return
		}
		conn.Oneway(&commands.Response{CorrelationID: cmd.Base().CommandID})
	}
}

// startServer starts a loopback server and returns it with a client config for it
func startServer(t *testing.T, handler ServerHandleFunc) (*Server, common.ClientConfig) {
	t.Helper()
	config := common.DefaultClientConfig()
	config.Transport.Host = "127.0.0.1"
	config.Transport.ConnectTimeoutMs = 1000
	config.RequestTimeoutSecond = 5

	server, err := NewServer("127.0.0.1", 0, config.WireFormat, handler)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	go server.Serve()
	t.Cleanup(func() { server.Close() })

	config.Transport.Port = server.Port()
	return server, config
}

// startClient dials config and starts the chain with listener
func startClient(t *testing.T, config common.ClientConfig, listener transport.CommandListener) *ResponseCorrelator {
	t.Helper()
	client, err := Dial(config)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if listener != nil {
		client.SetListener(listener)
	}
	if err := client.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// TestRequestResponse tests a request answered by the matching response
func TestRequestResponse(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	client := startClient(t, config, nil)

	cmd := &commands.KeepAliveInfo{}
	resp, err := client.Request(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if !cmd.ResponseRequired {
		t.Errorf("expected ResponseRequired to be set")
	}
	if resp.GetCorrelationID() != cmd.CommandID {
		t.Errorf("expected correlation id %d, got %d", cmd.CommandID, resp.GetCorrelationID())
	}
	if client.Pending() != 0 {
		t.Errorf("expected no pending requests, got %d", client.Pending())
	}

	// the destination goes through both caches and comes back as data
	pull := &commands.MessagePull{
		ConsumerID:  &commands.ConsumerID{ConnectionID: "ID:c-1", SessionID: 1, Value: 1},
		Destination: &commands.ActiveMQQueue{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "orders"}},
		Timeout:     100,
	}
	for i := 0; i < 3; i++ {
		resp, err := client.Request(context.Background(), pull)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i, err)
		}
		data, ok := resp.(*commands.DataResponse)
		if !ok {
			t.Fatalf("expected DataResponse, got %s", commands.Describe(resp))
		}
		if !reflect.DeepEqual(data.Data, pull.Destination) {
			t.Errorf("expected %v, got %v", pull.Destination, data.Data)
		}
	}
}

// TestConcurrentRequests tests that concurrent requests get their own responses
func TestConcurrentRequests(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	client := startClient(t, config, nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd := &commands.FlushCommand{}
			resp, err := client.Request(context.Background(), cmd)
			if err != nil {
				errs <- err
				return
			}
			if resp.GetCorrelationID() != cmd.CommandID {
				errs <- errors.New("response for another command")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestRequestTimeout tests ctx deadlines and cancellation of a request without response
func TestRequestTimeout(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	client := startClient(t, config, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := client.Request(ctx, &commands.ControlCommand{Command: "silence"})
	if !errors.Is(err, common.ErrTimeout) {
		t.Errorf("expected timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the ctx error as cause, got %v", err)
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = client.Request(ctx, &commands.ControlCommand{Command: "silence"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if client.Pending() != 0 {
		t.Errorf("expected no pending requests, got %d", client.Pending())
	}

	// the transport is still usable
	if _, err := client.Request(context.Background(), &commands.KeepAliveInfo{}); err != nil {
		t.Errorf("Request after timeout failed: %v", err)
	}
}

// TestUnsolicitedCommand tests that commands without pending request reach the listener
func TestUnsolicitedCommand(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	rec := newRecorder()
	client := startClient(t, config, rec)

	if err := client.Oneway(&commands.ControlCommand{Command: "push"}); err != nil {
		t.Fatalf("Oneway failed: %v", err)
	}
	rec.wait(t, 1)

	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 command, got %d", len(got))
	}
	if _, ok := got[0].(*commands.KeepAliveInfo); !ok {
		t.Errorf("expected KeepAliveInfo, got %s", commands.Describe(got[0]))
	}
}

// TestOnewayCommandIDs tests that Oneway assigns increasing ids without ResponseRequired
func TestOnewayCommandIDs(t *testing.T) {
	seen := newRecorder()
	_, config := startServer(t, brokerHandler(seen))
	client := startClient(t, config, nil)

	first := &commands.ShutdownInfo{BaseCommand: commands.BaseCommand{ResponseRequired: true}}
	second := &commands.FlushCommand{}
	partial := &commands.PartialCommand{CommandID: 77, Data: []byte{1, 2}}
	for _, ds := range []commands.DataStructure{first, second, partial} {
		if err := client.Oneway(ds); err != nil {
			t.Fatalf("Oneway failed: %v", err)
		}
	}
	seen.wait(t, 3)

	if first.ResponseRequired {
		t.Errorf("Oneway must clear ResponseRequired")
	}
	if second.CommandID <= first.CommandID {
		t.Errorf("expected increasing command ids, got %d then %d", first.CommandID, second.CommandID)
	}
	got := seen.all()
	if !reflect.DeepEqual(got[2], partial) {
		t.Errorf("expected partial command unchanged, got %v", got[2])
	}
}

// TestServerClose tests that a dropped connection fails pending requests and notifies the listener
func TestServerClose(t *testing.T) {
	server, config := startServer(t, brokerHandler(nil))
	rec := newRecorder()
	client := startClient(t, config, rec)

	result := make(chan error, 1)
	go func() {
		_, err := client.Request(context.Background(), &commands.ControlCommand{Command: "silence"})
		result <- err
	}()

	// wait until the request is registered
	deadline := time.Now().Add(2 * time.Second)
	for client.Pending() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	server.Close()

	select {
	case err := <-result:
		if common.KindOf(err) != common.TransportError {
			t.Errorf("expected transport error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pending request was not failed")
	}

	rec.wait(t, 1)
	if errs := rec.failures(); len(errs) != 1 {
		t.Errorf("expected one OnError call, got %d", len(errs))
	}

	// later calls fail fast with the recorded failure
	if _, err := client.Request(context.Background(), &commands.KeepAliveInfo{}); common.KindOf(err) != common.TransportError {
		t.Errorf("expected transport error after failure, got %v", err)
	}
}

// TestClientClose tests Close of the chain
func TestClientClose(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	rec := newRecorder()
	client := startClient(t, config, rec)

	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := client.Request(context.Background(), &commands.KeepAliveInfo{}); !errors.Is(err, common.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := client.Oneway(&commands.KeepAliveInfo{}); !errors.Is(err, common.ErrClosed) {
		t.Errorf("expected ErrClosed from Oneway, got %v", err)
	}

	// a closed transport does not report its own shutdown as error
	time.Sleep(50 * time.Millisecond)
	if errs := rec.failures(); len(errs) != 0 {
		t.Errorf("expected no OnError after Close, got %v", errs)
	}
}

// TestReconnect tests that a reconnect starts with fresh caches on both sides
func TestReconnect(t *testing.T) {
	seen := newRecorder()
	server, config := startServer(t, brokerHandler(seen))

	wf := mustWireFormat(t, config.WireFormat)
	iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
	iot.SetListener(newRecorder())
	if err := iot.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer iot.Close()

	pull := &commands.MessagePull{
		ConsumerID:  &commands.ConsumerID{ConnectionID: "ID:c-1", SessionID: 1, Value: 1},
		Destination: &commands.ActiveMQTopic{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "prices"}},
	}
	if err := iot.Oneway(pull); err != nil {
		t.Fatalf("Oneway failed: %v", err)
	}
	seen.wait(t, 1)
	if wf.CachedObjects() == 0 {
		t.Fatalf("expected cached objects after the first send")
	}

	if err := iot.Reconnect(); err != nil {
		t.Fatalf("Reconnect failed: %v", err)
	}
	if wf.CachedObjects() != 0 {
		t.Errorf("expected empty cache after reconnect, got %d", wf.CachedObjects())
	}

	// the new server connection only understands the command with a fresh cache
	if err := iot.Oneway(pull); err != nil {
		t.Fatalf("Oneway after reconnect failed: %v", err)
	}
	seen.wait(t, 1)

	got := seen.all()
	if len(got) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0], got[1]) {
		t.Errorf("commands differ across reconnect: %v vs %v", got[0], got[1])
	}

	deadline := time.Now().Add(2 * time.Second)
	for server.Connections() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if server.Connections() != 1 {
		t.Errorf("expected the old connection to be gone, got %d", server.Connections())
	}
}

// TestIOTransportErrors tests misuse of the io transport
func TestIOTransportErrors(t *testing.T) {
	_, config := startServer(t, brokerHandler(nil))
	wf := mustWireFormat(t, config.WireFormat)

	t.Run("NoListener", func(t *testing.T) {
		iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
		if err := iot.Start(); !errors.Is(err, common.ErrInvalidState) {
			t.Errorf("expected state error, got %v", err)
		}
	})

	t.Run("NotStarted", func(t *testing.T) {
		iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
		if err := iot.Oneway(&commands.KeepAliveInfo{}); !errors.Is(err, common.ErrInvalidState) {
			t.Errorf("expected state error, got %v", err)
		}
	})

	t.Run("Request", func(t *testing.T) {
		iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
		if _, err := iot.Request(context.Background(), &commands.KeepAliveInfo{}); !errors.Is(err, common.ErrInvalidState) {
			t.Errorf("expected state error, got %v", err)
		}
	})

	t.Run("DoubleStart", func(t *testing.T) {
		iot := NewIOTransport(NewTCPConnector(config.Transport), wf)
		iot.SetListener(newRecorder())
		if err := iot.Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		defer iot.Close()
		if err := iot.Start(); !errors.Is(err, common.ErrInvalidState) {
			t.Errorf("expected state error, got %v", err)
		}
	})

	t.Run("Refused", func(t *testing.T) {
		tc := config.Transport
		tc.Port = 1
		iot := NewIOTransport(NewTCPConnector(tc), wf)
		iot.SetListener(newRecorder())
		if err := iot.Start(); common.KindOf(err) != common.TransportError {
			t.Errorf("expected transport error, got %v", err)
		}
	})
}

// TestDialConfig tests that Dial rejects invalid configurations
func TestDialConfig(t *testing.T) {
	config := common.DefaultClientConfig()
	config.WireFormat.Version = 99
	if _, err := Dial(config); !errors.Is(err, common.ErrUnsupportedVersion) {
		t.Errorf("expected unsupported version, got %v", err)
	}

	config = common.DefaultClientConfig()
	config.RequestTimeoutSecond = -1
	if _, err := Dial(config); common.KindOf(err) != common.ArgumentError {
		t.Errorf("expected argument error, got %v", err)
	}
}
