// Package wire is the root of the OpenWire client: the marshalling engine
// that turns commands into frames and back, and the TCP transport that moves
// the frames.
//
// The subpackages build on each other:
//
//   - common: error kinds, configuration and loggers shared by all packages
//   - commands: the data structures and their type ids
//   - marshal: boolean stream, primitive codecs and one marshaller per type,
//     grouped into per-version tables
//   - format: the WireFormat dispatcher with framing and the object caches
//   - transport/tcp: the blocking socket
//   - transport and transport/base: the client transport chain
//
// A typical client:
//
//	client, err := base.Dial(common.DefaultClientConfig())
//	if err != nil {
//		return err
//	}
//	if err := client.Start(); err != nil {
//		return err
//	}
//	defer client.Close()
//	resp, err := client.Request(ctx, &commands.KeepAliveInfo{})
package wire
