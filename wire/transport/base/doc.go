// Package base implements the links of the OpenWire client transport chain
// on top of tcp.Socket and format.WireFormat.
//
// Key Components:
//
//   - IOTransport: owns one socket and one WireFormat. A reader goroutine
//     decodes frames through a buffered reader and dispatches them to the
//     listener in wire order. Oneway encodes and writes whole frames under a
//     write mutex. Reconnect swaps the socket and clears the object caches.
//
//   - ResponseCorrelator: assigns command ids, tracks pending requests in an
//     xsync.MapOf keyed by command id and completes them when a response with
//     the matching correlation id arrives. A transport failure or Close fails
//     every pending request; ctx and the configured request timeout bound
//     each request.
//
//   - IClientConnector: opens the socket for an IOTransport (tcp.Dial for
//     NewTCPConnector).
//
//   - Server: accept loop over a listening socket with one IOTransport per
//     connection, used as the broker side in loopback tests and the CLI.
//
// Dial wires the client chain from a common.ClientConfig.
package base
