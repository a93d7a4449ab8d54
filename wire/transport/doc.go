// Package transport defines the interfaces of the OpenWire client transport
// chain.
//
// A Transport moves commands.DataStructure values to and from a broker. The
// chain is built from links that wrap each other:
//
//	ResponseCorrelator (request/response by command id)
//	        |
//	IOTransport (reader goroutine, write mutex, WireFormat)
//	        |
//	tcp.Socket
//
// Incoming frames travel upwards through CommandListener callbacks, outgoing
// commands travel downwards through Oneway and Request. The concrete links
// live in the base package, the socket in the tcp package.
package transport
