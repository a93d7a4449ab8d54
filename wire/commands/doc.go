// Package commands defines the in-memory OpenWire data structures: the
// commands exchanged with the broker and the value objects (ids,
// destinations) they reference.
//
// Every concrete type reports a constant one-byte type id through
// DataStructureType. The id is what the wire format writes in front of the
// object and what the marshaller registry is indexed by.
//
// The types form a small hierarchy expressed through embedding:
//
//	BaseCommand -> KeepAliveInfo, ShutdownInfo, MessagePull, Response, ...
//	Response    -> DataResponse, IntegerResponse
//	PartialCommand -> LastPartialCommand
//	ActiveMQDestination -> ActiveMQQueue, ActiveMQTopic, ActiveMQTempQueue, ActiveMQTempTopic
//
// Ids and destinations implement Keyed. The wire format uses the key to send a
// repeated reference as a short cache index instead of the full object.
package commands
