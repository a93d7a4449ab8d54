package commands

// --------------------------------------------------------------------------
// Data Structure Type Constants
// --------------------------------------------------------------------------

// Type ids as assigned by the OpenWire protocol. 0 is reserved for a null frame.
const (
	NullType byte = 0

	// Commands

	IDKeepAliveInfo               byte = 10
	IDShutdownInfo                byte = 11
	IDRemoveInfo                  byte = 12
	IDControlCommand              byte = 14
	IDFlushCommand                byte = 15
	IDConsumerControl             byte = 17
	IDProducerAck                 byte = 19
	IDMessagePull                 byte = 20
	IDResponse                    byte = 30
	IDDataResponse                byte = 32
	IDIntegerResponse             byte = 34
	IDPartialCommand              byte = 60
	IDLastPartialCommand          byte = 61
	IDMessageDispatchNotification byte = 90

	// Destinations

	IDActiveMQQueue     byte = 100
	IDActiveMQTopic     byte = 101
	IDActiveMQTempQueue byte = 102
	IDActiveMQTempTopic byte = 103

	// Ids

	IDMessageID    byte = 110
	IDConnectionID byte = 120
	IDSessionID    byte = 121
	IDConsumerID   byte = 122
	IDProducerID   byte = 123
	IDBrokerID     byte = 124
)

// typeNames maps type ids to the names used in logs and command scripts
var typeNames = map[byte]string{
	NullType:                      "null",
	IDKeepAliveInfo:               "keep-alive",
	IDShutdownInfo:                "shutdown",
	IDRemoveInfo:                  "remove",
	IDControlCommand:              "control",
	IDFlushCommand:                "flush",
	IDConsumerControl:             "consumer-control",
	IDProducerAck:                 "producer-ack",
	IDMessagePull:                 "message-pull",
	IDResponse:                    "response",
	IDDataResponse:                "data-response",
	IDIntegerResponse:             "integer-response",
	IDPartialCommand:              "partial",
	IDLastPartialCommand:          "last-partial",
	IDMessageDispatchNotification: "message-dispatch-notification",
	IDActiveMQQueue:               "queue",
	IDActiveMQTopic:               "topic",
	IDActiveMQTempQueue:           "temp-queue",
	IDActiveMQTempTopic:           "temp-topic",
	IDMessageID:                   "message-id",
	IDConnectionID:                "connection-id",
	IDSessionID:                   "session-id",
	IDConsumerID:                  "consumer-id",
	IDProducerID:                  "producer-id",
	IDBrokerID:                    "broker-id",
}

// TypeName returns the name of a type id, "unknown" if the id is not known
func TypeName(id byte) string {
	if name, ok := typeNames[id]; ok {
		return name
	}
	return "unknown"
}

// TypeByName is the inverse of TypeName
func TypeByName(name string) (byte, bool) {
	for id, n := range typeNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}
