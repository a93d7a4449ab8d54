package commands

// --------------------------------------------------------------------------
// Connection level commands
// --------------------------------------------------------------------------

// KeepAliveInfo is exchanged to detect dead connections
type KeepAliveInfo struct {
	BaseCommand
}

func (c *KeepAliveInfo) DataStructureType() byte { return IDKeepAliveInfo }

// ShutdownInfo announces an orderly shutdown of the connection
type ShutdownInfo struct {
	BaseCommand
}

func (c *ShutdownInfo) DataStructureType() byte { return IDShutdownInfo }

// FlushCommand asks the peer to flush pending work
type FlushCommand struct {
	BaseCommand
}

func (c *FlushCommand) DataStructureType() byte { return IDFlushCommand }

// ControlCommand carries a free form control string
type ControlCommand struct {
	BaseCommand
	Command string `json:"command,omitempty"`
}

func (c *ControlCommand) DataStructureType() byte { return IDControlCommand }

// RemoveInfo removes the object (connection, session, consumer or producer)
// identified by ObjectID
type RemoveInfo struct {
	BaseCommand
	ObjectID DataStructure `json:"objectId,omitempty"`
}

func (c *RemoveInfo) DataStructureType() byte { return IDRemoveInfo }

// --------------------------------------------------------------------------
// Consumer / producer commands
// --------------------------------------------------------------------------

// ConsumerControl changes the flow state of a consumer
type ConsumerControl struct {
	BaseCommand
	ConsumerID *ConsumerID `json:"consumerId,omitempty"`
	Close      bool        `json:"close,omitempty"`
	Prefetch   int32       `json:"prefetch"`
	Flush      bool        `json:"flush,omitempty"`
	Start      bool        `json:"start,omitempty"`
	Stop       bool        `json:"stop,omitempty"`
}

func (c *ConsumerControl) DataStructureType() byte { return IDConsumerControl }

// ProducerAck acknowledges size bytes produced by ProducerID
type ProducerAck struct {
	BaseCommand
	ProducerID *ProducerID `json:"producerId,omitempty"`
	Size       int32       `json:"size"`
}

func (c *ProducerAck) DataStructureType() byte { return IDProducerAck }

// MessagePull asks the broker to dispatch a message to a consumer with a
// zero prefetch window
type MessagePull struct {
	BaseCommand
	ConsumerID  *ConsumerID `json:"consumerId,omitempty"`
	Destination Destination `json:"destination,omitempty"`
	Timeout     int64       `json:"timeout"`
}

func (c *MessagePull) DataStructureType() byte { return IDMessagePull }

// MessageDispatchNotification tells a slave broker which message was
// dispatched to which consumer
type MessageDispatchNotification struct {
	BaseCommand
	ConsumerID         *ConsumerID `json:"consumerId,omitempty"`
	Destination        Destination `json:"destination,omitempty"`
	DeliverySequenceID int64       `json:"deliverySequenceId"`
	MessageID          *MessageID  `json:"messageId,omitempty"`
}

func (c *MessageDispatchNotification) DataStructureType() byte {
	return IDMessageDispatchNotification
}
