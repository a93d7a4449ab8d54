package format

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// sample holds a fully populated instance of a data structure type
type sample struct {
	name string
	ds   commands.DataStructure
}

func consumerID() *commands.ConsumerID {
	return &commands.ConsumerID{ConnectionID: "ID:host-1234-1", SessionID: 1, Value: 7}
}

func producerID() *commands.ProducerID {
	return &commands.ProducerID{ConnectionID: "ID:host-1234-1", Value: 3, SessionID: 2}
}

func queue(name string) *commands.ActiveMQQueue {
	return &commands.ActiveMQQueue{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: name}}
}

// populatedSamples returns one populated instance per registered type
func populatedSamples() []sample {
	base := commands.BaseCommand{CommandID: 42, ResponseRequired: true}
	msgID := &commands.MessageID{ProducerID: producerID(), ProducerSequenceID: 99, BrokerSequenceID: 1 << 40}

	return []sample{
		{"KeepAliveInfo", &commands.KeepAliveInfo{BaseCommand: base}},
		{"ShutdownInfo", &commands.ShutdownInfo{BaseCommand: base}},
		{"FlushCommand", &commands.FlushCommand{BaseCommand: base}},
		{"ControlCommand", &commands.ControlCommand{BaseCommand: base, Command: "shutdown"}},
		{"RemoveInfo", &commands.RemoveInfo{BaseCommand: base, ObjectID: consumerID()}},
		{"ConsumerControl", &commands.ConsumerControl{
			BaseCommand: base, ConsumerID: consumerID(), Close: true, Prefetch: 1000, Start: true,
		}},
		{"ProducerAck", &commands.ProducerAck{BaseCommand: base, ProducerID: producerID(), Size: 4096}},
		{"MessagePull", &commands.MessagePull{
			BaseCommand: base, ConsumerID: consumerID(), Destination: queue("orders"), Timeout: 30000,
		}},
		{"Response", &commands.Response{BaseCommand: base, CorrelationID: 41}},
		{"DataResponse", &commands.DataResponse{
			Response: commands.Response{BaseCommand: base, CorrelationID: 41},
			Data:     &commands.BrokerID{Value: "broker-a"},
		}},
		{"IntegerResponse", &commands.IntegerResponse{
			Response: commands.Response{BaseCommand: base, CorrelationID: 41}, Result: -5,
		}},
		{"PartialCommand", &commands.PartialCommand{CommandID: 9, Data: []byte{0, 1, 2, 0xFF}}},
		{"LastPartialCommand", &commands.LastPartialCommand{
			PartialCommand: commands.PartialCommand{CommandID: 9, Data: []byte{}},
		}},
		{"MessageDispatchNotification", &commands.MessageDispatchNotification{
			BaseCommand: base, ConsumerID: consumerID(),
			Destination: &commands.ActiveMQTopic{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "prices"}},
			DeliverySequenceID: 70000, MessageID: msgID,
		}},
		{"ActiveMQQueue", queue("orders")},
		{"ActiveMQTopic", &commands.ActiveMQTopic{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "prices"}}},
		{"ActiveMQTempQueue", &commands.ActiveMQTempQueue{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "ID:tmp-1"}}},
		{"ActiveMQTempTopic", &commands.ActiveMQTempTopic{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "ID:tmp-2"}}},
		{"MessageID", msgID},
		{"ConnectionID", &commands.ConnectionID{Value: "ID:host-1234-1"}},
		{"SessionID", &commands.SessionID{ConnectionID: "ID:host-1234-1", Value: 1}},
		{"ConsumerID", consumerID()},
		{"ProducerID", producerID()},
		{"BrokerID", &commands.BrokerID{Value: "broker-a"}},
	}
}

// defaultSamples returns a zero value instance per registered type
func defaultSamples() []sample {
	return []sample{
		{"KeepAliveInfo", &commands.KeepAliveInfo{}},
		{"ShutdownInfo", &commands.ShutdownInfo{}},
		{"FlushCommand", &commands.FlushCommand{}},
		{"ControlCommand", &commands.ControlCommand{}},
		{"RemoveInfo", &commands.RemoveInfo{}},
		{"ConsumerControl", &commands.ConsumerControl{}},
		{"ProducerAck", &commands.ProducerAck{}},
		{"MessagePull", &commands.MessagePull{}},
		{"Response", &commands.Response{}},
		{"DataResponse", &commands.DataResponse{}},
		{"IntegerResponse", &commands.IntegerResponse{}},
		{"PartialCommand", &commands.PartialCommand{}},
		{"LastPartialCommand", &commands.LastPartialCommand{}},
		{"MessageDispatchNotification", &commands.MessageDispatchNotification{}},
		{"ActiveMQQueue", &commands.ActiveMQQueue{}},
		{"ActiveMQTopic", &commands.ActiveMQTopic{}},
		{"ActiveMQTempQueue", &commands.ActiveMQTempQueue{}},
		{"ActiveMQTempTopic", &commands.ActiveMQTempTopic{}},
		{"MessageID", &commands.MessageID{}},
		{"ConnectionID", &commands.ConnectionID{}},
		{"SessionID", &commands.SessionID{}},
		{"ConsumerID", &commands.ConsumerID{}},
		{"ProducerID", &commands.ProducerID{}},
		{"BrokerID", &commands.BrokerID{}},
	}
}
