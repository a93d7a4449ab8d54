package encode

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/marshal"
)

// Script is a list of commands to encode, read from TOML:
//
//	[[command]]
//	type = "message-pull"
//	command-id = 1
//	consumer = "ID:host-1:1:1"
//	destination = "queue://orders"
//	timeout = 1000
type Script struct {
	Commands []Entry `toml:"command"`
}

// Entry describes one command. Which fields are used depends on Type, the
// type names are the ones of commands.TypeName.
type Entry struct {
	Type             string `toml:"type"`
	CommandID        int32  `toml:"command-id"`
	ResponseRequired bool   `toml:"response-required"`

	// references, also used as RemoveInfo object and DataResponse data
	Consumer    string `toml:"consumer"`
	Producer    string `toml:"producer"`
	Destination string `toml:"destination"`
	Connection  string `toml:"connection"`
	Broker      string `toml:"broker"`

	Control          string `toml:"control"`
	Timeout          int64  `toml:"timeout"`
	Prefetch         int32  `toml:"prefetch"`
	Size             int32  `toml:"size"`
	Close            bool   `toml:"close"`
	Flush            bool   `toml:"flush"`
	Start            bool   `toml:"start"`
	Stop             bool   `toml:"stop"`
	CorrelationID    int32  `toml:"correlation-id"`
	Result           int32  `toml:"result"`
	DeliverySequence int64  `toml:"delivery-sequence"`
	MessageSequence  int64  `toml:"message-sequence"`
	BrokerSequence   int64  `toml:"broker-sequence"`

	// Data is the hex encoded payload of partial commands
	Data string `toml:"data"`
}

// ReadScript decodes a TOML script from r
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in script: %v", undecoded)
	}
	return &s, nil
}

// Build converts all entries to data structures
func (s *Script) Build() ([]commands.DataStructure, error) {
	out := make([]commands.DataStructure, 0, len(s.Commands))
	for i, e := range s.Commands {
		ds, err := e.Build()
		if err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i+1, e.Type, err)
		}
		out = append(out, ds)
	}
	return out, nil
}

// Build converts the entry to the data structure named by Type
func (e *Entry) Build() (commands.DataStructure, error) {
	typeID, ok := commands.TypeByName(e.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", e.Type)
	}
	base := commands.BaseCommand{CommandID: e.CommandID, ResponseRequired: e.ResponseRequired}

	switch typeID {
	case commands.NullType:
		return nil, nil
	case commands.IDKeepAliveInfo:
		return &commands.KeepAliveInfo{BaseCommand: base}, nil
	case commands.IDShutdownInfo:
		return &commands.ShutdownInfo{BaseCommand: base}, nil
	case commands.IDFlushCommand:
		return &commands.FlushCommand{BaseCommand: base}, nil
	case commands.IDControlCommand:
		return &commands.ControlCommand{BaseCommand: base, Command: e.Control}, nil
	case commands.IDRemoveInfo:
		obj, err := e.object()
		if err != nil {
			return nil, err
		}
		return &commands.RemoveInfo{BaseCommand: base, ObjectID: obj}, nil
	case commands.IDConsumerControl:
		consumer, err := e.consumerID()
		if err != nil {
			return nil, err
		}
		return &commands.ConsumerControl{
			BaseCommand: base, ConsumerID: consumer, Close: e.Close, Prefetch: e.Prefetch,
			Flush: e.Flush, Start: e.Start, Stop: e.Stop,
		}, nil
	case commands.IDProducerAck:
		producer, err := e.producerID()
		if err != nil {
			return nil, err
		}
		return &commands.ProducerAck{BaseCommand: base, ProducerID: producer, Size: e.Size}, nil
	case commands.IDMessagePull:
		consumer, dest, err := e.consumerAndDestination()
		if err != nil {
			return nil, err
		}
		return &commands.MessagePull{BaseCommand: base, ConsumerID: consumer, Destination: dest, Timeout: e.Timeout}, nil
	case commands.IDMessageDispatchNotification:
		consumer, dest, err := e.consumerAndDestination()
		if err != nil {
			return nil, err
		}
		producer, err := e.producerID()
		if err != nil {
			return nil, err
		}
		var msgID *commands.MessageID
		if producer != nil {
			msgID = &commands.MessageID{ProducerID: producer, ProducerSequenceID: e.MessageSequence, BrokerSequenceID: e.BrokerSequence}
		}
		return &commands.MessageDispatchNotification{
			BaseCommand: base, ConsumerID: consumer, Destination: dest,
			DeliverySequenceID: e.DeliverySequence, MessageID: msgID,
		}, nil
	case commands.IDResponse:
		return &commands.Response{BaseCommand: base, CorrelationID: e.CorrelationID}, nil
	case commands.IDDataResponse:
		obj, err := e.object()
		if err != nil {
			return nil, err
		}
		return &commands.DataResponse{
			Response: commands.Response{BaseCommand: base, CorrelationID: e.CorrelationID},
			Data:     obj,
		}, nil
	case commands.IDIntegerResponse:
		return &commands.IntegerResponse{
			Response: commands.Response{BaseCommand: base, CorrelationID: e.CorrelationID},
			Result:   e.Result,
		}, nil
	case commands.IDPartialCommand, commands.IDLastPartialCommand:
		data, err := hex.DecodeString(e.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid hex data: %w", err)
		}
		partial := commands.PartialCommand{CommandID: e.CommandID, Data: data}
		if typeID == commands.IDLastPartialCommand {
			return &commands.LastPartialCommand{PartialCommand: partial}, nil
		}
		return &partial, nil
	case commands.IDActiveMQQueue, commands.IDActiveMQTopic, commands.IDActiveMQTempQueue, commands.IDActiveMQTempTopic:
		// the destination is the plain physical name here
		return commands.NewDestination(typeID, e.Destination)
	case commands.IDConnectionID:
		return &commands.ConnectionID{Value: e.Connection}, nil
	case commands.IDBrokerID:
		return &commands.BrokerID{Value: e.Broker}, nil
	case commands.IDConsumerID:
		return required(e.consumerID())
	case commands.IDProducerID:
		return required(e.producerID())
	case commands.IDMessageID:
		producer, err := e.producerID()
		if err != nil {
			return nil, err
		}
		return &commands.MessageID{ProducerID: producer, ProducerSequenceID: e.MessageSequence, BrokerSequenceID: e.BrokerSequence}, nil
	default:
		return nil, fmt.Errorf("type %q cannot be built from a script", e.Type)
	}
}

// required turns a missing id into an error, so no typed nil is returned
func required(id commands.DataStructure, err error) (commands.DataStructure, error) {
	if err != nil {
		return nil, err
	}
	if marshal.IsNil(id) {
		return nil, fmt.Errorf("missing id")
	}
	return id, nil
}

// object returns the first reference set on the entry, nil if none is set
func (e *Entry) object() (commands.DataStructure, error) {
	switch {
	case e.Consumer != "":
		return required(e.consumerID())
	case e.Producer != "":
		return required(e.producerID())
	case e.Destination != "":
		return commands.ParseDestination(e.Destination)
	case e.Connection != "":
		return &commands.ConnectionID{Value: e.Connection}, nil
	case e.Broker != "":
		return &commands.BrokerID{Value: e.Broker}, nil
	default:
		return nil, nil
	}
}

func (e *Entry) consumerID() (*commands.ConsumerID, error) {
	if e.Consumer == "" {
		return nil, nil
	}
	return commands.ParseConsumerID(e.Consumer)
}

func (e *Entry) producerID() (*commands.ProducerID, error) {
	if e.Producer == "" {
		return nil, nil
	}
	return commands.ParseProducerID(e.Producer)
}

func (e *Entry) consumerAndDestination() (*commands.ConsumerID, commands.Destination, error) {
	consumer, err := e.consumerID()
	if err != nil {
		return nil, nil, err
	}
	if e.Destination == "" {
		return consumer, nil, nil
	}
	dest, err := commands.ParseDestination(e.Destination)
	if err != nil {
		return nil, nil, err
	}
	return consumer, dest, nil
}
