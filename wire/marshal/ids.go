package marshal

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// --------------------------------------------------------------------------
// ConnectionID
// --------------------------------------------------------------------------

type connectionIDMarshaller struct{}

func (connectionIDMarshaller) DataStructureType() byte { return commands.IDConnectionID }

func (connectionIDMarshaller) CreateObject() commands.DataStructure { return &commands.ConnectionID{} }

func (connectionIDMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.ConnectionID]("ConnectionID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	return TightMarshalString1(info.Value, bs)
}

func (connectionIDMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.ConnectionID]("ConnectionID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.Value, out, bs)
	return nil
}

func (connectionIDMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.ConnectionID]("ConnectionID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Value = TightUnmarshalString(in, bs)
	return in.Err
}

func (connectionIDMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.ConnectionID]("ConnectionID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return LooseMarshalString(info.Value, out)
}

func (connectionIDMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.ConnectionID]("ConnectionID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Value = LooseUnmarshalString(in)
	return in.Err
}

// --------------------------------------------------------------------------
// SessionID
// --------------------------------------------------------------------------

type sessionIDMarshaller struct{}

func (sessionIDMarshaller) DataStructureType() byte { return commands.IDSessionID }

func (sessionIDMarshaller) CreateObject() commands.DataStructure { return &commands.SessionID{} }

func (sessionIDMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.SessionID]("SessionID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	var rc size
	rc.add(TightMarshalString1(info.ConnectionID, bs))
	rc.add(TightMarshalLong1(info.Value, bs), nil)
	return rc.result()
}

func (sessionIDMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.SessionID]("SessionID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.ConnectionID, out, bs)
	TightMarshalLong2(info.Value, out, bs)
	return nil
}

func (sessionIDMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.SessionID]("SessionID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = TightUnmarshalString(in, bs)
	info.Value = TightUnmarshalLong(in, bs)
	return in.Err
}

func (sessionIDMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.SessionID]("SessionID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := LooseMarshalString(info.ConnectionID, out); err != nil {
		return err
	}
	LooseMarshalLong(info.Value, out)
	return nil
}

func (sessionIDMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.SessionID]("SessionID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = LooseUnmarshalString(in)
	info.Value = LooseUnmarshalLong(in)
	return in.Err
}

// --------------------------------------------------------------------------
// ConsumerID
// --------------------------------------------------------------------------

type consumerIDMarshaller struct{}

func (consumerIDMarshaller) DataStructureType() byte { return commands.IDConsumerID }

func (consumerIDMarshaller) CreateObject() commands.DataStructure { return &commands.ConsumerID{} }

func (consumerIDMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.ConsumerID]("ConsumerID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	var rc size
	rc.add(TightMarshalString1(info.ConnectionID, bs))
	rc.add(TightMarshalLong1(info.SessionID, bs), nil)
	rc.add(TightMarshalLong1(info.Value, bs), nil)
	return rc.result()
}

func (consumerIDMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.ConsumerID]("ConsumerID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.ConnectionID, out, bs)
	TightMarshalLong2(info.SessionID, out, bs)
	TightMarshalLong2(info.Value, out, bs)
	return nil
}

func (consumerIDMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.ConsumerID]("ConsumerID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = TightUnmarshalString(in, bs)
	info.SessionID = TightUnmarshalLong(in, bs)
	info.Value = TightUnmarshalLong(in, bs)
	return in.Err
}

func (consumerIDMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.ConsumerID]("ConsumerID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := LooseMarshalString(info.ConnectionID, out); err != nil {
		return err
	}
	LooseMarshalLong(info.SessionID, out)
	LooseMarshalLong(info.Value, out)
	return nil
}

func (consumerIDMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.ConsumerID]("ConsumerID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = LooseUnmarshalString(in)
	info.SessionID = LooseUnmarshalLong(in)
	info.Value = LooseUnmarshalLong(in)
	return in.Err
}

// --------------------------------------------------------------------------
// ProducerID
// --------------------------------------------------------------------------

// producerIDMarshaller writes the value before the session id
type producerIDMarshaller struct{}

func (producerIDMarshaller) DataStructureType() byte { return commands.IDProducerID }

func (producerIDMarshaller) CreateObject() commands.DataStructure { return &commands.ProducerID{} }

func (producerIDMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.ProducerID]("ProducerID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	var rc size
	rc.add(TightMarshalString1(info.ConnectionID, bs))
	rc.add(TightMarshalLong1(info.Value, bs), nil)
	rc.add(TightMarshalLong1(info.SessionID, bs), nil)
	return rc.result()
}

func (producerIDMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.ProducerID]("ProducerID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.ConnectionID, out, bs)
	TightMarshalLong2(info.Value, out, bs)
	TightMarshalLong2(info.SessionID, out, bs)
	return nil
}

func (producerIDMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.ProducerID]("ProducerID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = TightUnmarshalString(in, bs)
	info.Value = TightUnmarshalLong(in, bs)
	info.SessionID = TightUnmarshalLong(in, bs)
	return in.Err
}

func (producerIDMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.ProducerID]("ProducerID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := LooseMarshalString(info.ConnectionID, out); err != nil {
		return err
	}
	LooseMarshalLong(info.Value, out)
	LooseMarshalLong(info.SessionID, out)
	return nil
}

func (producerIDMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.ProducerID]("ProducerID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConnectionID = LooseUnmarshalString(in)
	info.Value = LooseUnmarshalLong(in)
	info.SessionID = LooseUnmarshalLong(in)
	return in.Err
}

// --------------------------------------------------------------------------
// BrokerID
// --------------------------------------------------------------------------

type brokerIDMarshaller struct{}

func (brokerIDMarshaller) DataStructureType() byte { return commands.IDBrokerID }

func (brokerIDMarshaller) CreateObject() commands.DataStructure { return &commands.BrokerID{} }

func (brokerIDMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.BrokerID]("BrokerID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	return TightMarshalString1(info.Value, bs)
}

func (brokerIDMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.BrokerID]("BrokerID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.Value, out, bs)
	return nil
}

func (brokerIDMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.BrokerID]("BrokerID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Value = TightUnmarshalString(in, bs)
	return in.Err
}

func (brokerIDMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.BrokerID]("BrokerID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return LooseMarshalString(info.Value, out)
}

func (brokerIDMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.BrokerID]("BrokerID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Value = LooseUnmarshalString(in)
	return in.Err
}

// --------------------------------------------------------------------------
// MessageID
// --------------------------------------------------------------------------

// messageIDMarshaller references the producer id through the cache
type messageIDMarshaller struct{}

func (messageIDMarshaller) DataStructureType() byte { return commands.IDMessageID }

func (messageIDMarshaller) CreateObject() commands.DataStructure { return &commands.MessageID{} }

func (messageIDMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[*commands.MessageID]("MessageID.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	var rc size
	rc.add(f.TightMarshalCachedObject1(asDS(info.ProducerID), bs))
	rc.add(TightMarshalLong1(info.ProducerSequenceID, bs), nil)
	rc.add(TightMarshalLong1(info.BrokerSequenceID, bs), nil)
	return rc.result()
}

func (messageIDMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[*commands.MessageID]("MessageID.TightMarshal2", ds)
	if err != nil {
		return err
	}
	if err := f.TightMarshalCachedObject2(asDS(info.ProducerID), out, bs); err != nil {
		return err
	}
	TightMarshalLong2(info.ProducerSequenceID, out, bs)
	TightMarshalLong2(info.BrokerSequenceID, out, bs)
	return nil
}

func (messageIDMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[*commands.MessageID]("MessageID.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ProducerID = field[*commands.ProducerID](in, "ProducerID", f.TightUnmarshalCachedObject(in, bs))
	info.ProducerSequenceID = TightUnmarshalLong(in, bs)
	info.BrokerSequenceID = TightUnmarshalLong(in, bs)
	return in.Err
}

func (messageIDMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[*commands.MessageID]("MessageID.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := LooseMarshalCachedObject(f, asDS(info.ProducerID), out); err != nil {
		return err
	}
	LooseMarshalLong(info.ProducerSequenceID, out)
	LooseMarshalLong(info.BrokerSequenceID, out)
	return nil
}

func (messageIDMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[*commands.MessageID]("MessageID.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ProducerID = field[*commands.ProducerID](in, "ProducerID", LooseUnmarshalCachedObject(f, in))
	info.ProducerSequenceID = LooseUnmarshalLong(in)
	info.BrokerSequenceID = LooseUnmarshalLong(in)
	return in.Err
}
