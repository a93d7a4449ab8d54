package marshal

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// --------------------------------------------------------------------------
// ControlCommand
// --------------------------------------------------------------------------

type controlCommandMarshaller struct {
	baseCommandMarshaller
}

func (controlCommandMarshaller) DataStructureType() byte { return commands.IDControlCommand }

func (controlCommandMarshaller) CreateObject() commands.DataStructure {
	return &commands.ControlCommand{}
}

func (m controlCommandMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.ControlCommand]("ControlCommand.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(TightMarshalString1(info.Command, bs))
	return rc.result()
}

func (m controlCommandMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ControlCommand]("ControlCommand.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.Command, out, bs)
	return nil
}

func (m controlCommandMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ControlCommand]("ControlCommand.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Command = TightUnmarshalString(in, bs)
	return in.Err
}

func (m controlCommandMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.ControlCommand]("ControlCommand.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return LooseMarshalString(info.Command, out)
}

func (m controlCommandMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.ControlCommand]("ControlCommand.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Command = LooseUnmarshalString(in)
	return in.Err
}

// --------------------------------------------------------------------------
// RemoveInfo
// --------------------------------------------------------------------------

type removeInfoMarshaller struct {
	baseCommandMarshaller
}

func (removeInfoMarshaller) DataStructureType() byte { return commands.IDRemoveInfo }

func (removeInfoMarshaller) CreateObject() commands.DataStructure { return &commands.RemoveInfo{} }

func (m removeInfoMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.RemoveInfo]("RemoveInfo.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalCachedObject1(asDS(info.ObjectID), bs))
	return rc.result()
}

func (m removeInfoMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.RemoveInfo]("RemoveInfo.TightMarshal2", ds)
	if err != nil {
		return err
	}
	return f.TightMarshalCachedObject2(asDS(info.ObjectID), out, bs)
}

func (m removeInfoMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.RemoveInfo]("RemoveInfo.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ObjectID = f.TightUnmarshalCachedObject(in, bs)
	return in.Err
}

func (m removeInfoMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.RemoveInfo]("RemoveInfo.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return LooseMarshalCachedObject(f, asDS(info.ObjectID), out)
}

func (m removeInfoMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.RemoveInfo]("RemoveInfo.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ObjectID = LooseUnmarshalCachedObject(f, in)
	return in.Err
}

// --------------------------------------------------------------------------
// ConsumerControl
// --------------------------------------------------------------------------

// consumerControlMarshaller writes the prefetch size between the close flag
// and the remaining flags, all flags live in the boolean stream.
type consumerControlMarshaller struct {
	baseCommandMarshaller
}

func (consumerControlMarshaller) DataStructureType() byte { return commands.IDConsumerControl }

func (consumerControlMarshaller) CreateObject() commands.DataStructure {
	return &commands.ConsumerControl{}
}

func (m consumerControlMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.ConsumerControl]("ConsumerControl.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalNestedObject1(asDS(info.ConsumerID), bs))
	bs.WriteBoolean(info.Close)
	bs.WriteBoolean(info.Flush)
	bs.WriteBoolean(info.Start)
	bs.WriteBoolean(info.Stop)
	rc.add(4, nil)
	return rc.result()
}

func (m consumerControlMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ConsumerControl]("ConsumerControl.TightMarshal2", ds)
	if err != nil {
		return err
	}
	if err := f.TightMarshalNestedObject2(asDS(info.ConsumerID), out, bs); err != nil {
		return err
	}
	bs.ReadBoolean()
	out.WriteInt32(info.Prefetch)
	bs.ReadBoolean()
	bs.ReadBoolean()
	bs.ReadBoolean()
	return nil
}

func (m consumerControlMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ConsumerControl]("ConsumerControl.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", f.TightUnmarshalNestedObject(in, bs))
	info.Close = bs.ReadBoolean()
	info.Prefetch = in.ReadInt32()
	info.Flush = bs.ReadBoolean()
	info.Start = bs.ReadBoolean()
	info.Stop = bs.ReadBoolean()
	return in.Err
}

func (m consumerControlMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.ConsumerControl]("ConsumerControl.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := f.LooseMarshalNestedObject(asDS(info.ConsumerID), out); err != nil {
		return err
	}
	out.WriteBool(info.Close)
	out.WriteInt32(info.Prefetch)
	out.WriteBool(info.Flush)
	out.WriteBool(info.Start)
	out.WriteBool(info.Stop)
	return nil
}

func (m consumerControlMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.ConsumerControl]("ConsumerControl.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", f.LooseUnmarshalNestedObject(in))
	info.Close = in.ReadBool()
	info.Prefetch = in.ReadInt32()
	info.Flush = in.ReadBool()
	info.Start = in.ReadBool()
	info.Stop = in.ReadBool()
	return in.Err
}

// --------------------------------------------------------------------------
// ProducerAck
// --------------------------------------------------------------------------

type producerAckMarshaller struct {
	baseCommandMarshaller
}

func (producerAckMarshaller) DataStructureType() byte { return commands.IDProducerAck }

func (producerAckMarshaller) CreateObject() commands.DataStructure { return &commands.ProducerAck{} }

func (m producerAckMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.ProducerAck]("ProducerAck.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalNestedObject1(asDS(info.ProducerID), bs))
	rc.add(4, nil)
	return rc.result()
}

func (m producerAckMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ProducerAck]("ProducerAck.TightMarshal2", ds)
	if err != nil {
		return err
	}
	if err := f.TightMarshalNestedObject2(asDS(info.ProducerID), out, bs); err != nil {
		return err
	}
	out.WriteInt32(info.Size)
	return nil
}

func (m producerAckMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.ProducerAck]("ProducerAck.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ProducerID = field[*commands.ProducerID](in, "ProducerID", f.TightUnmarshalNestedObject(in, bs))
	info.Size = in.ReadInt32()
	return in.Err
}

func (m producerAckMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.ProducerAck]("ProducerAck.LooseMarshal", ds)
	if err != nil {
		return err
	}
	if err := f.LooseMarshalNestedObject(asDS(info.ProducerID), out); err != nil {
		return err
	}
	out.WriteInt32(info.Size)
	return nil
}

func (m producerAckMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.ProducerAck]("ProducerAck.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ProducerID = field[*commands.ProducerID](in, "ProducerID", f.LooseUnmarshalNestedObject(in))
	info.Size = in.ReadInt32()
	return in.Err
}

// --------------------------------------------------------------------------
// MessagePull
// --------------------------------------------------------------------------

type messagePullMarshaller struct {
	baseCommandMarshaller
}

func (messagePullMarshaller) DataStructureType() byte { return commands.IDMessagePull }

func (messagePullMarshaller) CreateObject() commands.DataStructure { return &commands.MessagePull{} }

func (m messagePullMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.MessagePull]("MessagePull.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalCachedObject1(asDS(info.ConsumerID), bs))
	rc.add(f.TightMarshalCachedObject1(asDS(info.Destination), bs))
	rc.add(TightMarshalLong1(info.Timeout, bs), nil)
	return rc.result()
}

func (m messagePullMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.MessagePull]("MessagePull.TightMarshal2", ds)
	if err != nil {
		return err
	}
	if err := f.TightMarshalCachedObject2(asDS(info.ConsumerID), out, bs); err != nil {
		return err
	}
	if err := f.TightMarshalCachedObject2(asDS(info.Destination), out, bs); err != nil {
		return err
	}
	TightMarshalLong2(info.Timeout, out, bs)
	return nil
}

func (m messagePullMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.MessagePull]("MessagePull.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", f.TightUnmarshalCachedObject(in, bs))
	info.Destination = field[commands.Destination](in, "Destination", f.TightUnmarshalCachedObject(in, bs))
	info.Timeout = TightUnmarshalLong(in, bs)
	return in.Err
}

func (m messagePullMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.MessagePull]("MessagePull.LooseMarshal", ds)
	if err != nil {
		return err
	}
	err = firstErr(
		LooseMarshalCachedObject(f, asDS(info.ConsumerID), out),
		LooseMarshalCachedObject(f, asDS(info.Destination), out),
	)
	if err != nil {
		return err
	}
	LooseMarshalLong(info.Timeout, out)
	return nil
}

func (m messagePullMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.MessagePull]("MessagePull.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", LooseUnmarshalCachedObject(f, in))
	info.Destination = field[commands.Destination](in, "Destination", LooseUnmarshalCachedObject(f, in))
	info.Timeout = LooseUnmarshalLong(in)
	return in.Err
}

// --------------------------------------------------------------------------
// MessageDispatchNotification
// --------------------------------------------------------------------------

type messageDispatchNotificationMarshaller struct {
	baseCommandMarshaller
}

func (messageDispatchNotificationMarshaller) DataStructureType() byte {
	return commands.IDMessageDispatchNotification
}

func (messageDispatchNotificationMarshaller) CreateObject() commands.DataStructure {
	return &commands.MessageDispatchNotification{}
}

func (m messageDispatchNotificationMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.baseCommandMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.MessageDispatchNotification]("MessageDispatchNotification.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalCachedObject1(asDS(info.ConsumerID), bs))
	rc.add(f.TightMarshalCachedObject1(asDS(info.Destination), bs))
	rc.add(TightMarshalLong1(info.DeliverySequenceID, bs), nil)
	rc.add(f.TightMarshalNestedObject1(asDS(info.MessageID), bs))
	return rc.result()
}

func (m messageDispatchNotificationMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.MessageDispatchNotification]("MessageDispatchNotification.TightMarshal2", ds)
	if err != nil {
		return err
	}
	if err := f.TightMarshalCachedObject2(asDS(info.ConsumerID), out, bs); err != nil {
		return err
	}
	if err := f.TightMarshalCachedObject2(asDS(info.Destination), out, bs); err != nil {
		return err
	}
	TightMarshalLong2(info.DeliverySequenceID, out, bs)
	return f.TightMarshalNestedObject2(asDS(info.MessageID), out, bs)
}

func (m messageDispatchNotificationMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.MessageDispatchNotification]("MessageDispatchNotification.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", f.TightUnmarshalCachedObject(in, bs))
	info.Destination = field[commands.Destination](in, "Destination", f.TightUnmarshalCachedObject(in, bs))
	info.DeliverySequenceID = TightUnmarshalLong(in, bs)
	info.MessageID = field[*commands.MessageID](in, "MessageID", f.TightUnmarshalNestedObject(in, bs))
	return in.Err
}

func (m messageDispatchNotificationMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.MessageDispatchNotification]("MessageDispatchNotification.LooseMarshal", ds)
	if err != nil {
		return err
	}
	err = firstErr(
		LooseMarshalCachedObject(f, asDS(info.ConsumerID), out),
		LooseMarshalCachedObject(f, asDS(info.Destination), out),
	)
	if err != nil {
		return err
	}
	LooseMarshalLong(info.DeliverySequenceID, out)
	return f.LooseMarshalNestedObject(asDS(info.MessageID), out)
}

func (m messageDispatchNotificationMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.MessageDispatchNotification]("MessageDispatchNotification.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.ConsumerID = field[*commands.ConsumerID](in, "ConsumerID", LooseUnmarshalCachedObject(f, in))
	info.Destination = field[commands.Destination](in, "Destination", LooseUnmarshalCachedObject(f, in))
	info.DeliverySequenceID = LooseUnmarshalLong(in)
	info.MessageID = field[*commands.MessageID](in, "MessageID", f.LooseUnmarshalNestedObject(in))
	return in.Err
}
