package marshal

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// --------------------------------------------------------------------------
// Accumulators
// --------------------------------------------------------------------------

// size accumulates the pass one size of a data structure. After the first
// error further additions are ignored.
type size struct {
	n   int
	err error
}

func (s *size) add(n int, err error) {
	if s.err != nil {
		return
	}
	s.n += n
	s.err = err
}

func (s *size) result() (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.n, nil
}

// firstErr returns the first non nil error
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// BaseCommand
// --------------------------------------------------------------------------

// baseCommandMarshaller writes the fields shared by every command. It is not
// registered itself; command marshallers embed it and call it first.
type baseCommandMarshaller struct{}

func (baseCommandMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[commands.Command]("BaseCommand.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	bs.WriteBoolean(info.Base().ResponseRequired)
	return 4, nil
}

func (baseCommandMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[commands.Command]("BaseCommand.TightMarshal2", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.Base().CommandID)
	bs.ReadBoolean()
	return nil
}

func (baseCommandMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[commands.Command]("BaseCommand.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	base := info.Base()
	base.CommandID = in.ReadInt32()
	base.ResponseRequired = bs.ReadBoolean()
	return in.Err
}

func (baseCommandMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[commands.Command]("BaseCommand.LooseMarshal", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.Base().CommandID)
	out.WriteBool(info.Base().ResponseRequired)
	return nil
}

func (baseCommandMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[commands.Command]("BaseCommand.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	base := info.Base()
	base.CommandID = in.ReadInt32()
	base.ResponseRequired = in.ReadBool()
	return in.Err
}

// fieldlessCommandMarshaller serves commands without fields of their own
type fieldlessCommandMarshaller struct {
	baseCommandMarshaller
	typeID byte
	create func() commands.DataStructure
}

func (m fieldlessCommandMarshaller) DataStructureType() byte { return m.typeID }

func (m fieldlessCommandMarshaller) CreateObject() commands.DataStructure { return m.create() }

// --------------------------------------------------------------------------
// ActiveMQDestination
// --------------------------------------------------------------------------

// physicalNamed is a destination whose name can be filled in by a decoder
type physicalNamed interface {
	commands.DataStructure
	SetPhysicalName(name string)
}

// destinationMarshaller writes the physical name shared by all
// destinations. The concrete destination marshallers only add their type id.
type destinationMarshaller struct {
	typeID byte
}

func (m destinationMarshaller) DataStructureType() byte { return m.typeID }

func (m destinationMarshaller) CreateObject() commands.DataStructure {
	d, _ := commands.NewDestination(m.typeID, "")
	return d
}

func (destinationMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[commands.Destination]("ActiveMQDestination.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	return TightMarshalString1(info.GetPhysicalName(), bs)
}

func (destinationMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[commands.Destination]("ActiveMQDestination.TightMarshal2", ds)
	if err != nil {
		return err
	}
	TightMarshalString2(info.GetPhysicalName(), out, bs)
	return nil
}

func (destinationMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[physicalNamed]("ActiveMQDestination.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.SetPhysicalName(TightUnmarshalString(in, bs))
	return in.Err
}

func (destinationMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[commands.Destination]("ActiveMQDestination.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return LooseMarshalString(info.GetPhysicalName(), out)
}

func (destinationMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[physicalNamed]("ActiveMQDestination.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.SetPhysicalName(LooseUnmarshalString(in))
	return in.Err
}
