package marshal

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// fragment gives access to the fields shared by both partial command types
type fragment interface {
	commands.DataStructure
	Fragment() *commands.PartialCommand
}

// partialCommandMarshaller serves PartialCommand and LastPartialCommand.
// Partial commands are plain data structures and carry no command fields.
type partialCommandMarshaller struct {
	typeID byte
}

func (m partialCommandMarshaller) DataStructureType() byte { return m.typeID }

func (m partialCommandMarshaller) CreateObject() commands.DataStructure {
	if m.typeID == commands.IDLastPartialCommand {
		return &commands.LastPartialCommand{}
	}
	return &commands.PartialCommand{}
}

func (partialCommandMarshaller) TightMarshal1(_ Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	info, err := cast[fragment]("PartialCommand.TightMarshal1", ds)
	if err != nil {
		return 0, err
	}
	return 4 + TightMarshalByteArray1(info.Fragment().Data, bs), nil
}

func (partialCommandMarshaller) TightMarshal2(_ Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	info, err := cast[fragment]("PartialCommand.TightMarshal2", ds)
	if err != nil {
		return err
	}
	p := info.Fragment()
	out.WriteInt32(p.CommandID)
	TightMarshalByteArray2(p.Data, out, bs)
	return nil
}

func (partialCommandMarshaller) TightUnmarshal(_ Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	info, err := cast[fragment]("PartialCommand.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	p := info.Fragment()
	p.CommandID = in.ReadInt32()
	p.Data = TightUnmarshalByteArray(in, bs)
	return in.Err
}

func (partialCommandMarshaller) LooseMarshal(_ Format, ds commands.DataStructure, out *DataOutput) error {
	info, err := cast[fragment]("PartialCommand.LooseMarshal", ds)
	if err != nil {
		return err
	}
	p := info.Fragment()
	out.WriteInt32(p.CommandID)
	LooseMarshalByteArray(p.Data, out)
	return nil
}

func (partialCommandMarshaller) LooseUnmarshal(_ Format, ds commands.DataStructure, in *DataInput) error {
	info, err := cast[fragment]("PartialCommand.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	p := info.Fragment()
	p.CommandID = in.ReadInt32()
	p.Data = LooseUnmarshalByteArray(in)
	return in.Err
}
