package marshal

import (
	"github.com/ValentinKolb/owire/wire/commands"
)

// --------------------------------------------------------------------------
// Response
// --------------------------------------------------------------------------

// responseMarshaller adds the correlation id to the command fields. The
// other response marshallers embed it.
type responseMarshaller struct {
	baseCommandMarshaller
}

func (responseMarshaller) DataStructureType() byte { return commands.IDResponse }

func (responseMarshaller) CreateObject() commands.DataStructure { return &commands.Response{} }

func (m responseMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	rc, err := m.baseCommandMarshaller.TightMarshal1(f, ds, bs)
	if err != nil {
		return 0, err
	}
	if _, err := cast[commands.ResponseCommand]("Response.TightMarshal1", ds); err != nil {
		return 0, err
	}
	return rc + 4, nil
}

func (m responseMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[commands.ResponseCommand]("Response.TightMarshal2", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.GetCorrelationID())
	return nil
}

func (m responseMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.baseCommandMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[correlated]("Response.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.SetCorrelationID(in.ReadInt32())
	return in.Err
}

func (m responseMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.baseCommandMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[commands.ResponseCommand]("Response.LooseMarshal", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.GetCorrelationID())
	return nil
}

func (m responseMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.baseCommandMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[correlated]("Response.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.SetCorrelationID(in.ReadInt32())
	return in.Err
}

// correlated is a response whose correlation id can be set by a decoder
type correlated interface {
	commands.DataStructure
	SetCorrelationID(id int32)
}

// --------------------------------------------------------------------------
// DataResponse
// --------------------------------------------------------------------------

type dataResponseMarshaller struct {
	responseMarshaller
}

func (dataResponseMarshaller) DataStructureType() byte { return commands.IDDataResponse }

func (dataResponseMarshaller) CreateObject() commands.DataStructure {
	return &commands.DataResponse{}
}

func (m dataResponseMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	var rc size
	rc.add(m.responseMarshaller.TightMarshal1(f, ds, bs))
	info, err := cast[*commands.DataResponse]("DataResponse.TightMarshal1", ds)
	rc.add(0, err)
	if err != nil {
		return rc.result()
	}
	rc.add(f.TightMarshalNestedObject1(asDS(info.Data), bs))
	return rc.result()
}

func (m dataResponseMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.responseMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.DataResponse]("DataResponse.TightMarshal2", ds)
	if err != nil {
		return err
	}
	return f.TightMarshalNestedObject2(asDS(info.Data), out, bs)
}

func (m dataResponseMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.responseMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.DataResponse]("DataResponse.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Data = f.TightUnmarshalNestedObject(in, bs)
	return in.Err
}

func (m dataResponseMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.responseMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.DataResponse]("DataResponse.LooseMarshal", ds)
	if err != nil {
		return err
	}
	return f.LooseMarshalNestedObject(asDS(info.Data), out)
}

func (m dataResponseMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.responseMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.DataResponse]("DataResponse.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Data = f.LooseUnmarshalNestedObject(in)
	return in.Err
}

// --------------------------------------------------------------------------
// IntegerResponse
// --------------------------------------------------------------------------

type integerResponseMarshaller struct {
	responseMarshaller
}

func (integerResponseMarshaller) DataStructureType() byte { return commands.IDIntegerResponse }

func (integerResponseMarshaller) CreateObject() commands.DataStructure {
	return &commands.IntegerResponse{}
}

func (m integerResponseMarshaller) TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error) {
	rc, err := m.responseMarshaller.TightMarshal1(f, ds, bs)
	if err != nil {
		return 0, err
	}
	return rc + 4, nil
}

func (m integerResponseMarshaller) TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error {
	if err := m.responseMarshaller.TightMarshal2(f, ds, out, bs); err != nil {
		return err
	}
	info, err := cast[*commands.IntegerResponse]("IntegerResponse.TightMarshal2", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.Result)
	return nil
}

func (m integerResponseMarshaller) TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error {
	if err := m.responseMarshaller.TightUnmarshal(f, ds, in, bs); err != nil {
		return err
	}
	info, err := cast[*commands.IntegerResponse]("IntegerResponse.TightUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Result = in.ReadInt32()
	return in.Err
}

func (m integerResponseMarshaller) LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error {
	if err := m.responseMarshaller.LooseMarshal(f, ds, out); err != nil {
		return err
	}
	info, err := cast[*commands.IntegerResponse]("IntegerResponse.LooseMarshal", ds)
	if err != nil {
		return err
	}
	out.WriteInt32(info.Result)
	return nil
}

func (m integerResponseMarshaller) LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error {
	if err := m.responseMarshaller.LooseUnmarshal(f, ds, in); err != nil {
		return err
	}
	info, err := cast[*commands.IntegerResponse]("IntegerResponse.LooseUnmarshal", ds)
	if err != nil {
		return err
	}
	info.Result = in.ReadInt32()
	return in.Err
}
