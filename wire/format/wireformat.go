package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/marshal"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("openwire")

// WireFormat encodes data structures into OpenWire frames and back. It owns
// the per connection reference caches, so every connection needs its own
// instance. Encoding and decoding are serialized separately: one goroutine
// may write while another one reads.
type WireFormat struct {
	config common.WireFormatConfig
	table  *marshal.Table

	encMu     sync.Mutex
	sendCache *marshalCache
	plan      []int16 // cache slots chosen in pass one, replayed in pass two
	planPos   int

	decMu     sync.Mutex
	recvCache *unmarshalCache
	readBuf   []byte
}

// NewWireFormat validates config and selects the marshaller table of the
// configured version. An unsupported version fails here, not on first use.
func NewWireFormat(config common.WireFormatConfig) (*WireFormat, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	table, err := marshal.TableFor(config.Version)
	if err != nil {
		return nil, err
	}
	wf := &WireFormat{
		config: config,
		table:  table,
	}
	if config.CacheEnabled {
		wf.sendCache = newMarshalCache(config.CacheSize)
		wf.recvCache = newUnmarshalCache(config.CacheSize)
	}
	plog.Debugf("created wire format: version=%d tight=%v cache=%v/%d",
		config.Version, config.TightEncoding, config.CacheEnabled, config.CacheSize)
	return wf, nil
}

// Version returns the protocol version in use
func (wf *WireFormat) Version() int { return wf.config.Version }

// Config returns the configuration the wire format was created with
func (wf *WireFormat) Config() common.WireFormatConfig { return wf.config }

// CacheEnabled implements marshal.Format
func (wf *WireFormat) CacheEnabled() bool { return wf.config.CacheEnabled }

// Reset clears both reference caches. It must be called whenever the
// underlying connection is replaced since the peer starts with empty caches.
func (wf *WireFormat) Reset() {
	wf.encMu.Lock()
	if wf.sendCache != nil {
		wf.sendCache.reset()
	}
	wf.encMu.Unlock()

	wf.decMu.Lock()
	if wf.recvCache != nil {
		wf.recvCache.reset()
	}
	wf.decMu.Unlock()
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Marshal encodes ds into a complete frame including the length prefix.
// A nil ds is encoded as the null type. On error the send cache is reset,
// so the caller may continue using the wire format but must not send
// anything from the failed call.
func (wf *WireFormat) Marshal(ds commands.DataStructure) ([]byte, error) {
	wf.encMu.Lock()
	defer wf.encMu.Unlock()

	frame, err := wf.marshal(ds)
	if err != nil {
		protocolErrors.Inc()
		if wf.sendCache != nil {
			wf.sendCache.reset()
		}
		plog.Warningf("failed to marshal %s: %v", commands.Describe(ds), err)
		return nil, common.Observe(err)
	}

	framesMarshalled.Inc()
	bytesMarshalled.Add(len(frame))
	frameSizes.Update(float64(len(frame)))
	return frame, nil
}

// MarshalTo encodes ds and writes the frame to w in a single write
func (wf *WireFormat) MarshalTo(w io.Writer, ds commands.DataStructure) error {
	frame, err := wf.Marshal(ds)
	if err != nil {
		return err
	}
	return common.Observe(writeFrame(w, frame))
}

func (wf *WireFormat) marshal(ds commands.DataStructure) ([]byte, error) {
	if marshal.IsNil(ds) {
		out := marshal.NewDataOutput(frameHeaderSize + 1)
		out.WriteInt32(1)
		out.WriteUint8(commands.NullType)
		return out.Bytes(), nil
	}

	typeID := ds.DataStructureType()
	m, err := wf.table.Lookup(typeID)
	if err != nil {
		return nil, err
	}

	if !wf.config.TightEncoding {
		return wf.looseFrame(m, ds)
	}
	return wf.tightFrame(m, ds)
}

// tightFrame runs both passes and checks they agree
func (wf *WireFormat) tightFrame(m marshal.Marshaller, ds commands.DataStructure) ([]byte, error) {
	typeID := m.DataStructureType()
	bs := marshal.NewBooleanStream()
	wf.plan = wf.plan[:0]
	wf.planPos = 0

	// pass one: flags, body size and cache plan
	bodySize, err := m.TightMarshal1(wf, ds, bs)
	if err != nil {
		return nil, err
	}
	size := 1 + bs.MarshalledSize() + bodySize
	if size > wf.config.MaxFrameSize {
		return nil, common.Protocolf(common.ReasonFrameTooLarge, "WireFormat.Marshal",
			"%s needs a frame of %d bytes, maximum is %d", commands.TypeName(typeID), size, wf.config.MaxFrameSize)
	}

	out := marshal.NewDataOutput(frameHeaderSize + size)
	out.WriteInt32(int32(size))
	out.WriteUint8(typeID)
	if err := bs.Marshal(out); err != nil {
		return nil, err
	}

	// pass two: body
	if err := m.TightMarshal2(wf, ds, out, bs); err != nil {
		return nil, err
	}

	if bs.Overrun() || bs.Remaining() != 0 || wf.planPos != len(wf.plan) {
		return nil, common.Protocolf(common.ReasonStreamDesync, "WireFormat.Marshal",
			"%s: pass two consumed %d of %d flags and %d of %d cache slots",
			commands.TypeName(typeID), bs.Len()-bs.Remaining(), bs.Len(), wf.planPos, len(wf.plan))
	}
	if out.Len() != frameHeaderSize+size {
		return nil, common.Protocolf(common.ReasonSizeMismatch, "WireFormat.Marshal",
			"%s: pass one computed %d bytes but pass two wrote %d",
			commands.TypeName(typeID), size, out.Len()-frameHeaderSize)
	}
	return out.Bytes(), nil
}

// looseFrame writes the body first and patches the length prefix
func (wf *WireFormat) looseFrame(m marshal.Marshaller, ds commands.DataStructure) ([]byte, error) {
	out := marshal.NewDataOutput(256)
	out.WriteInt32(0)
	out.WriteUint8(m.DataStructureType())
	if err := m.LooseMarshal(wf, ds, out); err != nil {
		return nil, err
	}

	size := out.Len() - frameHeaderSize
	if size > wf.config.MaxFrameSize {
		return nil, common.Protocolf(common.ReasonFrameTooLarge, "WireFormat.Marshal",
			"%s needs a frame of %d bytes, maximum is %d",
			commands.TypeName(m.DataStructureType()), size, wf.config.MaxFrameSize)
	}
	frame := out.Bytes()
	binary.BigEndian.PutUint32(frame[:frameHeaderSize], uint32(size))
	return frame, nil
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Unmarshal decodes a complete frame including its length prefix
func (wf *WireFormat) Unmarshal(frame []byte) (commands.DataStructure, error) {
	if len(frame) < frameHeaderSize {
		return nil, common.Protocolf(common.ReasonMalformed, "WireFormat.Unmarshal",
			"frame of %d bytes is shorter than its header", len(frame))
	}
	size := int(int32(binary.BigEndian.Uint32(frame)))
	if size > wf.config.MaxFrameSize {
		return nil, common.Protocolf(common.ReasonFrameTooLarge, "WireFormat.Unmarshal",
			"frame of %d bytes exceeds the maximum of %d", size, wf.config.MaxFrameSize)
	}
	if size < 1 || size != len(frame)-frameHeaderSize {
		return nil, common.Protocolf(common.ReasonMalformed, "WireFormat.Unmarshal",
			"frame header announces %d bytes but %d follow", size, len(frame)-frameHeaderSize)
	}

	wf.decMu.Lock()
	defer wf.decMu.Unlock()
	return wf.decode(frame[frameHeaderSize:])
}

// UnmarshalFrom reads and decodes the next frame from r. It returns io.EOF
// if r ends cleanly between two frames.
func (wf *WireFormat) UnmarshalFrom(r io.Reader) (commands.DataStructure, error) {
	wf.decMu.Lock()
	defer wf.decMu.Unlock()

	body, err := readFrame(r, wf.readBuf, wf.config.MaxFrameSize)
	if err != nil {
		if common.KindOf(err) == common.ProtocolError {
			protocolErrors.Inc()
		}
		return nil, common.Observe(err)
	}
	wf.readBuf = body
	return wf.decode(body)
}

// decode decodes a frame body. The caller holds decMu.
func (wf *WireFormat) decode(body []byte) (commands.DataStructure, error) {
	ds, err := wf.decodeBody(body)
	if err != nil {
		protocolErrors.Inc()
		plog.Warningf("failed to unmarshal frame of %d bytes: %v", len(body), err)
		return nil, common.Observe(err)
	}
	framesUnmarshalled.Inc()
	bytesUnmarshalled.Add(len(body) + frameHeaderSize)
	return ds, nil
}

func (wf *WireFormat) decodeBody(body []byte) (commands.DataStructure, error) {
	in := marshal.NewDataInput(body)
	typeID := in.ReadUint8()
	if in.Err != nil {
		return nil, in.Err
	}
	if typeID == commands.NullType {
		if in.Remaining() != 0 {
			return nil, common.Protocolf(common.ReasonMalformed, "WireFormat.Unmarshal",
				"null frame carries %d extra bytes", in.Remaining())
		}
		return nil, nil
	}

	m, err := wf.table.Lookup(typeID)
	if err != nil {
		return nil, err
	}
	ds := m.CreateObject()

	if wf.config.TightEncoding {
		bs := marshal.NewBooleanStream()
		if err := bs.Unmarshal(in); err != nil {
			return nil, err
		}
		if err := m.TightUnmarshal(wf, ds, in, bs); err != nil {
			return nil, err
		}
		if !bs.Exhausted() {
			return nil, common.Protocolf(common.ReasonStreamDesync, "WireFormat.Unmarshal",
				"%s: %d flags left unread, overrun=%v", commands.TypeName(typeID), bs.Remaining(), bs.Overrun())
		}
	} else if err := m.LooseUnmarshal(wf, ds, in); err != nil {
		return nil, err
	}

	if in.Err != nil {
		return nil, in.Err
	}
	if in.Remaining() != 0 {
		return nil, common.Protocolf(common.ReasonSizeMismatch, "WireFormat.Unmarshal",
			"%s: %d bytes left after decoding", commands.TypeName(typeID), in.Remaining())
	}
	return ds, nil
}

// --------------------------------------------------------------------------
// Nested objects (marshal.Format)
// --------------------------------------------------------------------------

func (wf *WireFormat) TightMarshalNestedObject1(ds commands.DataStructure, bs *marshal.BooleanStream) (int, error) {
	bs.WriteBoolean(!marshal.IsNil(ds))
	if marshal.IsNil(ds) {
		return 0, nil
	}
	m, err := wf.table.Lookup(ds.DataStructureType())
	if err != nil {
		return 0, err
	}
	n, err := m.TightMarshal1(wf, ds, bs)
	if err != nil {
		return 0, err
	}
	return 1 + n, nil
}

func (wf *WireFormat) TightMarshalNestedObject2(ds commands.DataStructure, out *marshal.DataOutput, bs *marshal.BooleanStream) error {
	if !bs.ReadBoolean() {
		return nil
	}
	if marshal.IsNil(ds) {
		return desync("TightMarshalNestedObject2")
	}
	m, err := wf.table.Lookup(ds.DataStructureType())
	if err != nil {
		return err
	}
	out.WriteUint8(m.DataStructureType())
	return m.TightMarshal2(wf, ds, out, bs)
}

func (wf *WireFormat) TightUnmarshalNestedObject(in *marshal.DataInput, bs *marshal.BooleanStream) commands.DataStructure {
	if !bs.ReadBoolean() {
		return nil
	}
	return wf.tightUnmarshalObject(in, bs, -1)
}

func (wf *WireFormat) LooseMarshalNestedObject(ds commands.DataStructure, out *marshal.DataOutput) error {
	out.WriteBool(!marshal.IsNil(ds))
	if marshal.IsNil(ds) {
		return nil
	}
	m, err := wf.table.Lookup(ds.DataStructureType())
	if err != nil {
		return err
	}
	out.WriteUint8(m.DataStructureType())
	return m.LooseMarshal(wf, ds, out)
}

func (wf *WireFormat) LooseUnmarshalNestedObject(in *marshal.DataInput) commands.DataStructure {
	if !in.ReadBool() {
		return nil
	}
	m := wf.lookupFor(in)
	if m == nil {
		return nil
	}
	ds := m.CreateObject()
	if err := m.LooseUnmarshal(wf, ds, in); err != nil {
		in.Fail(err)
		return nil
	}
	return ds
}

// tightUnmarshalObject reads a type byte and the object body. With a cache
// slot >= 0 the new object is stored before its body is decoded, which keeps
// the slot order identical to the pre-order assignment of the sender.
func (wf *WireFormat) tightUnmarshalObject(in *marshal.DataInput, bs *marshal.BooleanStream, slot int16) commands.DataStructure {
	m := wf.lookupFor(in)
	if m == nil {
		return nil
	}
	ds := m.CreateObject()
	if slot >= 0 {
		wf.recvCache.put(slot, ds)
	}
	if err := m.TightUnmarshal(wf, ds, in, bs); err != nil {
		in.Fail(err)
		return nil
	}
	return ds
}

// lookupFor reads a type byte and returns its marshaller
func (wf *WireFormat) lookupFor(in *marshal.DataInput) marshal.Marshaller {
	typeID := in.ReadUint8()
	if in.Err != nil {
		return nil
	}
	m, err := wf.table.Lookup(typeID)
	if err != nil {
		in.Fail(err)
		return nil
	}
	return m
}

// --------------------------------------------------------------------------
// Cached objects (marshal.Format)
// --------------------------------------------------------------------------

// Wire form of a cached field (tight encoding with the cache enabled):
//
//	flag present, flag new, int16 slot, [type byte + body if new]

func (wf *WireFormat) TightMarshalCachedObject1(ds commands.DataStructure, bs *marshal.BooleanStream) (int, error) {
	if !wf.config.CacheEnabled {
		return wf.TightMarshalNestedObject1(ds, bs)
	}
	bs.WriteBoolean(!marshal.IsNil(ds))
	if marshal.IsNil(ds) {
		return 0, nil
	}

	key, err := wf.cacheKey(ds)
	if err != nil {
		return 0, err
	}
	if slot, ok := wf.sendCache.lookup(key); ok {
		cacheHits.Inc()
		bs.WriteBoolean(false)
		wf.plan = append(wf.plan, slot)
		return 2, nil
	}

	cacheMisses.Inc()
	slot := wf.sendCache.assign(key)
	bs.WriteBoolean(true)
	wf.plan = append(wf.plan, slot)

	m, err := wf.table.Lookup(ds.DataStructureType())
	if err != nil {
		return 0, err
	}
	n, err := m.TightMarshal1(wf, ds, bs)
	if err != nil {
		return 0, err
	}
	return 2 + 1 + n, nil
}

func (wf *WireFormat) TightMarshalCachedObject2(ds commands.DataStructure, out *marshal.DataOutput, bs *marshal.BooleanStream) error {
	if !wf.config.CacheEnabled {
		return wf.TightMarshalNestedObject2(ds, out, bs)
	}
	if !bs.ReadBoolean() {
		return nil
	}
	isNew := bs.ReadBoolean()
	if marshal.IsNil(ds) || wf.planPos >= len(wf.plan) {
		return desync("TightMarshalCachedObject2")
	}
	slot := wf.plan[wf.planPos]
	wf.planPos++
	out.WriteInt16(slot)
	if !isNew {
		return nil
	}

	m, err := wf.table.Lookup(ds.DataStructureType())
	if err != nil {
		return err
	}
	out.WriteUint8(m.DataStructureType())
	return m.TightMarshal2(wf, ds, out, bs)
}

func (wf *WireFormat) TightUnmarshalCachedObject(in *marshal.DataInput, bs *marshal.BooleanStream) commands.DataStructure {
	if !wf.config.CacheEnabled {
		return wf.TightUnmarshalNestedObject(in, bs)
	}
	if !bs.ReadBoolean() {
		return nil
	}
	isNew := bs.ReadBoolean()
	slot := in.ReadInt16()
	if in.Err != nil {
		return nil
	}
	if !wf.recvCache.valid(slot) {
		in.Fail(common.Protocolf(common.ReasonUnknownCacheID, "TightUnmarshalCachedObject",
			"cache slot %d outside of cache size %d", slot, wf.config.CacheSize))
		return nil
	}
	if isNew {
		return wf.tightUnmarshalObject(in, bs, slot)
	}

	ds := wf.recvCache.get(slot)
	if ds == nil {
		in.Fail(common.Protocolf(common.ReasonUnknownCacheID, "TightUnmarshalCachedObject",
			"reference to empty cache slot %d", slot))
	}
	return ds
}

// cacheKey identifies ds in the send cache. Keyed objects provide their own
// key, anything else is keyed by its loose encoding.
func (wf *WireFormat) cacheKey(ds commands.DataStructure) (string, error) {
	if k, ok := ds.(commands.Keyed); ok {
		return fmt.Sprintf("%d|%s", ds.DataStructureType(), k.CacheKey()), nil
	}
	out := marshal.NewDataOutput(64)
	if err := wf.LooseMarshalNestedObject(ds, out); err != nil {
		return "", err
	}
	return string(out.Bytes()), nil
}

// CachedObjects returns the number of objects in the send cache
func (wf *WireFormat) CachedObjects() int {
	wf.encMu.Lock()
	defer wf.encMu.Unlock()
	if wf.sendCache == nil {
		return 0
	}
	return wf.sendCache.len()
}

func desync(op string) error {
	return common.Protocolf(common.ReasonStreamDesync, op, "boolean stream and object disagree")
}

// check interface compliance
var _ marshal.Format = (*WireFormat)(nil)
