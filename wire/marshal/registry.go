package marshal

import (
	"fmt"
	"sort"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
)

// Table maps a type id to its marshaller for one protocol version. Unused
// slots are nil. Tables are built once during package initialisation and
// are read only afterwards, so they can be shared by all wire formats.
type Table [256]Marshaller

// Lookup returns the marshaller for typeID
func (t *Table) Lookup(typeID byte) (Marshaller, error) {
	if m := t[typeID]; m != nil {
		return m, nil
	}
	return nil, common.Protocolf(common.ReasonUnknownType, "Table.Lookup",
		"no marshaller for data structure type %d", typeID)
}

// Types returns the registered type ids in ascending order
func (t *Table) Types() []byte {
	var ids []byte
	for i, m := range t {
		if m != nil {
			ids = append(ids, byte(i))
		}
	}
	return ids
}

// --------------------------------------------------------------------------
// Versions
// --------------------------------------------------------------------------

var tables = map[int]*Table{}

// marshallers returns every marshaller this package implements
func marshallers() []Marshaller {
	fieldless := func(id byte, create func() commands.DataStructure) Marshaller {
		return fieldlessCommandMarshaller{typeID: id, create: create}
	}
	return []Marshaller{
		fieldless(commands.IDKeepAliveInfo, func() commands.DataStructure { return &commands.KeepAliveInfo{} }),
		fieldless(commands.IDShutdownInfo, func() commands.DataStructure { return &commands.ShutdownInfo{} }),
		fieldless(commands.IDFlushCommand, func() commands.DataStructure { return &commands.FlushCommand{} }),
		removeInfoMarshaller{},
		controlCommandMarshaller{},
		consumerControlMarshaller{},
		producerAckMarshaller{},
		messagePullMarshaller{},
		responseMarshaller{},
		dataResponseMarshaller{},
		integerResponseMarshaller{},
		partialCommandMarshaller{typeID: commands.IDPartialCommand},
		partialCommandMarshaller{typeID: commands.IDLastPartialCommand},
		messageDispatchNotificationMarshaller{},
		destinationMarshaller{typeID: commands.IDActiveMQQueue},
		destinationMarshaller{typeID: commands.IDActiveMQTopic},
		destinationMarshaller{typeID: commands.IDActiveMQTempQueue},
		destinationMarshaller{typeID: commands.IDActiveMQTempTopic},
		messageIDMarshaller{},
		connectionIDMarshaller{},
		sessionIDMarshaller{},
		consumerIDMarshaller{},
		producerIDMarshaller{},
		brokerIDMarshaller{},
	}
}

// newTable registers all marshallers except the excluded type ids
func newTable(excluded ...byte) *Table {
	skip := make(map[byte]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	t := &Table{}
	for _, m := range marshallers() {
		id := m.DataStructureType()
		if skip[id] {
			continue
		}
		if got := m.CreateObject().DataStructureType(); got != id {
			panic(fmt.Sprintf("marshaller for type %d creates objects of type %d", id, got))
		}
		if t[id] != nil {
			panic(fmt.Sprintf("duplicate marshaller for type %d", id))
		}
		t[id] = m
	}
	return t
}

func init() {
	// version 1 predates consumer control and producer flow control
	tables[1] = newTable(commands.IDConsumerControl, commands.IDProducerAck)
	tables[2] = newTable()
}

// TableFor returns the marshaller table of a protocol version
func TableFor(version int) (*Table, error) {
	t, ok := tables[version]
	if !ok {
		return nil, common.Protocolf(common.ReasonUnsupportedVersion, "TableFor",
			"unsupported protocol version %d (supported: %v)", version, SupportedVersions())
	}
	return t, nil
}

// Lookup returns the marshaller for typeID in the given protocol version
func Lookup(version int, typeID byte) (Marshaller, error) {
	t, err := TableFor(version)
	if err != nil {
		return nil, err
	}
	return t.Lookup(typeID)
}

// SupportedVersions returns the protocol versions in ascending order
func SupportedVersions() []int {
	versions := make([]int, 0, len(tables))
	for v := range tables {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions
}
