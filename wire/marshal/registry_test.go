package marshal

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
)

// TestSupportedVersions tests the registered protocol versions
func TestSupportedVersions(t *testing.T) {
	if got := SupportedVersions(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Expected versions [1 2], got %v", got)
	}
	if _, err := TableFor(3); !errors.Is(err, common.ErrUnsupportedVersion) {
		t.Errorf("Expected unsupported version error, got %v", err)
	}
}

// TestLookup tests that every registered marshaller creates its own type
func TestLookup(t *testing.T) {
	for _, version := range SupportedVersions() {
		table, err := TableFor(version)
		if err != nil {
			t.Fatal(err)
		}
		for _, id := range table.Types() {
			m, err := Lookup(version, id)
			if err != nil {
				t.Fatalf("v%d: lookup of %d failed: %v", version, id, err)
			}
			if m.DataStructureType() != id {
				t.Errorf("v%d: marshaller for %d reports %d", version, id, m.DataStructureType())
			}
			if got := m.CreateObject().DataStructureType(); got != id {
				t.Errorf("v%d: marshaller for %d creates type %d", version, id, got)
			}
		}
	}
}

// TestVersionDifferences tests the types missing from version 1
func TestVersionDifferences(t *testing.T) {
	for _, id := range []byte{commands.IDConsumerControl, commands.IDProducerAck} {
		if _, err := Lookup(1, id); !errors.Is(err, common.ErrUnknownType) {
			t.Errorf("v1: type %d should be unknown, got %v", id, err)
		}
		if _, err := Lookup(2, id); err != nil {
			t.Errorf("v2: type %d should be known, got %v", id, err)
		}
	}

	v1, _ := TableFor(1)
	v2, _ := TableFor(2)
	if len(v2.Types())-len(v1.Types()) != 2 {
		t.Errorf("Expected v2 to have two more types than v1, got %d and %d",
			len(v1.Types()), len(v2.Types()))
	}
}

// TestLookupUnknown tests unassigned type ids
func TestLookupUnknown(t *testing.T) {
	for _, id := range []byte{commands.NullType, 1, 99, 255} {
		if _, err := Lookup(2, id); !errors.Is(err, common.ErrUnknownType) {
			t.Errorf("type %d: expected unknown type error, got %v", id, err)
		}
	}
}

// TestCastMismatch tests that a marshaller rejects objects of another type
func TestCastMismatch(t *testing.T) {
	m, err := Lookup(2, commands.IDMessagePull)
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.TightMarshal1(nil, &commands.KeepAliveInfo{}, NewBooleanStream())
	if common.KindOf(err) != common.ArgumentError {
		t.Errorf("Expected argument error, got %v", err)
	}
}

// TestIsNil tests typed nil detection
func TestIsNil(t *testing.T) {
	var id *commands.ConsumerID
	var dest commands.Destination
	if !IsNil(nil) || !IsNil(id) || asDS(dest) != nil || asDS(id) != nil {
		t.Error("nil values should be detected")
	}
	if IsNil(&commands.ConsumerID{}) {
		t.Error("non nil pointer reported as nil")
	}
}
