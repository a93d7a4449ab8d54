package commands

import (
	"testing"
)

// TestParseDestination tests destination URLs in both directions
func TestParseDestination(t *testing.T) {
	tests := []struct {
		url      string
		typeID   byte
		name     string
		topic    bool
		temp     bool
		hasError bool
	}{
		{"queue://orders", IDActiveMQQueue, "orders", false, false, false},
		{"topic://prices.eu", IDActiveMQTopic, "prices.eu", true, false, false},
		{"temp-queue://ID:c-1:1", IDActiveMQTempQueue, "ID:c-1:1", false, true, false},
		{"temp-topic://x", IDActiveMQTempTopic, "x", true, true, false},
		{"orders", 0, "", false, false, true},
		{"queue://", 0, "", false, false, true},
		{"keep-alive://x", 0, "", false, false, true},
		{"mailbox://x", 0, "", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			d, err := ParseDestination(tt.url)
			if tt.hasError {
				if err == nil {
					t.Errorf("expected an error, got %v", d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDestination failed: %v", err)
			}
			if d.DataStructureType() != tt.typeID || d.GetPhysicalName() != tt.name {
				t.Errorf("expected %d/%s, got %d/%s", tt.typeID, tt.name, d.DataStructureType(), d.GetPhysicalName())
			}
			if d.IsTopic() != tt.topic || d.IsTemporary() != tt.temp {
				t.Errorf("unexpected topic/temporary flags for %s", tt.url)
			}
			if DestinationURL(d) != tt.url {
				t.Errorf("expected URL %s, got %s", tt.url, DestinationURL(d))
			}
		})
	}
}

// TestParseIDs tests consumer and producer id parsing
func TestParseIDs(t *testing.T) {
	c, err := ParseConsumerID("ID:host-61616-1:3:9")
	if err != nil {
		t.Fatalf("ParseConsumerID failed: %v", err)
	}
	if c.ConnectionID != "ID:host-61616-1" || c.SessionID != 3 || c.Value != 9 {
		t.Errorf("unexpected consumer id %+v", c)
	}
	if c.String() != "ID:host-61616-1:3:9" {
		t.Errorf("unexpected string %s", c.String())
	}

	p, err := ParseProducerID("conn:1:2")
	if err != nil {
		t.Fatalf("ParseProducerID failed: %v", err)
	}
	if p.ConnectionID != "conn" || p.SessionID != 1 || p.Value != 2 {
		t.Errorf("unexpected producer id %+v", p)
	}

	for _, bad := range []string{"", "conn", "conn:1", ":1:2", "conn:x:2", "conn:1:y"} {
		if _, err := ParseConsumerID(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

// TestCacheKeys tests that equal values share a key and different types do not collide
func TestCacheKeys(t *testing.T) {
	q1 := &ActiveMQQueue{ActiveMQDestination{PhysicalName: "a"}}
	q2 := &ActiveMQQueue{ActiveMQDestination{PhysicalName: "a"}}
	topic := &ActiveMQTopic{ActiveMQDestination{PhysicalName: "a"}}

	if q1.CacheKey() != q2.CacheKey() {
		t.Errorf("equal queues must share a key")
	}
	if q1.CacheKey() == topic.CacheKey() {
		t.Errorf("queue and topic with the same name must not share a key")
	}

	var _ Keyed = &ConsumerID{}
	var _ Keyed = &ProducerID{}
	var _ Keyed = &ConnectionID{}
	var _ Keyed = &SessionID{}
	var _ Keyed = &BrokerID{}
}

// TestTypeNames tests that every type id has a unique name
func TestTypeNames(t *testing.T) {
	seen := map[string]byte{}
	for id, name := range typeNames {
		if other, ok := seen[name]; ok {
			t.Errorf("name %s used by %d and %d", name, id, other)
		}
		seen[name] = id
		if back, ok := TypeByName(name); !ok || back != id {
			t.Errorf("TypeByName(%s) = %d, expected %d", name, back, id)
		}
	}
	if TypeName(250) != "unknown" {
		t.Errorf("expected unknown for an unassigned id")
	}
}

// TestCommandInterfaces tests the command and response families
func TestCommandInterfaces(t *testing.T) {
	cmds := []Command{
		&KeepAliveInfo{}, &ShutdownInfo{}, &RemoveInfo{}, &ControlCommand{}, &FlushCommand{},
		&ConsumerControl{}, &ProducerAck{}, &MessagePull{}, &MessageDispatchNotification{},
	}
	for _, c := range cmds {
		if c.IsResponse() {
			t.Errorf("%s must not be a response", TypeName(c.DataStructureType()))
		}
		c.Base().CommandID = 5
		if c.Base().CommandID != 5 {
			t.Errorf("Base does not address the embedded fields of %T", c)
		}
	}

	responses := []ResponseCommand{&Response{}, &DataResponse{}, &IntegerResponse{}}
	for _, r := range responses {
		if !r.IsResponse() {
			t.Errorf("%T must be a response", r)
		}
	}

	if Describe(nil) != "<nil>" {
		t.Errorf("unexpected description of nil: %s", Describe(nil))
	}
}
