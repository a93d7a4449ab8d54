package commands

import (
	"fmt"
	"strings"
)

// Destination is implemented by the four concrete destination types
type Destination interface {
	Keyed
	GetPhysicalName() string
	IsTemporary() bool
	IsTopic() bool
}

// ActiveMQDestination holds the fields shared by all destinations
type ActiveMQDestination struct {
	PhysicalName string `json:"physicalName"`
}

func (d *ActiveMQDestination) GetPhysicalName() string { return d.PhysicalName }

func (d *ActiveMQDestination) SetPhysicalName(name string) { d.PhysicalName = name }

// --------------------------------------------------------------------------
// Concrete destinations
// --------------------------------------------------------------------------

type ActiveMQQueue struct {
	ActiveMQDestination
}

func (d *ActiveMQQueue) DataStructureType() byte { return IDActiveMQQueue }
func (d *ActiveMQQueue) CacheKey() string        { return destinationKey(d) }
func (d *ActiveMQQueue) IsTemporary() bool       { return false }
func (d *ActiveMQQueue) IsTopic() bool           { return false }

type ActiveMQTopic struct {
	ActiveMQDestination
}

func (d *ActiveMQTopic) DataStructureType() byte { return IDActiveMQTopic }
func (d *ActiveMQTopic) CacheKey() string        { return destinationKey(d) }
func (d *ActiveMQTopic) IsTemporary() bool       { return false }
func (d *ActiveMQTopic) IsTopic() bool           { return true }

type ActiveMQTempQueue struct {
	ActiveMQDestination
}

func (d *ActiveMQTempQueue) DataStructureType() byte { return IDActiveMQTempQueue }
func (d *ActiveMQTempQueue) CacheKey() string        { return destinationKey(d) }
func (d *ActiveMQTempQueue) IsTemporary() bool       { return true }
func (d *ActiveMQTempQueue) IsTopic() bool           { return false }

type ActiveMQTempTopic struct {
	ActiveMQDestination
}

func (d *ActiveMQTempTopic) DataStructureType() byte { return IDActiveMQTempTopic }
func (d *ActiveMQTempTopic) CacheKey() string        { return destinationKey(d) }
func (d *ActiveMQTempTopic) IsTemporary() bool       { return true }
func (d *ActiveMQTempTopic) IsTopic() bool           { return true }

// --------------------------------------------------------------------------
// Factory
// --------------------------------------------------------------------------

// NewDestination creates the destination for a destination type id
func NewDestination(typeID byte, physicalName string) (Destination, error) {
	base := ActiveMQDestination{PhysicalName: physicalName}
	switch typeID {
	case IDActiveMQQueue:
		return &ActiveMQQueue{base}, nil
	case IDActiveMQTopic:
		return &ActiveMQTopic{base}, nil
	case IDActiveMQTempQueue:
		return &ActiveMQTempQueue{base}, nil
	case IDActiveMQTempTopic:
		return &ActiveMQTempTopic{base}, nil
	default:
		return nil, fmt.Errorf("type %d is not a destination", typeID)
	}
}

// ParseDestination parses "<kind>://<name>" where kind is one of
// queue, topic, temp-queue, temp-topic
func ParseDestination(s string) (Destination, error) {
	kind, name, ok := strings.Cut(s, "://")
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid destination %q (expected kind://name)", s)
	}
	typeID, ok := TypeByName(kind)
	if !ok {
		return nil, fmt.Errorf("invalid destination kind %q", kind)
	}
	return NewDestination(typeID, name)
}

// DestinationURL is the inverse of ParseDestination
func DestinationURL(d Destination) string {
	return TypeName(d.DataStructureType()) + "://" + d.GetPhysicalName()
}

func destinationKey(d Destination) string {
	return DestinationURL(d)
}
