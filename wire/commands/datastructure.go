package commands

import "fmt"

// --------------------------------------------------------------------------
// Interfaces
// --------------------------------------------------------------------------

// DataStructure is any object that can be put on the wire.
// The type id is constant per concrete type and selects the marshaller.
type DataStructure interface {
	DataStructureType() byte
}

// Command is a DataStructure that travels as a top level frame and
// carries the common command fields.
type Command interface {
	DataStructure
	// Base gives access to the fields shared by all commands
	Base() *BaseCommand
	// IsResponse reports whether the command answers an earlier request
	IsResponse() bool
}

// Keyed is implemented by data structures that are referenced from many
// commands (ids, destinations). Two values with the same key are the same
// object as far as the reference cache is concerned.
type Keyed interface {
	DataStructure
	CacheKey() string
}

// --------------------------------------------------------------------------
// BaseCommand
// --------------------------------------------------------------------------

// BaseCommand holds the fields every command starts with on the wire
type BaseCommand struct {
	CommandID        int32 `json:"commandId"`
	ResponseRequired bool  `json:"responseRequired,omitempty"`
}

// Base returns the command itself so embedding types satisfy Command
func (c *BaseCommand) Base() *BaseCommand {
	return c
}

// IsResponse is false for all commands except the response family
func (c *BaseCommand) IsResponse() bool {
	return false
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// Describe returns a short human readable description of a data structure
func Describe(ds DataStructure) string {
	if ds == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%d) %+v", TypeName(ds.DataStructureType()), ds.DataStructureType(), ds)
}
