package commands

// PartialCommand is one fragment of a command that was too large for a
// single frame. It is a plain data structure, not a Command.
type PartialCommand struct {
	CommandID int32  `json:"commandId"`
	Data      []byte `json:"data,omitempty"`
}

func (c *PartialCommand) DataStructureType() byte { return IDPartialCommand }

// Fragment returns the fragment fields, also for LastPartialCommand
func (c *PartialCommand) Fragment() *PartialCommand { return c }

// LastPartialCommand marks the final fragment
type LastPartialCommand struct {
	PartialCommand
}

func (c *LastPartialCommand) DataStructureType() byte { return IDLastPartialCommand }
