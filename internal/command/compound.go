package command

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/mapforge/internal/document"
)

// TypeCompound is the registry name of CompoundCommand.
const TypeCompound = "CompoundCommand"

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Base
	label    string
	commands []Command
}

type compoundPayload struct {
	BasePayload
	Label    string         `json:"label,omitempty"`
	Commands []compoundItem `json:"commands"`
}

type compoundItem struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type compoundSaved struct {
	BasePayload
	Label    string  `json:"label,omitempty"`
	Commands []Saved `json:"commands"`
}

// NewCompoundCommand creates a compound command. Its selection snapshot is
// the one of the first child.
func NewCompoundCommand(label string, commands ...Command) *CompoundCommand {
	var selection []string
	if len(commands) > 0 {
		selection = commands[0].SelectionSet()
	}
	return &CompoundCommand{
		Base:     NewBase(selection),
		label:    label,
		commands: commands,
	}
}

// Commands returns the child commands.
func (c *CompoundCommand) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// Add appends a command.
func (c *CompoundCommand) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// IsEmpty reports whether there are no child commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.commands) == 0
}

// Name returns TypeCompound.
func (c *CompoundCommand) Name() string {
	return TypeCompound
}

// Description returns the label, or a summary of the children.
func (c *CompoundCommand) Description() string {
	if c.label != "" {
		return c.label
	}
	if len(c.commands) == 1 {
		return c.commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.commands))
}

// ClearSelection reports whether any child clears the selection.
func (c *CompoundCommand) ClearSelection() bool {
	for _, cmd := range c.commands {
		if cmd.ClearSelection() {
			return true
		}
	}
	return false
}

// Do runs all commands in order. If one fails, the ones already applied are
// undone.
func (c *CompoundCommand) Do(doc document.Document) error {
	for i, cmd := range c.commands {
		if err := cmd.Do(doc); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.commands[j].Undo(doc)
			}
			return fmt.Errorf("compound command %q step %d: %w", c.Description(), i, err)
		}
	}
	return nil
}

// Undo reverts all commands in reverse order.
func (c *CompoundCommand) Undo(doc document.Document) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(doc); err != nil {
			return fmt.Errorf("undo compound command %q step %d: %w", c.Description(), i, err)
		}
	}
	return nil
}

// Serialize returns the payload with the nested command envelopes.
func (c *CompoundCommand) Serialize() any {
	items := make([]compoundItem, 0, len(c.commands))
	for _, cmd := range c.commands {
		items = append(items, compoundItem{Type: cmd.Name(), Payload: cmd.Serialize()})
	}
	return compoundPayload{
		BasePayload: c.Payload(),
		Label:       c.label,
		Commands:    items,
	}
}

func decodeCompound(raw json.RawMessage, r *Registry) (*CompoundCommand, error) {
	var p compoundSaved
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	base, err := BaseFromPayload(p.BasePayload)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, len(p.Commands))
	for i, saved := range p.Commands {
		cmd, err := r.Create(saved)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return &CompoundCommand{Base: base, label: p.Label, commands: cmds}, nil
}
