package world

import (
	"strings"

	"github.com/nathoo/wayfarer/types"
)

// InteractionResult is what interaction behavior hands back to the engine.
// Effect selects the mutation the effect applier performs; Item is the item
// the effect acts on; Description is the player-facing text.
type InteractionResult struct {
	Effect      types.Effect
	Item        *Item
	Description string
}

// InteractFunc is author behavior run when an item is used on a target.
// The first argument is the item being used, the second the target it is
// used on.
type InteractFunc func(item *Item, target Target) InteractionResult

// ActionFunc is author behavior behind a custom command.
type ActionFunc func() InteractionResult

// Target is any world node a USE command can act on.
type Target interface {
	TargetName() string
}

// Reactor is a target that carries interaction behavior.
type Reactor interface {
	Target
	ReactTo(item *Item) InteractionResult
}

// Use dispatches an item onto a target: the target's interaction behavior
// decides what happens. Targets without behavior shrug the item off.
func Use(item *Item, target Target) InteractionResult {
	if r, ok := target.(Reactor); ok {
		return r.ReactTo(item)
	}
	return InteractionResult{Effect: types.NoEffect, Description: "Nothing happens."}
}

// Command is a custom command registered on a world node: a command word, a
// description for help listings, and the action behavior behind it.
type Command struct {
	Word        string
	Description string
	Visible     bool
	Action      ActionFunc
}

// NewCommand builds a player-visible custom command.
func NewCommand(word, description string, action ActionFunc) *Command {
	return &Command{Word: word, Description: description, Visible: true, Action: action}
}

// Matches reports whether the command word equals the verb, case-insensitively.
func (c *Command) Matches(verb string) bool {
	return strings.EqualFold(c.Word, verb)
}

// Run invokes the command's action. A command without an action is a no-op.
func (c *Command) Run() InteractionResult {
	if c.Action == nil {
		return InteractionResult{Effect: types.NoEffect}
	}
	return c.Action()
}

// Item is a world object a player can examine, carry and use.
type Item struct {
	Examinable
	Takeable bool
	MorphTag string
	Interact InteractFunc
	Commands []*Command
}

// NewItem builds an item with a generated id and default behavior.
func NewItem(gen *IDGenerator, name string, desc Description, visible, takeable bool) *Item {
	return &Item{
		Examinable: NewExaminable(gen, name, desc, visible),
		Takeable:   takeable,
	}
}

// NewMorphForm builds a replacement form for Morph. It deliberately does not
// touch the id generator: a morph keeps the original item's id, so runtime
// morphs never perturb the authored id sequence.
func NewMorphForm(name string, desc Description, takeable bool, tag string) *Item {
	return &Item{
		Examinable: Examinable{
			Name:    name,
			Desc:    desc,
			Visible: true,
			Examine: DescribeSelf,
		},
		Takeable: takeable,
		MorphTag: tag,
	}
}

// Morph replaces the item's identity and behavior in place with the given
// form, preserving its container slot and its generated id.
func (i *Item) Morph(into *Item) {
	keep := i.id
	i.Examinable = into.Examinable
	i.id = keep
	i.Takeable = into.Takeable
	i.MorphTag = into.MorphTag
	i.Interact = into.Interact
	i.Commands = into.Commands
}

// TargetName implements Target.
func (i *Item) TargetName() string { return i.Name }

// ReactTo implements Reactor: dispatch to the item's interaction behavior.
func (i *Item) ReactTo(used *Item) InteractionResult {
	if i.Interact == nil {
		return InteractionResult{Effect: types.NoEffect, Description: "Nothing happens."}
	}
	return i.Interact(used, i)
}

// AddCommand registers a custom command on the item.
func (i *Item) AddCommand(c *Command) {
	i.Commands = append(i.Commands, c)
}
