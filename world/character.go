package world

import "github.com/nathoo/wayfarer/types"

// Line is one conversation line: the spoken text plus an optional side effect
// that fires the first time the line is spoken.
type Line struct {
	Text     string
	OnSpoken func()
}

// Conversation is an NPC's ordered script: a cursor over lines, optionally
// repeating the last line once the script is exhausted.
type Conversation struct {
	Lines      []Line
	Cursor     int
	RepeatLast bool
}

// NewConversation builds a conversation over the given lines.
func NewConversation(repeatLast bool, lines ...Line) *Conversation {
	return &Conversation{Lines: lines, RepeatLast: repeatLast}
}

// Next returns the next line and advances the cursor, firing the line's side
// effect on first delivery. Once exhausted it repeats the final line (without
// re-firing its effect) when RepeatLast is set, else reports false.
func (c *Conversation) Next() (string, bool) {
	if c == nil || len(c.Lines) == 0 {
		return "", false
	}
	if c.Cursor >= len(c.Lines) {
		if c.RepeatLast {
			return c.Lines[len(c.Lines)-1].Text, true
		}
		return "", false
	}
	line := c.Lines[c.Cursor]
	c.Cursor++
	if line.OnSpoken != nil {
		line.OnSpoken()
	}
	return line.Text, true
}

// Character is the shared base of the player and NPCs: an examinable with an
// inventory, a life flag, interaction behavior and custom commands.
type Character struct {
	Examinable
	Alive    bool
	Items    []*Item
	Interact InteractFunc
	Commands []*Command
}

func newCharacter(gen *IDGenerator, name string, desc Description, visible bool) Character {
	return Character{
		Examinable: NewExaminable(gen, name, desc, visible),
		Alive:      true,
	}
}

// TargetName implements Target.
func (c *Character) TargetName() string { return c.Name }

// ReactTo implements Reactor: dispatch to the character's interaction behavior.
func (c *Character) ReactTo(used *Item) InteractionResult {
	if c.Interact == nil {
		return InteractionResult{Effect: types.NoEffect, Description: "Nothing happens."}
	}
	return c.Interact(used, c)
}

// AddItem appends an item to the character's inventory.
func (c *Character) AddItem(items ...*Item) {
	c.Items = append(c.Items, items...)
}

// RemoveItem removes the exact item instance from the inventory. Reports
// whether it was present.
func (c *Character) RemoveItem(item *Item) bool {
	for i, it := range c.Items {
		if it == item {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemNamed returns the first inventory item whose name matches, or nil.
func (c *Character) ItemNamed(name string) *Item {
	for _, it := range c.Items {
		if it.NameMatches(name) {
			return it
		}
	}
	return nil
}

// AddCommand registers a custom command on the character.
func (c *Character) AddCommand(cmd *Command) {
	c.Commands = append(c.Commands, cmd)
}

// Player is the playable character.
type Player struct {
	Character
}

// NewPlayer builds the player, alive and visible.
func NewPlayer(gen *IDGenerator, name string, desc Description) *Player {
	return &Player{Character: newCharacter(gen, name, desc, true)}
}

// NPC is a non-playable character with a conversation.
type NPC struct {
	Character
	Dialogue *Conversation
}

// NewNPC builds a non-playable character.
func NewNPC(gen *IDGenerator, name string, desc Description, visible bool) *NPC {
	return &NPC{Character: newCharacter(gen, name, desc, visible)}
}

// GiveItem transactionally moves an item from one character's inventory to
// another's. The item is never duplicated; if the giver does not hold it,
// nothing moves.
func GiveItem(from, to *Character, item *Item) bool {
	if !from.RemoveItem(item) {
		return false
	}
	to.AddItem(item)
	return true
}
