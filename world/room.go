package world

import "github.com/nathoo/wayfarer/types"

// Exit is a one-way edge from a room to another room in the same region.
// Exits hold room handles rather than pointers, so the Room→Exit→Room cycle
// never becomes an object cycle.
type Exit struct {
	Direction types.Direction
	Locked    bool
	Visible   bool
	To        RoomHandle
}

// Usable reports whether the player can pass through the exit.
func (e *Exit) Usable() bool {
	return e != nil && !e.Locked
}

// Room is one location: descriptive data plus the items, characters, custom
// commands and exits it holds.
type Room struct {
	Name       string
	Desc       Description
	Items      []*Item
	Characters []*NPC
	Commands   []*Command
	Exits      map[types.Direction]*Exit

	// region qualifies the room's reattachment key; set when the room is
	// added to its owning region.
	region string
}

// NewRoom builds an empty room.
func NewRoom(name string, desc Description) *Room {
	return &Room{
		Name:  name,
		Desc:  desc,
		Exits: map[types.Direction]*Exit{},
	}
}

// TargetName implements Target.
func (r *Room) TargetName() string { return r.Name }

// AddItem appends items to the room.
func (r *Room) AddItem(items ...*Item) {
	r.Items = append(r.Items, items...)
}

// RemoveItem removes the exact item instance from the room. Reports whether it
// was present.
func (r *Room) RemoveItem(item *Item) bool {
	for i, it := range r.Items {
		if it == item {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemNamed returns the first room item whose name matches, or nil.
func (r *Room) ItemNamed(name string) *Item {
	for _, it := range r.Items {
		if it.NameMatches(name) {
			return it
		}
	}
	return nil
}

// TakeableItems returns the room's takeable items.
func (r *Room) TakeableItems() []*Item {
	var out []*Item
	for _, it := range r.Items {
		if it.Takeable {
			out = append(out, it)
		}
	}
	return out
}

// AddCharacter appends characters to the room.
func (r *Room) AddCharacter(npcs ...*NPC) {
	r.Characters = append(r.Characters, npcs...)
}

// RemoveCharacter removes the exact character instance from the room. Reports
// whether it was present.
func (r *Room) RemoveCharacter(npc *NPC) bool {
	for i, c := range r.Characters {
		if c == npc {
			r.Characters = append(r.Characters[:i], r.Characters[i+1:]...)
			return true
		}
	}
	return false
}

// CharacterNamed returns the first character whose name matches, or nil.
// Dead characters still match; callers decide whether that matters.
func (r *Room) CharacterNamed(name string) *NPC {
	for _, c := range r.Characters {
		if c.NameMatches(name) {
			return c
		}
	}
	return nil
}

// LivingVisibleCharacters returns the characters a player could talk to.
func (r *Room) LivingVisibleCharacters() []*NPC {
	var out []*NPC
	for _, c := range r.Characters {
		if c.Alive && c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// AddCommand registers a custom command on the room itself.
func (r *Room) AddCommand(cmd *Command) {
	r.Commands = append(r.Commands, cmd)
}

// Exit returns the exit in the given direction, or nil.
func (r *Room) Exit(d types.Direction) *Exit {
	return r.Exits[d]
}
