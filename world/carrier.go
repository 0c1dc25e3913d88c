package world

// Carrier is implemented by every node that holds author-supplied behavior.
// BehaviorKey derives a content identity that is stable across two independent
// authoring runs; AdoptBehavior copies the behavior fields (never plain data)
// from a node of the same kind.
type Carrier interface {
	BehaviorKey() string
	AdoptBehavior(from Carrier) bool
}

// Carriers walks the whole graph and returns every behavior-bearing node,
// root first. The traversal builds a fresh slice and never mutates the graph.
func (g *Game) Carriers() []Carrier {
	out := []Carrier{g}
	if g.Player != nil {
		out = g.Player.appendCarriers(out)
	}
	if g.Overworld != nil {
		out = g.Overworld.appendCarriers(out)
	}
	return out
}

// BehaviorKey for the root object is its name.
func (g *Game) BehaviorKey() string { return "game:" + g.Name }

// AdoptBehavior copies the completion predicate and the conditional
// description.
func (g *Game) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Game)
	if !ok {
		return false
	}
	g.Complete = o.Complete
	g.Desc.Variant = o.Desc.Variant
	return true
}

// BehaviorKey for any examinable object is its generated id.
func (c *Character) BehaviorKey() string { return "char:" + c.id }

func (c *Character) adoptCharacterBehavior(o *Character) {
	c.Examine = o.Examine
	c.Desc.Variant = o.Desc.Variant
	c.Interact = o.Interact
}

// AdoptBehavior copies the player's examination and interaction behavior.
func (p *Player) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Player)
	if !ok {
		return false
	}
	p.adoptCharacterBehavior(&o.Character)
	return true
}

func (p *Player) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, p)
	for _, cmd := range p.Commands {
		dst = append(dst, cmd)
	}
	for _, it := range p.Items {
		dst = it.appendCarriers(dst)
	}
	return dst
}

// AdoptBehavior copies the NPC's examination and interaction behavior plus
// the per-line conversation side effects (matched by position).
func (n *NPC) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*NPC)
	if !ok {
		return false
	}
	n.adoptCharacterBehavior(&o.Character)
	if n.Dialogue != nil && o.Dialogue != nil {
		for i := range n.Dialogue.Lines {
			if i >= len(o.Dialogue.Lines) {
				break
			}
			n.Dialogue.Lines[i].OnSpoken = o.Dialogue.Lines[i].OnSpoken
		}
	}
	return true
}

func (n *NPC) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, n)
	for _, cmd := range n.Commands {
		dst = append(dst, cmd)
	}
	for _, it := range n.Items {
		dst = it.appendCarriers(dst)
	}
	return dst
}

// BehaviorKey for an item is its generated id.
func (i *Item) BehaviorKey() string { return "item:" + i.id }

// AdoptBehavior copies the item's examination and interaction behavior.
func (i *Item) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Item)
	if !ok {
		return false
	}
	i.Examine = o.Examine
	i.Desc.Variant = o.Desc.Variant
	i.Interact = o.Interact
	return true
}

func (i *Item) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, i)
	for _, cmd := range i.Commands {
		dst = append(dst, cmd)
	}
	return dst
}

// BehaviorKey for a command is its word plus its description.
func (c *Command) BehaviorKey() string { return "cmd:" + c.Word + "|" + c.Description }

// AdoptBehavior copies the command's action.
func (c *Command) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Command)
	if !ok {
		return false
	}
	c.Action = o.Action
	return true
}

// BehaviorKey for a room qualifies its name with its owning region, since room
// names only need to be unique per region.
func (r *Room) BehaviorKey() string { return "room:" + r.region + "/" + r.Name }

// AdoptBehavior copies the room's conditional description.
func (r *Room) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Room)
	if !ok {
		return false
	}
	r.Desc.Variant = o.Desc.Variant
	return true
}

func (r *Room) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, r)
	for _, cmd := range r.Commands {
		dst = append(dst, cmd)
	}
	for _, it := range r.Items {
		dst = it.appendCarriers(dst)
	}
	for _, n := range r.Characters {
		dst = n.appendCarriers(dst)
	}
	return dst
}

// BehaviorKey for a region is its name.
func (r *Region) BehaviorKey() string { return "region:" + r.Name }

// AdoptBehavior copies the region's conditional description.
func (r *Region) AdoptBehavior(from Carrier) bool {
	o, ok := from.(*Region)
	if !ok {
		return false
	}
	r.Desc.Variant = o.Desc.Variant
	return true
}

func (r *Region) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, r)
	for _, room := range r.rooms {
		dst = room.appendCarriers(dst)
	}
	return dst
}

// BehaviorKey for the overworld is its name.
func (o *Overworld) BehaviorKey() string { return "overworld:" + o.Name }

// AdoptBehavior copies the overworld's conditional description.
func (o *Overworld) AdoptBehavior(from Carrier) bool {
	w, ok := from.(*Overworld)
	if !ok {
		return false
	}
	o.Desc.Variant = w.Desc.Variant
	return true
}

func (o *Overworld) appendCarriers(dst []Carrier) []Carrier {
	dst = append(dst, o)
	for _, r := range o.regions {
		dst = r.appendCarriers(dst)
	}
	return dst
}
