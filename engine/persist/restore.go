package persist

import (
	"fmt"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Overwrite applies a save document's plain data onto a freshly authored
// graph, in place. Behavior fields are never touched here; that is the
// reattachment pass's job. Container membership (which room or inventory
// holds which item) is rebuilt wholesale from the document: fresh instances
// are pulled by id, and ids the re-authored graph no longer produces are
// rebuilt from document data with default behavior.
func Overwrite(fresh *world.Game, doc *Document) error {
	if fresh.Name != doc.Game.Name {
		return fmt.Errorf("save is for %q, not %q", doc.Game.Name, fresh.Name)
	}

	items, npcs := indexGraph(fresh)

	fresh.Desc.Text = doc.Game.Description
	fresh.SetCompleted(doc.Game.Completed)

	overwriteCharacter(&fresh.Player.Character, nil, doc.Game.Player, items)

	ow := fresh.Overworld
	owDoc := doc.Game.Overworld
	ow.Name = owDoc.Name
	ow.Desc.Text = owDoc.Description

	regions := ow.Regions()
	if len(regions) != len(owDoc.Regions) {
		return fmt.Errorf("save has %d regions, game has %d", len(owDoc.Regions), len(regions))
	}
	for i, regionDoc := range owDoc.Regions {
		if err := overwriteRegion(regions[i], regionDoc, items, npcs); err != nil {
			return err
		}
	}
	if err := ow.SetCurrent(owDoc.Current); err != nil {
		return fmt.Errorf("restoring region cursor: %w", err)
	}
	return nil
}

// indexGraph collects every item and NPC in the fresh graph by id, regardless
// of container.
func indexGraph(g *world.Game) (map[string]*world.Item, map[string]*world.NPC) {
	items := map[string]*world.Item{}
	npcs := map[string]*world.NPC{}

	for _, it := range g.Player.Items {
		items[it.ID()] = it
	}
	for _, region := range g.Overworld.Regions() {
		for _, room := range region.Rooms() {
			for _, it := range room.Items {
				items[it.ID()] = it
			}
			for _, npc := range room.Characters {
				npcs[npc.ID()] = npc
				for _, it := range npc.Items {
					items[it.ID()] = it
				}
			}
		}
	}
	return items, npcs
}

func overwriteRegion(region *world.Region, doc RegionDoc, items map[string]*world.Item, npcs map[string]*world.NPC) error {
	if region.Name != doc.Name {
		return fmt.Errorf("save region %q does not match game region %q", doc.Name, region.Name)
	}
	region.Desc.Text = doc.Description

	rooms := region.Rooms()
	if len(rooms) != len(doc.Rooms) {
		return fmt.Errorf("save region %q has %d rooms, game has %d", doc.Name, len(doc.Rooms), len(rooms))
	}
	for i, roomDoc := range doc.Rooms {
		if err := overwriteRoom(region, rooms[i], roomDoc, items, npcs); err != nil {
			return err
		}
	}
	if err := region.SetCurrent(world.RoomHandle(doc.Current)); err != nil {
		return fmt.Errorf("restoring room cursor: %w", err)
	}
	return nil
}

func overwriteRoom(region *world.Region, room *world.Room, doc RoomDoc, items map[string]*world.Item, npcs map[string]*world.NPC) error {
	room.Name = doc.Name
	room.Desc.Text = doc.Description

	room.Items = nil
	for _, itemDoc := range doc.Items {
		room.Items = append(room.Items, materializeItem(itemDoc, items))
	}

	room.Characters = nil
	for _, charDoc := range doc.Characters {
		room.Characters = append(room.Characters, materializeNPC(charDoc, items, npcs))
	}

	for _, exitDoc := range doc.Exits {
		dir, ok := types.ParseDirection(exitDoc.Direction)
		if !ok {
			return fmt.Errorf("save room %q has unknown exit direction %q", doc.Name, exitDoc.Direction)
		}
		to := world.RoomHandle(exitDoc.To)
		if region.Room(to) == nil {
			return fmt.Errorf("save room %q exit %s points at missing room %d", doc.Name, dir, exitDoc.To)
		}
		exit := room.Exits[dir]
		if exit == nil {
			exit = &world.Exit{Direction: dir}
			room.Exits[dir] = exit
		}
		exit.Locked = exitDoc.Locked
		exit.Visible = exitDoc.Visible
		exit.To = to
	}
	return nil
}

func overwriteCharacter(c *world.Character, conv *world.Conversation, doc CharacterDoc, items map[string]*world.Item) {
	c.SetID(doc.ID)
	c.Name = doc.Name
	c.Desc.Text = doc.Description
	c.Visible = doc.Visible
	c.Alive = doc.Alive
	overwriteCommands(c.Commands, doc.Commands)

	c.Items = nil
	for _, itemDoc := range doc.Items {
		c.Items = append(c.Items, materializeItem(itemDoc, items))
	}

	if conv != nil && doc.Conversation != nil {
		conv.Cursor = doc.Conversation.Cursor
		conv.RepeatLast = doc.Conversation.RepeatLast
	}
}

// materializeItem resolves an item document to a fresh graph instance by id,
// overwriting its plain data; ids with no fresh counterpart are rebuilt from
// the document.
func materializeItem(doc ItemDoc, items map[string]*world.Item) *world.Item {
	it, ok := items[doc.ID]
	if !ok {
		it = world.RebuildItem(doc.ID, doc.Name, doc.Description, doc.Visible, doc.Takeable, doc.Morph)
		for _, cmdDoc := range doc.Commands {
			it.AddCommand(world.RebuildCommand(cmdDoc.Word, cmdDoc.Description, cmdDoc.Visible))
		}
		return it
	}
	it.Name = doc.Name
	it.Desc.Text = doc.Description
	it.Visible = doc.Visible
	it.Takeable = doc.Takeable
	it.MorphTag = doc.Morph
	overwriteCommands(it.Commands, doc.Commands)
	return it
}

func materializeNPC(doc CharacterDoc, items map[string]*world.Item, npcs map[string]*world.NPC) *world.NPC {
	npc, ok := npcs[doc.ID]
	if !ok {
		npc = world.RebuildNPC(doc.ID, doc.Name, doc.Description, doc.Visible, doc.Alive)
		for _, itemDoc := range doc.Items {
			npc.Items = append(npc.Items, materializeItem(itemDoc, items))
		}
		return npc
	}
	overwriteCharacter(&npc.Character, npc.Dialogue, doc, items)
	return npc
}

// overwriteCommands restores the persisted visibility of commands, matched by
// word. Command words and descriptions are authored data and stay as built.
func overwriteCommands(cmds []*world.Command, docs []CommandDoc) {
	for _, cmdDoc := range docs {
		for _, cmd := range cmds {
			if cmd.Word == cmdDoc.Word {
				cmd.Visible = cmdDoc.Visible
				break
			}
		}
	}
}
