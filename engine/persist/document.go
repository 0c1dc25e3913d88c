// Package persist implements the save/restore side of the engine: the plain
// data save document, the codec that frames it on disk, the slot store with
// its SQLite index, and the single background worker the turn loop hands
// persistence work to.
package persist

import (
	"time"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Document is the serialized form of one play session. It mirrors the world
// graph's structure but carries plain data only: names, text, flags,
// positions, cursors. Behavior never enters the document; it is reattached
// after a load.
type Document struct {
	Game GameDoc `yaml:"game"`
}

// GameDoc is the document root. Its name must match the live game's name for
// a load to proceed.
type GameDoc struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Session     string       `yaml:"session"`
	SavedAt     time.Time    `yaml:"saved_at"`
	Turns       int          `yaml:"turns"`
	Completed   bool         `yaml:"completed"`
	Player      CharacterDoc `yaml:"player"`
	Overworld   OverworldDoc `yaml:"overworld"`
}

// CharacterDoc holds a character's plain data. Conversation is set for NPCs
// that have one.
type CharacterDoc struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description"`
	Visible      bool             `yaml:"visible"`
	Alive        bool             `yaml:"alive"`
	Items        []ItemDoc        `yaml:"items,omitempty"`
	Commands     []CommandDoc     `yaml:"commands,omitempty"`
	Conversation *ConversationDoc `yaml:"conversation,omitempty"`
}

// ItemDoc holds an item's plain data.
type ItemDoc struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Visible     bool         `yaml:"visible"`
	Takeable    bool         `yaml:"takeable"`
	Morph       string       `yaml:"morph,omitempty"`
	Commands    []CommandDoc `yaml:"commands,omitempty"`
}

// CommandDoc holds a custom command's plain data.
type CommandDoc struct {
	Word        string `yaml:"word"`
	Description string `yaml:"description"`
	Visible     bool   `yaml:"visible"`
}

// ConversationDoc holds a conversation's cursor state.
type ConversationDoc struct {
	Cursor     int  `yaml:"cursor"`
	RepeatLast bool `yaml:"repeat_last"`
}

// ExitDoc holds an exit's plain data. To is the destination room handle
// within the same region.
type ExitDoc struct {
	Direction string `yaml:"direction"`
	Locked    bool   `yaml:"locked"`
	Visible   bool   `yaml:"visible"`
	To        int    `yaml:"to"`
}

// RoomDoc holds a room's plain data and contents.
type RoomDoc struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Items       []ItemDoc      `yaml:"items,omitempty"`
	Characters  []CharacterDoc `yaml:"characters,omitempty"`
	Exits       []ExitDoc      `yaml:"exits,omitempty"`
}

// RegionDoc holds a region's rooms (in arena order) and its current-room
// cursor.
type RegionDoc struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Current     int       `yaml:"current"`
	Rooms       []RoomDoc `yaml:"rooms"`
}

// OverworldDoc holds the regions and the current-region cursor.
type OverworldDoc struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Current     int         `yaml:"current"`
	Regions     []RegionDoc `yaml:"regions"`
}

// Capture walks the live graph and produces its save document.
func Capture(g *world.Game, session string, turns int) *Document {
	doc := &Document{
		Game: GameDoc{
			Name:        g.Name,
			Description: g.Desc.Text,
			Session:     session,
			SavedAt:     time.Now().UTC(),
			Turns:       turns,
			Completed:   g.Completed(),
			Player:      captureCharacter(&g.Player.Character, nil),
			Overworld:   captureOverworld(g.Overworld),
		},
	}
	return doc
}

func captureOverworld(o *world.Overworld) OverworldDoc {
	doc := OverworldDoc{
		Name:        o.Name,
		Description: o.Desc.Text,
		Current:     o.CurrentIndex(),
	}
	for _, region := range o.Regions() {
		doc.Regions = append(doc.Regions, captureRegion(region))
	}
	return doc
}

func captureRegion(r *world.Region) RegionDoc {
	doc := RegionDoc{
		Name:        r.Name,
		Description: r.Desc.Text,
		Current:     int(r.CurrentHandle()),
	}
	for _, room := range r.Rooms() {
		doc.Rooms = append(doc.Rooms, captureRoom(room))
	}
	return doc
}

func captureRoom(room *world.Room) RoomDoc {
	doc := RoomDoc{
		Name:        room.Name,
		Description: room.Desc.Text,
	}
	for _, it := range room.Items {
		doc.Items = append(doc.Items, captureItem(it))
	}
	for _, npc := range room.Characters {
		doc.Characters = append(doc.Characters, captureCharacter(&npc.Character, npc.Dialogue))
	}
	for _, d := range types.Directions {
		if exit, ok := room.Exits[d]; ok {
			doc.Exits = append(doc.Exits, ExitDoc{
				Direction: d.String(),
				Locked:    exit.Locked,
				Visible:   exit.Visible,
				To:        int(exit.To),
			})
		}
	}
	return doc
}

func captureCharacter(c *world.Character, conv *world.Conversation) CharacterDoc {
	doc := CharacterDoc{
		ID:          c.ID(),
		Name:        c.Name,
		Description: c.Desc.Text,
		Visible:     c.Visible,
		Alive:       c.Alive,
		Commands:    captureCommands(c.Commands),
	}
	for _, it := range c.Items {
		doc.Items = append(doc.Items, captureItem(it))
	}
	if conv != nil {
		doc.Conversation = &ConversationDoc{Cursor: conv.Cursor, RepeatLast: conv.RepeatLast}
	}
	return doc
}

func captureItem(it *world.Item) ItemDoc {
	return ItemDoc{
		ID:          it.ID(),
		Name:        it.Name,
		Description: it.Desc.Text,
		Visible:     it.Visible,
		Takeable:    it.Takeable,
		Morph:       it.MorphTag,
		Commands:    captureCommands(it.Commands),
	}
}

func captureCommands(cmds []*world.Command) []CommandDoc {
	var out []CommandDoc
	for _, c := range cmds {
		out = append(out, CommandDoc{Word: c.Word, Description: c.Description, Visible: c.Visible})
	}
	return out
}
