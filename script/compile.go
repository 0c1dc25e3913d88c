package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// compile turns the collected definitions into a live world graph. Everything
// runs in declaration order: the player's id is generated first, then items
// and NPCs in the order their files declared them, which is what keeps the id
// sequence identical across builds.
func compile(L *lua.LState, coll *collector) (*world.Game, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game definition")
	}
	registerCtxType(L)

	gen := world.NewIDGenerator()

	playerName, playerDesc := "You", "An adventurer far from home."
	if coll.player != nil {
		playerName = tableString(coll.player, "name", playerName)
		playerDesc = tableString(coll.player, "description", playerDesc)
	}
	player := world.NewPlayer(gen, playerName, world.StaticDescription(playerDesc))

	gameName := tableString(coll.game, "name", "")
	if gameName == "" {
		return nil, fmt.Errorf("Game definition has no name")
	}
	overworld := world.NewOverworld(
		tableString(coll.game, "overworld", gameName),
		world.StaticDescription(tableString(coll.game, "overworld_description", "")),
	)
	g := world.NewGame(gameName, world.StaticDescription(tableString(coll.game, "description", "")), player, overworld)

	ref := &worldRef{game: g}
	ctx := newWorldCtx(L, ref)
	g.Rebind = func(ng *world.Game) { ref.game = ng }

	if fn := tableFunc(coll.game, "complete"); fn != nil {
		g.Complete = wrapComplete(L, fn, ctx)
	}
	if coll.player != nil {
		if err := compileCommands(L, coll.player, ctx, player.AddCommand); err != nil {
			return nil, fmt.Errorf("player: %w", err)
		}
	}

	regions := map[string]*world.Region{}
	for _, raw := range coll.regions {
		if _, dup := regions[raw.name]; dup {
			return nil, fmt.Errorf("duplicate region %q", raw.name)
		}
		region := world.NewRegion(
			raw.name,
			compileDescription(L, raw.table, ctx),
			tableInt(raw.table, "width", 1),
			tableInt(raw.table, "height", 1),
		)
		regions[raw.name] = region
		overworld.AddRegion(region)
	}

	type placedRoom struct {
		region *world.Region
		handle world.RoomHandle
		room   *world.Room
	}
	rooms := map[string]placedRoom{}
	for _, raw := range coll.rooms {
		regionName := tableString(raw.table, "region", "")
		region, ok := regions[regionName]
		if !ok {
			return nil, fmt.Errorf("room %q: unknown region %q", raw.name, regionName)
		}
		if _, dup := rooms[raw.name]; dup {
			return nil, fmt.Errorf("duplicate room %q", raw.name)
		}

		room := world.NewRoom(raw.name, compileDescription(L, raw.table, ctx))
		if err := compileCommands(L, raw.table, ctx, room.AddCommand); err != nil {
			return nil, fmt.Errorf("room %q: %w", raw.name, err)
		}

		var handle world.RoomHandle
		x, y := tableInt(raw.table, "x", -1), tableInt(raw.table, "y", -1)
		if x >= 0 && y >= 0 {
			var err error
			if handle, err = region.PlaceRoom(x, y, room); err != nil {
				return nil, fmt.Errorf("room %q: %w", raw.name, err)
			}
		} else {
			handle = region.AddRoom(room)
		}
		if tableBool(raw.table, "start", false) {
			if err := region.SetCurrent(handle); err != nil {
				return nil, fmt.Errorf("room %q: %w", raw.name, err)
			}
		}
		rooms[raw.name] = placedRoom{region: region, handle: handle, room: room}
	}

	npcs := map[string]*world.NPC{}
	for _, raw := range coll.entities {
		switch raw.kind {
		case "npc":
			npc, err := compileNPC(L, gen, raw, ctx)
			if err != nil {
				return nil, err
			}
			roomName := tableString(raw.table, "room", "")
			placed, ok := rooms[roomName]
			if !ok {
				return nil, fmt.Errorf("npc %q: unknown room %q", raw.name, roomName)
			}
			placed.room.AddCharacter(npc)
			npcs[raw.name] = npc

		case "item":
			item, err := compileItem(L, gen, raw, ctx)
			if err != nil {
				return nil, err
			}
			switch holder := tableString(raw.table, "held_by", ""); {
			case holder == "player":
				player.AddItem(item)
			case holder != "":
				npc, ok := npcs[holder]
				if !ok {
					return nil, fmt.Errorf("item %q: holder %q is not a previously declared NPC", raw.name, holder)
				}
				npc.AddItem(item)
			default:
				roomName := tableString(raw.table, "room", "")
				placed, ok := rooms[roomName]
				if !ok {
					return nil, fmt.Errorf("item %q: unknown room %q", raw.name, roomName)
				}
				placed.room.AddItem(item)
			}
		}
	}

	for _, tbl := range coll.connects {
		regionName := tableString(tbl, "region", "")
		region, ok := regions[regionName]
		if !ok {
			return nil, fmt.Errorf("connect: unknown region %q", regionName)
		}
		from, ok := rooms[tableString(tbl, "from", "")]
		if !ok || from.region != region {
			return nil, fmt.Errorf("connect: unknown room %q in region %q", tableString(tbl, "from", ""), regionName)
		}
		to, ok := rooms[tableString(tbl, "to", "")]
		if !ok || to.region != region {
			return nil, fmt.Errorf("connect: unknown room %q in region %q", tableString(tbl, "to", ""), regionName)
		}
		d, ok := types.ParseDirection(tableString(tbl, "direction", ""))
		if !ok {
			return nil, fmt.Errorf("connect: unknown direction %q", tableString(tbl, "direction", ""))
		}
		if err := region.Connect(from.handle, d, to.handle, tableBool(tbl, "locked", false), tableBool(tbl, "both", true)); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
	}

	if start := tableString(coll.game, "start_region", ""); start != "" {
		if err := overworld.SwitchTo(start); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func compileItem(L *lua.LState, gen *world.IDGenerator, raw rawEntity, ctx *lua.LUserData) (*world.Item, error) {
	item := world.NewItem(
		gen,
		raw.name,
		compileDescription(L, raw.table, ctx),
		tableBool(raw.table, "visible", true),
		tableBool(raw.table, "takeable", false),
	)
	if fn := tableFunc(raw.table, "examine"); fn != nil {
		item.Examine = wrapExamine(L, fn, ctx)
	}
	if fn := tableFunc(raw.table, "interact"); fn != nil {
		item.Interact = wrapInteract(L, fn, ctx)
	}
	if err := compileCommands(L, raw.table, ctx, item.AddCommand); err != nil {
		return nil, fmt.Errorf("item %q: %w", raw.name, err)
	}
	return item, nil
}

func compileNPC(L *lua.LState, gen *world.IDGenerator, raw rawEntity, ctx *lua.LUserData) (*world.NPC, error) {
	npc := world.NewNPC(
		gen,
		raw.name,
		compileDescription(L, raw.table, ctx),
		tableBool(raw.table, "visible", true),
	)
	npc.Alive = tableBool(raw.table, "alive", true)
	if fn := tableFunc(raw.table, "examine"); fn != nil {
		npc.Examine = wrapExamine(L, fn, ctx)
	}
	if fn := tableFunc(raw.table, "interact"); fn != nil {
		npc.Interact = wrapInteract(L, fn, ctx)
	}
	if err := compileCommands(L, raw.table, ctx, npc.AddCommand); err != nil {
		return nil, fmt.Errorf("npc %q: %w", raw.name, err)
	}

	if dlg, ok := raw.table.RawGetString("dialogue").(*lua.LTable); ok {
		conv, err := compileDialogue(L, dlg, ctx)
		if err != nil {
			return nil, fmt.Errorf("npc %q: %w", raw.name, err)
		}
		npc.Dialogue = conv
	}
	return npc, nil
}

// compileDialogue reads a dialogue table: array entries are either plain
// strings or tables { text = "...", on_spoken = function(w) end }, plus an
// optional repeat_last flag.
func compileDialogue(L *lua.LState, tbl *lua.LTable, ctx *lua.LUserData) (*world.Conversation, error) {
	var lines []world.Line
	for i := 1; i <= tbl.Len(); i++ {
		switch entry := tbl.RawGetInt(i).(type) {
		case lua.LString:
			lines = append(lines, world.Line{Text: string(entry)})
		case *lua.LTable:
			line := world.Line{Text: tableString(entry, "text", "")}
			if fn := tableFunc(entry, "on_spoken"); fn != nil {
				line.OnSpoken = wrapOnSpoken(L, fn, ctx)
			}
			lines = append(lines, line)
		default:
			return nil, fmt.Errorf("dialogue entry %d is neither a string nor a table", i)
		}
	}
	return world.NewConversation(tableBool(tbl, "repeat_last", false), lines...), nil
}

// compileCommands reads the commands array of a definition table and registers
// each command via add.
func compileCommands(L *lua.LState, tbl *lua.LTable, ctx *lua.LUserData, add func(*world.Command)) error {
	cmds, ok := tbl.RawGetString("commands").(*lua.LTable)
	if !ok {
		return nil
	}
	for i := 1; i <= cmds.Len(); i++ {
		entry, ok := cmds.RawGetInt(i).(*lua.LTable)
		if !ok {
			return fmt.Errorf("command entry %d is not a table", i)
		}
		word := tableString(entry, "word", "")
		if word == "" {
			return fmt.Errorf("command entry %d has no word", i)
		}
		cmd := &world.Command{
			Word:        word,
			Description: tableString(entry, "description", ""),
			Visible:     tableBool(entry, "visible", true),
		}
		if fn := tableFunc(entry, "action"); fn != nil {
			cmd.Action = wrapAction(L, fn, ctx)
		}
		add(cmd)
	}
	return nil
}

// compileDescription reads the description field, which is either a fixed
// string or a function computing the text per render.
func compileDescription(L *lua.LState, tbl *lua.LTable, ctx *lua.LUserData) world.Description {
	if fn := tableFunc(tbl, "description"); fn != nil {
		return world.ConditionalDescription(wrapVariant(L, fn, ctx))
	}
	return world.StaticDescription(tableString(tbl, "description", ""))
}
