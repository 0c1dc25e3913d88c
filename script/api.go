package script

import (
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates raw Lua definitions in declaration order. Declaration
// order is what keeps the generated id sequence stable across builds.
type collector struct {
	game     *lua.LTable
	player   *lua.LTable
	regions  []rawDef
	rooms    []rawDef
	entities []rawEntity
	connects []*lua.LTable
}

type rawDef struct {
	name  string
	table *lua.LTable
}

type rawEntity struct {
	name  string
	kind  string // "item" or "npc"
	table *lua.LTable
}

// registerAPI installs the authoring constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { name = "...", description = "...", complete = function(w) end }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { name = "...", description = "..." }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Region "name" { ... } is curried: Region("name") returns a function that
	// takes the definition table.
	L.SetGlobal("Region", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.regions = append(coll.regions, rawDef{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Room "name" { region = "...", ... }, curried the same way.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawDef{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Item "name" { room = "..." | held_by = "...", ... }, curried.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.entities = append(coll.entities, rawEntity{name: name, kind: "item", table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// NPC "name" { room = "...", dialogue = {...}, ... }, curried.
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.entities = append(coll.entities, rawEntity{name: name, kind: "npc", table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Connect { region = "...", from = "...", direction = "...", to = "...",
	//           locked = false, both = true }
	L.SetGlobal("Connect", L.NewFunction(func(L *lua.LState) int {
		coll.connects = append(coll.connects, L.CheckTable(1))
		return 0
	}))
}

// tableString reads a string field, with a default.
func tableString(tbl *lua.LTable, key, def string) string {
	if v, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return def
}

// tableBool reads a boolean field, with a default.
func tableBool(tbl *lua.LTable, key string, def bool) bool {
	if v, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return def
}

// tableInt reads an integer field, with a default.
func tableInt(tbl *lua.LTable, key string, def int) int {
	if v, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(v)
	}
	return def
}

// tableFunc reads a function field, or nil.
func tableFunc(tbl *lua.LTable, key string) *lua.LFunction {
	if fn, ok := tbl.RawGetString(key).(*lua.LFunction); ok {
		return fn
	}
	return nil
}
