package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Behavior functions written in Lua receive a world context as their first
// argument. The context is a userdata wrapping a mutable reference to a
// graph, not the graph itself: every closure of one authoring run shares the
// reference, and the graph's Rebind hook repoints it. A load transfers the
// closures onto a freshly built graph and rebinds the reference there, so
// they always act on the graph that is actually live.

const ctxTypeName = "wayfarer.world"

// worldRef is the shared indirection behind the context userdata.
type worldRef struct {
	game *world.Game
}

func registerCtxType(L *lua.LState) {
	mt := L.NewTypeMetatable(ctxTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), ctxMethods))
}

func newWorldCtx(L *lua.LState, ref *worldRef) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = ref
	L.SetMetatable(ud, L.GetTypeMetatable(ctxTypeName))
	return ud
}

func checkCtx(L *lua.LState) *world.Game {
	ud := L.CheckUserData(1)
	if ref, ok := ud.Value.(*worldRef); ok {
		return ref.game
	}
	L.ArgError(1, "world context expected")
	return nil
}

var ctxMethods = map[string]lua.LGFunction{
	"has_item":      ctxHasItem,
	"in_room":       ctxInRoom,
	"in_region":     ctxInRegion,
	"room":          ctxRoom,
	"region":        ctxRegion,
	"unlock":        ctxUnlock,
	"lock":          ctxLock,
	"reveal":        ctxReveal,
	"reveal_exit":   ctxRevealExit,
	"give_player":   ctxGivePlayer,
	"switch_region": ctxSwitchRegion,
}

// w:has_item("Pearl") reports whether the player carries the named item.
func ctxHasItem(L *lua.LState) int {
	g := checkCtx(L)
	name := L.CheckString(2)
	L.Push(lua.LBool(g.Player.ItemNamed(name) != nil))
	return 1
}

// w:in_room("Beach") reports whether the current room is the named one.
func ctxInRoom(L *lua.LState) int {
	g := checkCtx(L)
	name := L.CheckString(2)
	room := g.CurrentRoom()
	L.Push(lua.LBool(room != nil && strings.EqualFold(room.Name, name)))
	return 1
}

// w:in_region("Coast") reports whether the current region is the named one.
func ctxInRegion(L *lua.LState) int {
	g := checkCtx(L)
	name := L.CheckString(2)
	region := g.CurrentRegion()
	L.Push(lua.LBool(region != nil && strings.EqualFold(region.Name, name)))
	return 1
}

// w:room() returns the current room name.
func ctxRoom(L *lua.LState) int {
	g := checkCtx(L)
	if room := g.CurrentRoom(); room != nil {
		L.Push(lua.LString(room.Name))
	} else {
		L.Push(lua.LString(""))
	}
	return 1
}

// w:region() returns the current region name.
func ctxRegion(L *lua.LState) int {
	g := checkCtx(L)
	if region := g.CurrentRegion(); region != nil {
		L.Push(lua.LString(region.Name))
	} else {
		L.Push(lua.LString(""))
	}
	return 1
}

// w:unlock("Beach", "East") unlocks a room's exit.
func ctxUnlock(L *lua.LState) int {
	setExitLocked(L, false)
	return 0
}

// w:lock("Beach", "East") locks a room's exit.
func ctxLock(L *lua.LState) int {
	setExitLocked(L, true)
	return 0
}

func setExitLocked(L *lua.LState, locked bool) {
	g := checkCtx(L)
	roomName := L.CheckString(2)
	d, ok := types.ParseDirection(L.CheckString(3))
	if !ok {
		L.ArgError(3, "unknown direction")
	}
	room := findRoom(g, roomName)
	if room == nil {
		L.ArgError(2, fmt.Sprintf("unknown room %q", roomName))
	}
	exit := room.Exit(d)
	if exit == nil {
		L.ArgError(3, fmt.Sprintf("room %q has no exit to the %s", roomName, d))
	}
	exit.Locked = locked
}

// w:reveal("Pearl") makes the named item or character visible, wherever it is.
func ctxReveal(L *lua.LState) int {
	g := checkCtx(L)
	name := L.CheckString(2)
	L.Push(lua.LBool(setVisible(g, name, true)))
	return 1
}

// w:reveal_exit("Beach", "East") makes a room's exit visible.
func ctxRevealExit(L *lua.LState) int {
	g := checkCtx(L)
	roomName := L.CheckString(2)
	d, ok := types.ParseDirection(L.CheckString(3))
	if !ok {
		L.ArgError(3, "unknown direction")
	}
	room := findRoom(g, roomName)
	if room == nil {
		L.ArgError(2, fmt.Sprintf("unknown room %q", roomName))
	}
	if exit := room.Exit(d); exit != nil {
		exit.Visible = true
	}
	return 0
}

// w:give_player("Hermit", "Key") moves an item from an NPC to the player.
func ctxGivePlayer(L *lua.LState) int {
	g := checkCtx(L)
	npcName := L.CheckString(2)
	itemName := L.CheckString(3)
	npc := findNPC(g, npcName)
	if npc == nil {
		L.Push(lua.LFalse)
		return 1
	}
	item := npc.ItemNamed(itemName)
	if item == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(world.GiveItem(&npc.Character, &g.Player.Character, item)))
	return 1
}

// w:switch_region("Highlands") moves the overworld cursor.
func ctxSwitchRegion(L *lua.LState) int {
	g := checkCtx(L)
	name := L.CheckString(2)
	if err := g.Overworld.SwitchTo(name); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func findRoom(g *world.Game, name string) *world.Room {
	for _, region := range g.Overworld.Regions() {
		for _, room := range region.Rooms() {
			if strings.EqualFold(room.Name, name) {
				return room
			}
		}
	}
	return nil
}

func findNPC(g *world.Game, name string) *world.NPC {
	for _, region := range g.Overworld.Regions() {
		for _, room := range region.Rooms() {
			if npc := room.CharacterNamed(name); npc != nil {
				return npc
			}
		}
	}
	return nil
}

func setVisible(g *world.Game, name string, visible bool) bool {
	for _, region := range g.Overworld.Regions() {
		for _, room := range region.Rooms() {
			for _, item := range room.Items {
				if item.NameMatches(name) {
					item.Visible = visible
					return true
				}
			}
			for _, npc := range room.Characters {
				if npc.NameMatches(name) {
					npc.Visible = visible
					return true
				}
			}
		}
	}
	if item := g.Player.ItemNamed(name); item != nil {
		item.Visible = visible
		return true
	}
	return false
}

// callScript invokes a Lua behavior function with the given arguments and
// returns its single result.
func callScript(L *lua.LState, fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	L.Push(fn)
	for _, a := range args {
		L.Push(a)
	}
	if err := L.PCall(len(args), 1, nil); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// parseEffect maps the author-facing effect names onto the typed effects.
func parseEffect(name string) (types.Effect, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return types.NoEffect, nil
	case "consumed":
		return types.ItemUsedUp, nil
	case "morph":
		return types.ItemMorphed, nil
	case "fatal":
		return types.FatalEffect, nil
	case "target_consumed":
		return types.TargetUsedUp, nil
	case "self":
		return types.SelfContained, nil
	}
	return types.NoEffect, fmt.Errorf("unknown effect %q", name)
}

func wrapComplete(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) world.CompletionFunc {
	return func(*world.Game) bool {
		ret, err := callScript(L, fn, ctx)
		if err != nil {
			return false
		}
		return lua.LVAsBool(ret)
	}
}

func wrapVariant(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) func() string {
	return func() string {
		ret, err := callScript(L, fn, ctx)
		if err != nil {
			return fmt.Sprintf("script error: %v", err)
		}
		return lua.LVAsString(ret)
	}
}

// wrapExamine adapts a Lua examine function. The function may return a plain
// string, or a table { description = "...", self_contained = true }.
func wrapExamine(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) world.ExamineFunc {
	return func(e *world.Examinable) types.ExaminationResult {
		ret, err := callScript(L, fn, ctx)
		if err != nil {
			return types.ExaminationResult{Description: fmt.Sprintf("script error: %v", err)}
		}
		switch v := ret.(type) {
		case lua.LString:
			return types.ExaminationResult{Description: string(v), Kind: types.DescriptionReturned}
		case *lua.LTable:
			kind := types.DescriptionReturned
			if tableBool(v, "self_contained", false) {
				kind = types.SelfContainedExamination
			}
			return types.ExaminationResult{Description: tableString(v, "description", ""), Kind: kind}
		}
		return world.DescribeSelf(e)
	}
}

// wrapInteract adapts a Lua interact function. The function receives the
// context and the name of the item being used, and returns a table
// { effect = "...", description = "...", into = {...} }. Returning nothing
// means the target shrugs the item off.
func wrapInteract(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) world.InteractFunc {
	return func(used *world.Item, target world.Target) world.InteractionResult {
		ret, err := callScript(L, fn, ctx, lua.LString(used.Name))
		if err != nil {
			return world.InteractionResult{Effect: types.NoEffect, Description: fmt.Sprintf("script error: %v", err)}
		}
		tbl, ok := ret.(*lua.LTable)
		if !ok {
			return world.InteractionResult{Effect: types.NoEffect, Description: "Nothing happens."}
		}
		return interactionFromTable(L, tbl, ctx, used, target)
	}
}

func interactionFromTable(L *lua.LState, tbl *lua.LTable, ctx *lua.LUserData, used *world.Item, target world.Target) world.InteractionResult {
	effect, err := parseEffect(tableString(tbl, "effect", "none"))
	if err != nil {
		return world.InteractionResult{Effect: types.NoEffect, Description: fmt.Sprintf("script error: %v", err)}
	}
	res := world.InteractionResult{Effect: effect, Description: tableString(tbl, "description", "")}
	switch effect {
	case types.ItemUsedUp:
		res.Item = used
	case types.ItemMorphed:
		self, ok := target.(*world.Item)
		if !ok {
			return world.InteractionResult{Effect: types.NoEffect, Description: "script error: morph target is not an item"}
		}
		into, ok := tbl.RawGetString("into").(*lua.LTable)
		if !ok {
			return world.InteractionResult{Effect: types.NoEffect, Description: "script error: morph without an into table"}
		}
		self.Morph(morphForm(L, into, ctx))
		res.Item = self
	}
	return res
}

// morphForm builds the replacement item a morph swaps in.
func morphForm(L *lua.LState, tbl *lua.LTable, ctx *lua.LUserData) *world.Item {
	form := world.NewMorphForm(
		tableString(tbl, "name", ""),
		world.StaticDescription(tableString(tbl, "description", "")),
		tableBool(tbl, "takeable", false),
		tableString(tbl, "tag", ""),
	)
	if fn := tableFunc(tbl, "examine"); fn != nil {
		form.Examine = wrapExamine(L, fn, ctx)
	}
	if fn := tableFunc(tbl, "interact"); fn != nil {
		form.Interact = wrapInteract(L, fn, ctx)
	}
	return form
}

// wrapAction adapts a Lua command action. The function may return nothing, a
// plain string (the response text), or an effect table as for interact.
func wrapAction(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) world.ActionFunc {
	return func() world.InteractionResult {
		ret, err := callScript(L, fn, ctx)
		if err != nil {
			return world.InteractionResult{Effect: types.NoEffect, Description: fmt.Sprintf("script error: %v", err)}
		}
		switch v := ret.(type) {
		case lua.LString:
			return world.InteractionResult{Effect: types.NoEffect, Description: string(v)}
		case *lua.LTable:
			return interactionFromTable(L, v, ctx, nil, nil)
		}
		return world.InteractionResult{Effect: types.NoEffect}
	}
}

func wrapOnSpoken(L *lua.LState, fn *lua.LFunction, ctx *lua.LUserData) func() {
	return func() {
		L.Push(fn)
		L.Push(ctx)
		// Spoken-line side effects are best effort; a script error here must
		// not abort the conversation.
		_ = L.PCall(1, 0, nil)
	}
}
