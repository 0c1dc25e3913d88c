package engine

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/wayfarer/engine/events"
	"github.com/nathoo/wayfarer/engine/persist"
	"github.com/nathoo/wayfarer/script"
	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// coveFactory returns an authoring function for the fixture world. Each call
// of the returned factory is an independent run with the same id sequence.
func coveFactory() Factory {
	return func() *world.Game {
		gen := world.NewIDGenerator()
		player := world.NewPlayer(gen, "You", world.StaticDescription("A castaway."))

		region := world.NewRegion("Coast", world.StaticDescription("Shoreline."), 2, 1)
		beach := world.NewRoom("Beach", world.StaticDescription("Sand and driftwood."))
		cave := world.NewRoom("Cave", world.StaticDescription("Dripping dark."))
		hBeach := region.AddRoom(beach)
		hCave := region.AddRoom(cave)
		region.Connect(hBeach, types.East, hCave, false, true)

		torch := world.NewItem(gen, "Torch", world.StaticDescription("A torch."), true, true)
		beach.AddItem(torch)

		shell := world.NewItem(gen, "Conch Shell", world.StaticDescription("A spiral shell."), true, false)
		shell.Interact = func(item *world.Item, target world.Target) world.InteractionResult {
			if item.NameMatches("Knife") {
				return world.InteractionResult{
					Effect:      types.FatalEffect,
					Description: "The shell's curse strikes you down.",
				}
			}
			return world.InteractionResult{Effect: types.NoEffect, Description: "Nothing happens."}
		}
		beach.AddItem(shell)

		knife := world.NewItem(gen, "Knife", world.StaticDescription("Rusty."), true, true)
		player.AddItem(knife)

		overworld := world.NewOverworld("Isles", world.StaticDescription("Islands."))
		overworld.AddRegion(region)
		g := world.NewGame("Cove", world.StaticDescription("Washed ashore."), player, overworld)
		g.Complete = func(g *world.Game) bool {
			return g.CurrentRoom() != nil && g.CurrentRoom().Name == "Cave"
		}
		return g
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := persist.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	eng := New(coveFactory(), store)
	t.Cleanup(func() { eng.Close() })
	return eng
}

func TestStepCountsOnlyHandledTurns(t *testing.T) {
	eng := newTestEngine(t)

	if res := eng.Step("take torch"); res.Decision.Outcome != types.CouldReact {
		t.Fatalf("take torch: %+v", res.Decision)
	}
	if eng.Turns != 1 {
		t.Errorf("Turns = %d, want 1", eng.Turns)
	}

	if res := eng.Step("XYZZY"); res.Decision.Outcome != types.CouldNotReact {
		t.Fatalf("XYZZY: %+v", res.Decision)
	}
	if eng.Turns != 1 {
		t.Errorf("Turns after rejected input = %d, want 1", eng.Turns)
	}
}

func TestStepDeathGatesFollowingTurns(t *testing.T) {
	eng := newTestEngine(t)

	res := eng.Step("use knife on conch shell")
	if _, ok := events.Find(res.Events, events.PlayerDied); !ok {
		t.Fatalf("no death event: %+v", res)
	}
	if eng.Game.Player.Alive {
		t.Fatal("player alive after fatal effect")
	}
	joined := strings.Join(res.Output, "\n")
	if !strings.Contains(joined, "The shell's curse strikes you down.") {
		t.Errorf("output lacks the cause: %q", joined)
	}
	if !strings.Contains(joined, "You have died.") {
		t.Errorf("output lacks the death notice: %q", joined)
	}

	after := eng.Step("take torch")
	if after.Decision.Outcome != types.CouldNotReact {
		t.Errorf("post-death command outcome = %v", after.Decision.Outcome)
	}
	if eng.Game.Player.ItemNamed("Torch") != nil {
		t.Error("dead player took an item")
	}
}

func TestStepCompletion(t *testing.T) {
	eng := newTestEngine(t)

	res := eng.Step("east")
	if _, ok := events.Find(res.Events, events.SessionCompleted); !ok {
		t.Fatalf("no completion event: %+v", res.Events)
	}
	if !strings.Contains(strings.Join(res.Output, "\n"), "You have completed Cove!") {
		t.Errorf("no completion message in %v", res.Output)
	}

	// A completed session refuses further play.
	after := eng.Step("west")
	if after.Decision.Outcome != types.CouldNotReact {
		t.Errorf("post-completion outcome = %v", after.Decision.Outcome)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	eng := newTestEngine(t)

	eng.Step("take torch")
	if _, err := eng.Save("midway"); err != nil {
		t.Fatal(err)
	}
	msgs := eng.Settle()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "saved") {
		t.Fatalf("save messages = %v", msgs)
	}
	savedSession := eng.Session()

	// Keep playing past the save point.
	eng.Step("drop torch")
	eng.Step("east")
	if eng.Game.CurrentRoom().Name != "Cave" {
		t.Fatal("setup: not in cave")
	}

	if _, err := eng.Load("midway"); err != nil {
		t.Fatal(err)
	}
	msgs = eng.Settle()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "loaded") {
		t.Fatalf("load messages = %v", msgs)
	}

	if eng.Turns != 1 {
		t.Errorf("restored Turns = %d, want 1", eng.Turns)
	}
	if eng.Session() != savedSession {
		t.Errorf("restored session = %q, want %q", eng.Session(), savedSession)
	}
	if got := eng.Game.CurrentRoom().Name; got != "Beach" {
		t.Errorf("restored room = %q, want Beach", got)
	}
	if eng.Game.Player.ItemNamed("Torch") == nil {
		t.Error("restored inventory lacks the torch")
	}

	// Behavior survived the reattachment: the shell still kills.
	res := eng.Step("use knife on conch shell")
	if _, ok := events.Find(res.Events, events.PlayerDied); !ok {
		t.Errorf("restored shell lost its curse: %+v", res)
	}
}

func TestSaveLoadScriptedWorld(t *testing.T) {
	src, err := script.Load(filepath.Join("..", "script", "testdata", "cove"))
	if err != nil {
		t.Fatal(err)
	}
	store, err := persist.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	eng := New(src.Factory(), store)
	t.Cleanup(func() { eng.Close() })

	eng.Step("take torch")
	if _, err := eng.Save("camp"); err != nil {
		t.Fatal(err)
	}
	eng.Settle()
	eng.Step("drop torch")

	if _, err := eng.Load("camp"); err != nil {
		t.Fatal(err)
	}
	if msgs := eng.Settle(); len(msgs) != 1 || !strings.Contains(msgs[0], "loaded") {
		t.Fatalf("load messages = %v", msgs)
	}
	if eng.Game.Player.ItemNamed("Torch") == nil {
		t.Fatal("restored inventory lacks the torch")
	}

	// Reattached scripted behavior must mutate the graph the engine swapped
	// in, not the one discarded by the load.
	res := eng.Step("light")
	if !strings.Contains(strings.Join(res.Output, "\n"), "The torch flares, lighting the cave mouth.") {
		t.Fatalf("LIGHT output = %v", res.Output)
	}
	if eng.Game.CurrentRoom().Exit(types.East).Locked {
		t.Fatal("LIGHT unlocked the wrong graph's exit")
	}

	res = eng.Step("talk to hermit")
	if eng.Game.Player.ItemNamed("Pearl") == nil {
		t.Fatal("dialogue side effect gave the pearl to the wrong graph's player")
	}
	if _, ok := events.Find(res.Events, events.SessionCompleted); !ok {
		t.Errorf("completion predicate did not see the live inventory: %+v", res.Events)
	}
	if !strings.Contains(strings.Join(res.Output, "\n"), "You have completed Shipwreck Cove!") {
		t.Errorf("no completion message in %v", res.Output)
	}
}

func TestLoadFailureLeavesSessionIntact(t *testing.T) {
	eng := newTestEngine(t)
	eng.Step("take torch")

	if _, err := eng.Load("no-such-slot"); err != nil {
		t.Fatal(err)
	}
	msgs := eng.Settle()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "failed") {
		t.Fatalf("failure messages = %v", msgs)
	}
	if eng.Turns != 1 || eng.Game.Player.ItemNamed("Torch") == nil {
		t.Error("failed load disturbed the live session")
	}
}

func TestOnlyOnePendingOperation(t *testing.T) {
	eng := newTestEngine(t)

	op, err := eng.Save("one")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Save("two"); err == nil {
		t.Error("second save accepted while one was pending")
	}
	if _, err := eng.Load("one"); err == nil {
		t.Error("load accepted while a save was pending")
	}
	<-op.Done()
	eng.Settle()

	if _, err := eng.Save("two"); err != nil {
		t.Errorf("save after settling: %v", err)
	}
	eng.Settle()
}

func TestStepSettlesPendingFirst(t *testing.T) {
	eng := newTestEngine(t)
	if _, err := eng.Save("auto"); err != nil {
		t.Fatal(err)
	}

	// The next Step must absorb the pending outcome before acting.
	res := eng.Step("take torch")
	joined := strings.Join(res.Output, "\n")
	if !strings.Contains(joined, "saved") {
		t.Errorf("step output lacks the save message: %q", joined)
	}
	if !strings.Contains(joined, "You take the Torch.") {
		t.Errorf("step output lacks the turn response: %q", joined)
	}
	if eng.Busy() {
		t.Error("engine still busy after Step")
	}
}

func TestNewGameResetsSession(t *testing.T) {
	eng := newTestEngine(t)
	eng.Step("take torch")
	session := eng.Session()

	eng.NewGame()
	if eng.Turns != 0 {
		t.Errorf("Turns = %d after NewGame", eng.Turns)
	}
	if eng.Session() == session {
		t.Error("NewGame kept the old session id")
	}
	if eng.Game.CurrentRoom().ItemNamed("Torch") == nil {
		t.Error("NewGame did not re-author the world")
	}
}
