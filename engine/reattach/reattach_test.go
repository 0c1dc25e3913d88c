package reattach

import (
	"testing"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// buildGame authors the same world every call, the way re-running authoring
// scripts would. probe records which graph's closures actually run.
func buildGame(probe *string, label string) *world.Game {
	gen := world.NewIDGenerator()
	player := world.NewPlayer(gen, "You", world.StaticDescription("A castaway."))

	region := world.NewRegion("Coast", world.StaticDescription(""), 1, 1)
	beach := world.NewRoom("Beach", world.StaticDescription("Sand."))
	region.AddRoom(beach)

	shell := world.NewItem(gen, "Conch Shell", world.StaticDescription("A spiral shell."), true, false)
	shell.Interact = func(item *world.Item, target world.Target) world.InteractionResult {
		*probe = label
		return world.InteractionResult{Effect: types.NoEffect, Description: "It hums."}
	}
	beach.AddItem(shell)

	hermit := world.NewNPC(gen, "Hermit", world.StaticDescription(""), true)
	hermit.Dialogue = world.NewConversation(true, world.Line{
		Text:     "Listen.",
		OnSpoken: func() { *probe = label + ":spoken" },
	})
	hermit.AddCommand(world.NewCommand("WAVE", "Wave back.", func() world.InteractionResult {
		*probe = label + ":wave"
		return world.InteractionResult{Effect: types.SelfContained, Description: "The hermit nods."}
	}))
	beach.AddCharacter(hermit)

	overworld := world.NewOverworld("Isles", world.StaticDescription(""))
	overworld.AddRegion(region)
	g := world.NewGame("Cove", world.StaticDescription(""), player, overworld)
	g.Complete = func(*world.Game) bool { *probe = label + ":complete"; return false }
	return g
}

func TestTransferReattachesBehavior(t *testing.T) {
	var probe string
	live := buildGame(&probe, "live")
	fresh := buildGame(&probe, "fresh")

	snap := Take(live)
	if snap.Len() == 0 {
		t.Fatal("empty snapshot")
	}
	rep := snap.Transfer(fresh)

	if rep.Dropped != 0 {
		t.Errorf("Dropped = %d, want 0 for structurally identical graphs", rep.Dropped)
	}
	if rep.Defaulted != 0 {
		t.Errorf("Defaulted = %d, want 0", rep.Defaulted)
	}
	if rep.Adopted != snap.Len() {
		t.Errorf("Adopted = %d, want %d", rep.Adopted, snap.Len())
	}

	// Every closure on the fresh graph must now be the live graph's.
	fresh.EvaluateCompletion()
	if probe != "live:complete" {
		t.Errorf("completion closure = %q", probe)
	}

	shell := fresh.CurrentRoom().ItemNamed("Conch Shell")
	shell.ReactTo(shell)
	if probe != "live" {
		t.Errorf("interact closure = %q", probe)
	}

	hermit := fresh.CurrentRoom().CharacterNamed("Hermit")
	hermit.Dialogue.Next()
	if probe != "live:spoken" {
		t.Errorf("spoken closure = %q", probe)
	}
	hermit.Commands[0].Run()
	if probe != "live:wave" {
		t.Errorf("command closure = %q", probe)
	}
}

func TestTransferDropsRemovedNodes(t *testing.T) {
	var probe string
	live := buildGame(&probe, "live")
	fresh := buildGame(&probe, "fresh")

	// Play removed the shell; the restored graph no longer contains it.
	shell := fresh.CurrentRoom().ItemNamed("Conch Shell")
	fresh.CurrentRoom().RemoveItem(shell)

	rep := Take(live).Transfer(fresh)
	if rep.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1 (the shell)", rep.Dropped)
	}
	if rep.Defaulted != 0 {
		t.Errorf("Defaulted = %d, want 0", rep.Defaulted)
	}
}

func TestTransferLeavesUnmatchedDefaults(t *testing.T) {
	var probe string
	live := buildGame(&probe, "live")
	fresh := buildGame(&probe, "fresh")

	// The fresh authoring run gained an item the live graph never had. It must
	// keep its freshly authored behavior, never a nil callback.
	gen := world.NewIDGenerator()
	for i := 0; i < 10; i++ {
		gen.Next()
	}
	pearl := world.NewItem(gen, "Pearl", world.StaticDescription("Lustrous."), true, true)
	fresh.CurrentRoom().AddItem(pearl)

	rep := Take(live).Transfer(fresh)
	if rep.Defaulted != 1 {
		t.Errorf("Defaulted = %d, want 1 (the pearl)", rep.Defaulted)
	}
	if pearl.Examine == nil {
		t.Error("unmatched node lost its default examine")
	}
	if res := pearl.RunExamine(); res.Description != "Lustrous." {
		t.Errorf("default examine = %+v", res)
	}
}

func TestTransferRebindsSharedContext(t *testing.T) {
	var probe string
	live := buildGame(&probe, "live")
	var rebound *world.Game
	live.Rebind = func(g *world.Game) { rebound = g }

	fresh := buildGame(&probe, "fresh")
	Take(live).Transfer(fresh)

	if rebound != fresh {
		t.Fatal("shared context not repointed at the fresh graph")
	}
	if fresh.Rebind == nil {
		t.Fatal("rebind hook not carried onto the fresh graph")
	}

	// A second transfer chain repoints the same context again: the closures
	// living on fresh are still the original run's, so the hook that travels
	// with them must be that run's too.
	next := buildGame(&probe, "next")
	Take(fresh).Transfer(next)
	if rebound != next {
		t.Error("carried hook did not repoint the context on the next transfer")
	}
}

func TestSnapshotKeysPairAcrossRuns(t *testing.T) {
	var probe string
	a := buildGame(&probe, "a").Carriers()
	b := buildGame(&probe, "b").Carriers()
	if len(a) != len(b) {
		t.Fatalf("carrier counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].BehaviorKey() != b[i].BehaviorKey() {
			t.Errorf("key %d differs: %q vs %q", i, a[i].BehaviorKey(), b[i].BehaviorKey())
		}
	}
}
