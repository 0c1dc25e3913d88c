package effects

import (
	"testing"

	"github.com/nathoo/wayfarer/engine/events"
	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

func newTestGame() (*world.Game, *world.Item, *world.Item, *world.NPC) {
	gen := world.NewIDGenerator()
	player := world.NewPlayer(gen, "You", world.StaticDescription(""))

	region := world.NewRegion("Coast", world.StaticDescription(""), 1, 1)
	beach := world.NewRoom("Beach", world.StaticDescription("Sand."))
	region.AddRoom(beach)

	shell := world.NewItem(gen, "Conch Shell", world.StaticDescription(""), true, false)
	beach.AddItem(shell)
	knife := world.NewItem(gen, "Knife", world.StaticDescription(""), true, true)
	player.AddItem(knife)
	hermit := world.NewNPC(gen, "Hermit", world.StaticDescription(""), true)
	beach.AddCharacter(hermit)

	overworld := world.NewOverworld("Isles", world.StaticDescription(""))
	overworld.AddRegion(region)
	g := world.NewGame("Cove", world.StaticDescription(""), player, overworld)
	return g, shell, knife, hermit
}

func findEvent(t *testing.T, evts []events.Event, typ string) events.Event {
	t.Helper()
	for _, e := range evts {
		if e.Type == typ {
			return e
		}
	}
	t.Fatalf("no %s event in %v", typ, evts)
	return events.Event{}
}

func TestApplyNoOpEffects(t *testing.T) {
	g, shell, _, _ := newTestGame()
	for _, effect := range []types.Effect{types.NoEffect, types.SelfContained, types.ItemMorphed} {
		evts, err := Apply(g, world.InteractionResult{Effect: effect, Item: shell}, shell)
		if err != nil || evts != nil {
			t.Errorf("Apply(%v) = %v, %v; want nil, nil", effect, evts, err)
		}
	}
}

func TestApplyItemUsedUp(t *testing.T) {
	g, _, knife, _ := newTestGame()

	evts, err := Apply(g, world.InteractionResult{Effect: types.ItemUsedUp, Item: knife}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Player.ItemNamed("Knife") != nil {
		t.Error("knife still in inventory")
	}
	findEvent(t, evts, events.ItemConsumed)

	// Removing it again is a tolerated no-op.
	evts, err = Apply(g, world.InteractionResult{Effect: types.ItemUsedUp, Item: knife}, nil)
	if err != nil || len(evts) != 0 {
		t.Errorf("second removal = %v, %v", evts, err)
	}
}

func TestApplyItemUsedUpFromRoom(t *testing.T) {
	g, shell, _, _ := newTestGame()
	if _, err := Apply(g, world.InteractionResult{Effect: types.ItemUsedUp, Item: shell}, nil); err != nil {
		t.Fatal(err)
	}
	if g.CurrentRoom().ItemNamed("Conch Shell") != nil {
		t.Error("shell still in room")
	}
}

func TestApplyTargetUsedUp(t *testing.T) {
	t.Run("item target", func(t *testing.T) {
		g, shell, _, _ := newTestGame()
		evts, err := Apply(g, world.InteractionResult{Effect: types.TargetUsedUp}, shell)
		if err != nil {
			t.Fatal(err)
		}
		if g.CurrentRoom().ItemNamed("Conch Shell") != nil {
			t.Error("target still in room")
		}
		findEvent(t, evts, events.TargetConsumed)
	})

	t.Run("character target", func(t *testing.T) {
		g, _, _, hermit := newTestGame()
		if _, err := Apply(g, world.InteractionResult{Effect: types.TargetUsedUp}, hermit); err != nil {
			t.Fatal(err)
		}
		if g.CurrentRoom().CharacterNamed("Hermit") != nil {
			t.Error("target character still in room")
		}
	})

	t.Run("missing target is an error", func(t *testing.T) {
		g, _, _, _ := newTestGame()
		if _, err := Apply(g, world.InteractionResult{Effect: types.TargetUsedUp}, nil); err == nil {
			t.Error("no error for a nil target")
		}
	})

	t.Run("non-removable target is an error", func(t *testing.T) {
		g, _, _, _ := newTestGame()
		if _, err := Apply(g, world.InteractionResult{Effect: types.TargetUsedUp}, g.CurrentRoom()); err == nil {
			t.Error("no error for a room target")
		}
	})
}

func TestApplyFatalEffect(t *testing.T) {
	g, shell, _, _ := newTestGame()
	res := world.InteractionResult{Effect: types.FatalEffect, Description: "The curse strikes you down."}

	evts, err := Apply(g, res, shell)
	if err != nil {
		t.Fatal(err)
	}
	if g.Player.Alive {
		t.Error("player still alive after a fatal effect")
	}
	died := findEvent(t, evts, events.PlayerDied)
	if cause := died.Data["cause"]; cause != "The curse strikes you down." {
		t.Errorf("death cause = %v", cause)
	}
}

func TestApplyUnknownEffectPanics(t *testing.T) {
	g, shell, _, _ := newTestGame()
	defer func() {
		if recover() == nil {
			t.Error("no panic for an unknown effect code")
		}
	}()
	Apply(g, world.InteractionResult{Effect: types.Effect(99)}, shell)
}
