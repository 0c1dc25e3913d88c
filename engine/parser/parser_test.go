package parser

import (
	"strings"
	"testing"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// newTestGame builds a small fixture world:
//
//	Beach (start) --East--> Cave, --North (locked)--> Cliff
//	Beach holds a takeable Torch, an untakeable Anchor, a cursed Conch Shell
//	and the Hermit. The player carries a Knife.
func newTestGame() *world.Game {
	gen := world.NewIDGenerator()
	player := world.NewPlayer(gen, "You", world.StaticDescription("A castaway."))

	region := world.NewRegion("Coast", world.StaticDescription("A salt-bleached shoreline."), 2, 2)
	beach := world.NewRoom("Beach", world.StaticDescription("Sand and driftwood."))
	cave := world.NewRoom("Cave", world.StaticDescription("Dripping dark."))
	cliff := world.NewRoom("Cliff", world.StaticDescription("A sheer drop."))
	hBeach := region.AddRoom(beach)
	hCave := region.AddRoom(cave)
	hCliff := region.AddRoom(cliff)
	region.Connect(hBeach, types.East, hCave, false, true)
	region.Connect(hBeach, types.North, hCliff, true, false)

	torch := world.NewItem(gen, "Torch", world.StaticDescription("A pitch-soaked torch."), true, true)
	anchor := world.NewItem(gen, "Anchor", world.StaticDescription("Far too heavy."), true, false)
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
	beach.AddItem(torch, anchor, shell)

	knife := world.NewItem(gen, "Knife", world.StaticDescription("A rusty knife."), true, true)
	player.AddItem(knife)

	hermit := world.NewNPC(gen, "Hermit", world.StaticDescription("A weathered recluse."), true)
	hermit.Dialogue = world.NewConversation(false,
		world.Line{Text: "Leave the shell alone."},
	)
	beach.AddCharacter(hermit)

	beach.AddCommand(world.NewCommand("DIG", "Dig in the sand.", func() world.InteractionResult {
		return world.InteractionResult{Effect: types.SelfContained, Description: "You dig up nothing but sand."}
	}))

	overworld := world.NewOverworld("Isles", world.StaticDescription("Scattered islands."))
	overworld.AddRegion(region)

	return world.NewGame("Shipwreck Cove", world.StaticDescription("Washed ashore."), player, overworld)
}

func TestResolveDecisions(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOutcome types.Outcome
		wantReason  string // exact match; empty means don't check
	}{
		// Empty input
		{
			name:        "empty input is a tolerated no-op",
			input:       "",
			wantOutcome: types.CouldReact,
		},

		// Movement
		{
			name:        "move through a missing exit",
			input:       "south",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no exit from this room to the South.",
		},
		{
			name:        "move through a locked exit",
			input:       "N",
			wantOutcome: types.CouldNotReact,
			wantReason:  "The exit to the North is locked.",
		},
		{
			name:        "move with trailing words",
			input:       "south right now",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no exit from this room to the South.",
		},

		// TAKE
		{
			name:        "take by name",
			input:       "take torch",
			wantOutcome: types.CouldReact,
			wantReason:  "You take the Torch.",
		},
		{
			name:        "take default with one takeable item",
			input:       "TAKE",
			wantOutcome: types.CouldReact,
			wantReason:  "You take the Torch.",
		},
		{
			name:        "take an untakeable item",
			input:       "take anchor",
			wantOutcome: types.CouldNotReact,
			wantReason:  "You can't take the Anchor.",
		},
		{
			name:        "take something absent",
			input:       "take pearl",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no pearl here.",
		},

		// DROP
		{
			name:        "drop a carried item",
			input:       "drop knife",
			wantOutcome: types.CouldReact,
			wantReason:  "You drop the Knife.",
		},
		{
			name:        "drop something not carried",
			input:       "drop pearl",
			wantOutcome: types.CouldNotReact,
			wantReason:  "You don't have a pearl.",
		},
		{
			name:        "drop without an object",
			input:       "drop",
			wantOutcome: types.CouldNotReact,
			wantReason:  "Drop what?",
		},

		// TALK
		{
			name:        "talk defaults to the only character",
			input:       "talk",
			wantOutcome: types.CouldReact,
			wantReason:  "Leave the shell alone.",
		},
		{
			name:        "talk to an item",
			input:       "talk to anchor",
			wantOutcome: types.CouldNotReact,
			wantReason:  "You can't talk to the anchor.",
		},
		{
			name:        "talk to no one in particular",
			input:       "talk to ghost",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no one here by that name.",
		},

		// EXAMINE
		{
			name:        "examine a locked exit reads as no exit",
			input:       "examine north",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no exit from this room to the North.",
		},
		{
			name:        "examine an open exit",
			input:       "examine east",
			wantOutcome: types.CouldReact,
			wantReason:  "There is an exit leading to the East.",
		},
		{
			name:        "examine an inventory item",
			input:       "examine knife",
			wantOutcome: types.CouldReact,
			wantReason:  "A rusty knife.",
		},
		{
			name:        "examine me",
			input:       "examine ME",
			wantOutcome: types.CouldReact,
			wantReason:  "A castaway.",
		},
		{
			name:        "examine the region literal",
			input:       "examine region",
			wantOutcome: types.CouldReact,
			wantReason:  "A salt-bleached shoreline.",
		},
		{
			name:        "examine the overworld by name",
			input:       "examine isles",
			wantOutcome: types.CouldReact,
			wantReason:  "Scattered islands.",
		},
		{
			name:        "examine something absent",
			input:       "examine pearl",
			wantOutcome: types.CouldNotReact,
			wantReason:  "You see nothing like that here.",
		},

		// USE
		{
			name:        "use an item nobody reacts to",
			input:       "use knife on anchor",
			wantOutcome: types.CouldReact,
			wantReason:  "Nothing happens.",
		},
		{
			name:        "use a missing item",
			input:       "use pearl on anchor",
			wantOutcome: types.CouldNotReact,
			wantReason:  "You don't have a pearl.",
		},
		{
			name:        "use on a missing target",
			input:       "use knife on ghost",
			wantOutcome: types.CouldNotReact,
			wantReason:  "There is no ghost here.",
		},

		// Custom commands
		{
			name:        "room command",
			input:       "dig",
			wantOutcome: types.SelfContainedReaction,
			wantReason:  "You dig up nothing but sand.",
		},

		// Unknown verbs
		{
			name:        "unknown verb",
			input:       "XYZZY",
			wantOutcome: types.CouldNotReact,
			wantReason:  "Invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame()
			decision, _, _ := Resolve(tt.input, g)
			if decision.Outcome != tt.wantOutcome {
				t.Errorf("Resolve(%q).Outcome = %v, want %v (reason %q)", tt.input, decision.Outcome, tt.wantOutcome, decision.Reason)
			}
			if tt.wantReason != "" && decision.Reason != tt.wantReason {
				t.Errorf("Resolve(%q).Reason = %q, want %q", tt.input, decision.Reason, tt.wantReason)
			}
		})
	}
}

func TestResolveMoveUpdatesCursor(t *testing.T) {
	g := newTestGame()
	decision, _, _ := Resolve("east", g)
	if decision.Outcome != types.CouldReact {
		t.Fatalf("move east: %+v", decision)
	}
	if got := g.CurrentRoom().Name; got != "Cave" {
		t.Fatalf("current room = %q, want Cave", got)
	}
	// The post-move response is the room rendition.
	if !strings.HasPrefix(decision.Reason, "Cave\n") {
		t.Errorf("post-move reason does not describe the room: %q", decision.Reason)
	}
}

func TestResolveMoveIgnoresTrailingWords(t *testing.T) {
	g := newTestGame()
	decision, _, _ := Resolve("east quickly", g)
	if decision.Outcome != types.CouldReact {
		t.Fatalf("move with trailing words: %+v", decision)
	}
	if got := g.CurrentRoom().Name; got != "Cave" {
		t.Errorf("current room = %q, want Cave", got)
	}
}

func TestResolveTakeMovesItem(t *testing.T) {
	g := newTestGame()
	Resolve("take torch", g)
	if g.Player.ItemNamed("Torch") == nil {
		t.Error("torch not in inventory after take")
	}
	if g.CurrentRoom().ItemNamed("Torch") != nil {
		t.Error("torch still in room after take")
	}

	// A second default TAKE has no takeable item left and asks back.
	decision, _, _ := Resolve("take", g)
	if decision.Outcome != types.CouldNotReact || decision.Reason != "Take what?" {
		t.Errorf("second take = %+v", decision)
	}
}

func TestResolveUseReturnsInteraction(t *testing.T) {
	g := newTestGame()
	decision, res, target := Resolve("USE KNIFE ON CONCH SHELL", g)
	if decision.Outcome != types.CouldReact {
		t.Fatalf("decision = %+v", decision)
	}
	if res == nil || res.Effect != types.FatalEffect {
		t.Fatalf("interaction = %+v, want FatalEffect", res)
	}
	if decision.Reason != "The shell's curse strikes you down." {
		t.Errorf("reason = %q", decision.Reason)
	}
	shell, ok := target.(*world.Item)
	if !ok || !shell.NameMatches("Conch Shell") {
		t.Errorf("target = %#v, want the shell", target)
	}
}

func TestResolveUseWithoutTarget(t *testing.T) {
	// Without an ON clause the item is used on itself.
	g := newTestGame()
	_, res, target := Resolve("use knife", g)
	if res == nil {
		t.Fatal("no interaction result")
	}
	item, ok := target.(*world.Item)
	if !ok || !item.NameMatches("Knife") {
		t.Errorf("target = %#v, want the knife itself", target)
	}
}

func TestResolveTalkExhaustion(t *testing.T) {
	g := newTestGame()
	Resolve("talk", g)
	decision, _, _ := Resolve("talk to hermit", g)
	if decision.Reason != "Hermit has nothing else to say." {
		t.Errorf("exhausted talk = %q", decision.Reason)
	}
}

func TestDescribeRoom(t *testing.T) {
	g := newTestGame()
	out := DescribeRoom(g)

	for _, want := range []string{
		"Beach",
		"Sand and driftwood.",
		"You see: Torch, Anchor, Conch Shell, Hermit.",
		"Exits: East.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DescribeRoom missing %q in:\n%s", want, out)
		}
	}
	// The locked north exit must not be listed.
	if strings.Contains(out, "North") {
		t.Errorf("DescribeRoom lists the locked exit:\n%s", out)
	}
}
