// Package effects applies the mutation mandated by an interaction result's
// effect code. Every code is one atomic operation against the world graph;
// behavior that wants anything richer performs it itself and reports
// SelfContained.
package effects

import (
	"fmt"

	"github.com/nathoo/wayfarer/engine/events"
	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Apply performs the state mutation for one interaction result. The target is
// the node the interaction acted on (nil when there was none). Unknown effect
// codes are an author contract violation and panic.
func Apply(g *world.Game, res world.InteractionResult, target world.Target) ([]events.Event, error) {
	switch res.Effect {
	case types.NoEffect, types.SelfContained, types.ItemMorphed:
		// The behavior performed any state change itself (a Morph swaps the
		// item in place before reporting ItemMorphed).
		return nil, nil

	case types.ItemUsedUp:
		return consumeItem(g, res.Item), nil

	case types.TargetUsedUp:
		return consumeTarget(g, target)

	case types.FatalEffect:
		g.Player.Alive = false
		return []events.Event{events.New(events.PlayerDied, "cause", res.Description)}, nil

	default:
		panic(fmt.Sprintf("effects: unknown interaction effect %d", res.Effect))
	}
}

// consumeItem removes the acted-upon item from whichever container currently
// holds it: the current room first, then the player's inventory. Removing an
// already-removed item is a no-op, not an error.
func consumeItem(g *world.Game, item *world.Item) []events.Event {
	if item == nil {
		return nil
	}
	if room := g.CurrentRoom(); room != nil && room.RemoveItem(item) {
		return []events.Event{events.New(events.ItemConsumed, "item", item.Name)}
	}
	if g.Player.RemoveItem(item) {
		return []events.Event{events.New(events.ItemConsumed, "item", item.Name)}
	}
	return nil
}

// consumeTarget removes the target from its room if present there, else from
// the player's inventory. A target that is neither an item nor a character
// cannot be consumed and is reported as an error rather than ignored.
func consumeTarget(g *world.Game, target world.Target) ([]events.Event, error) {
	room := g.CurrentRoom()
	switch t := target.(type) {
	case *world.Item:
		if room != nil && room.RemoveItem(t) {
			return []events.Event{events.New(events.TargetConsumed, "target", t.Name)}, nil
		}
		if g.Player.RemoveItem(t) {
			return []events.Event{events.New(events.TargetConsumed, "target", t.Name)}, nil
		}
		return nil, nil
	case *world.NPC:
		if room != nil && room.RemoveCharacter(t) {
			return []events.Event{events.New(events.TargetConsumed, "target", t.Name)}, nil
		}
		return nil, nil
	case nil:
		return nil, fmt.Errorf("effects: TargetUsedUp with no target")
	default:
		return nil, fmt.Errorf("effects: target %q cannot be consumed", target.TargetName())
	}
}
