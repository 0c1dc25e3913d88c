// Package parser resolves free-text player commands against the live world
// graph. Intentionally dumb: a fixed grammar, case-insensitive exact-name
// matching, first match wins, no fuzzy matching.
package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Resolve interprets one command. Movement, DROP, TAKE and TALK apply their
// side effects directly; USE and custom commands hand the interaction result
// (and the target it acted on) back so the engine can run the effect applier.
func Resolve(input string, g *world.Game) (types.Decision, *world.InteractionResult, world.Target) {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Decision{Outcome: types.CouldReact}, nil, nil
	}

	verb, rest := splitVerb(input)

	// Directions move the current region's room cursor. Only the verb is
	// inspected; trailing words are ignored.
	if dir, ok := types.ParseDirection(verb); ok {
		return resolveMove(g, dir), nil, nil
	}

	switch strings.ToUpper(verb) {
	case "DROP":
		return resolveDrop(g, rest), nil, nil
	case "EXAMINE":
		return resolveExamine(g, rest), nil, nil
	case "TAKE":
		return resolveTake(g, rest), nil, nil
	case "TALK":
		return resolveTalk(g, rest), nil, nil
	case "USE":
		return resolveUse(g, rest)
	}

	// Custom commands registered on any in-scope object.
	if cmd := findCommand(g, verb); cmd != nil {
		res := cmd.Run()
		outcome := types.CouldReact
		if res.Effect == types.SelfContained {
			outcome = types.SelfContainedReaction
		}
		return types.Decision{Outcome: outcome, Reason: res.Description}, &res, nil
	}

	return types.Decision{Outcome: types.CouldNotReact, Reason: "Invalid input"}, nil, nil
}

// splitVerb splits at the first space into the verb and the object phrase.
func splitVerb(input string) (verb, rest string) {
	if i := strings.IndexByte(input, ' '); i >= 0 {
		return input[:i], strings.TrimSpace(input[i+1:])
	}
	return input, ""
}

func resolveMove(g *world.Game, dir types.Direction) types.Decision {
	region := g.CurrentRegion()
	if region == nil {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "There is nowhere to go."}
	}
	if err := region.Move(dir); err != nil {
		return types.Decision{Outcome: types.CouldNotReact, Reason: err.Error()}
	}
	return types.Decision{Outcome: types.CouldReact, Reason: DescribeRoom(g)}
}

func resolveDrop(g *world.Game, name string) types.Decision {
	if name == "" {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "Drop what?"}
	}
	item := g.Player.ItemNamed(name)
	if item == nil {
		return types.Decision{
			Outcome: types.CouldNotReact,
			Reason:  fmt.Sprintf("You don't have a %s.", strings.ToLower(name)),
		}
	}
	room := g.CurrentRoom()
	if room == nil {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "There is nowhere to drop that."}
	}
	g.Player.RemoveItem(item)
	room.AddItem(item)
	return types.Decision{
		Outcome: types.CouldReact,
		Reason:  fmt.Sprintf("You drop the %s.", item.Name),
	}
}

func resolveTake(g *world.Game, name string) types.Decision {
	room := g.CurrentRoom()
	if room == nil {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "There is nothing here to take."}
	}

	var item *world.Item
	if name == "" {
		// Default to the room's only takeable item.
		takeable := room.TakeableItems()
		if len(takeable) != 1 {
			return types.Decision{Outcome: types.CouldNotReact, Reason: "Take what?"}
		}
		item = takeable[0]
	} else {
		item = room.ItemNamed(name)
		if item == nil {
			return types.Decision{
				Outcome: types.CouldNotReact,
				Reason:  fmt.Sprintf("There is no %s here.", strings.ToLower(name)),
			}
		}
		if !item.Takeable {
			return types.Decision{
				Outcome: types.CouldNotReact,
				Reason:  fmt.Sprintf("You can't take the %s.", item.Name),
			}
		}
	}

	room.RemoveItem(item)
	g.Player.AddItem(item)
	return types.Decision{
		Outcome: types.CouldReact,
		Reason:  fmt.Sprintf("You take the %s.", item.Name),
	}
}

func resolveTalk(g *world.Game, phrase string) types.Decision {
	room := g.CurrentRoom()
	if room == nil {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "There is no one to talk to."}
	}

	// Accept an optional leading "TO ".
	if len(phrase) >= 3 && strings.EqualFold(phrase[:3], "TO ") {
		phrase = strings.TrimSpace(phrase[3:])
	}

	var npc *world.NPC
	if phrase == "" {
		// Default to the room's only living, visible character.
		living := room.LivingVisibleCharacters()
		switch len(living) {
		case 0:
			return types.Decision{Outcome: types.CouldNotReact, Reason: "There is no one to talk to."}
		case 1:
			npc = living[0]
		default:
			return types.Decision{Outcome: types.CouldNotReact, Reason: "Talk to whom?"}
		}
	} else {
		npc = room.CharacterNamed(phrase)
		if npc == nil {
			// Something by that name but not talkable, or no one at all?
			if room.ItemNamed(phrase) != nil || g.Player.ItemNamed(phrase) != nil {
				return types.Decision{
					Outcome: types.CouldNotReact,
					Reason:  fmt.Sprintf("You can't talk to the %s.", strings.ToLower(phrase)),
				}
			}
			return types.Decision{Outcome: types.CouldNotReact, Reason: "There is no one here by that name."}
		}
		if !npc.Alive {
			return types.Decision{
				Outcome: types.CouldNotReact,
				Reason:  fmt.Sprintf("You can't talk to the %s.", strings.ToLower(phrase)),
			}
		}
	}

	line, ok := npc.Dialogue.Next()
	if !ok {
		return types.Decision{
			Outcome: types.CouldReact,
			Reason:  fmt.Sprintf("%s has nothing else to say.", npc.Name),
		}
	}
	return types.Decision{Outcome: types.CouldReact, Reason: line}
}

func resolveUse(g *world.Game, phrase string) (types.Decision, *world.InteractionResult, world.Target) {
	if phrase == "" {
		return types.Decision{Outcome: types.CouldNotReact, Reason: "Use what?"}, nil, nil
	}

	itemName, targetName := splitOn(phrase)

	// Resolve the item: player inventory first, then the current room.
	item := g.Player.ItemNamed(itemName)
	if item == nil {
		if room := g.CurrentRoom(); room != nil {
			item = room.ItemNamed(itemName)
		}
	}
	if item == nil {
		return types.Decision{
			Outcome: types.CouldNotReact,
			Reason:  fmt.Sprintf("You don't have a %s.", strings.ToLower(itemName)),
		}, nil, nil
	}

	// Resolve the target. Without an "ON" clause the item is used on itself.
	var target world.Target = item
	if targetName != "" {
		target = findTarget(g, targetName)
		if target == nil {
			return types.Decision{
				Outcome: types.CouldNotReact,
				Reason:  fmt.Sprintf("There is no %s here.", strings.ToLower(targetName)),
			}, nil, nil
		}
	}

	res := world.Use(item, target)
	outcome := types.CouldReact
	if res.Effect == types.SelfContained {
		outcome = types.SelfContainedReaction
	}
	return types.Decision{Outcome: outcome, Reason: res.Description}, &res, target
}

// splitOn splits a USE object phrase on the literal " ON " into the item name
// and target name. Without the literal, the whole phrase is the item name.
func splitOn(phrase string) (item, target string) {
	upper := strings.ToUpper(phrase)
	if i := strings.Index(upper, " ON "); i >= 0 {
		return strings.TrimSpace(phrase[:i]), strings.TrimSpace(phrase[i+4:])
	}
	return phrase, ""
}

// findTarget resolves a USE target name: the ME/ROOM literals, then a scoped
// lookup across the player, the inventory, the current room, and the room's
// contents.
func findTarget(g *world.Game, name string) world.Target {
	upper := strings.ToUpper(name)
	room := g.CurrentRoom()

	if upper == "ME" || g.Player.NameMatches(name) {
		return g.Player
	}
	if room != nil && (upper == "ROOM" || strings.EqualFold(room.Name, name)) {
		return room
	}
	if item := g.Player.ItemNamed(name); item != nil {
		return item
	}
	if room != nil {
		if item := room.ItemNamed(name); item != nil {
			return item
		}
		if npc := room.CharacterNamed(name); npc != nil {
			return npc
		}
	}
	return nil
}

// findCommand searches the custom commands of every in-scope object: the
// player, the player's items, the current room, and the room's items and
// characters. First match wins.
func findCommand(g *world.Game, verb string) *world.Command {
	scopes := [][]*world.Command{g.Player.Commands}
	for _, it := range g.Player.Items {
		scopes = append(scopes, it.Commands)
	}
	if room := g.CurrentRoom(); room != nil {
		scopes = append(scopes, room.Commands)
		for _, it := range room.Items {
			scopes = append(scopes, it.Commands)
		}
		for _, c := range room.Characters {
			scopes = append(scopes, c.Commands)
		}
	}
	for _, cmds := range scopes {
		for _, cmd := range cmds {
			if cmd.Matches(verb) {
				return cmd
			}
		}
	}
	return nil
}
