package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// resolveExamine dispatches EXAMINE. The object phrase is resolved in a fixed
// order: inventory item, room item, living room character, a named exit
// direction, then the ME/ROOM/REGION/OVERWORLD literals (or the corresponding
// node's actual name). An empty phrase examines the current room.
func resolveExamine(g *world.Game, phrase string) types.Decision {
	room := g.CurrentRoom()

	if phrase == "" {
		return types.Decision{Outcome: types.CouldReact, Reason: DescribeRoom(g)}
	}

	if item := g.Player.ItemNamed(phrase); item != nil {
		return mapExamination(item.RunExamine())
	}

	if room != nil {
		if item := room.ItemNamed(phrase); item != nil && item.Visible {
			return mapExamination(item.RunExamine())
		}
		if npc := room.CharacterNamed(phrase); npc != nil && npc.Alive && npc.Visible {
			return mapExamination(npc.RunExamine())
		}
	}

	// A direction examines the exit that way. A missing or locked exit reads
	// as no exit at all, but only after the literals below get their chance.
	var noExit string
	if dir, ok := types.ParseDirection(phrase); ok {
		if room != nil {
			if exit := room.Exit(dir); exit.Usable() && exit.Visible {
				return types.Decision{
					Outcome: types.CouldReact,
					Reason:  fmt.Sprintf("There is an exit leading to the %s.", dir),
				}
			}
		}
		noExit = fmt.Sprintf("There is no exit from this room to the %s.", dir)
	}

	upper := strings.ToUpper(phrase)

	if upper == "ME" || g.Player.NameMatches(phrase) {
		return mapExamination(g.Player.RunExamine())
	}
	if room != nil && (upper == "ROOM" || strings.EqualFold(room.Name, phrase)) {
		return types.Decision{Outcome: types.CouldReact, Reason: DescribeRoom(g)}
	}
	if region := g.CurrentRegion(); region != nil && (upper == "REGION" || strings.EqualFold(region.Name, phrase)) {
		return types.Decision{Outcome: types.CouldReact, Reason: region.Desc.Render()}
	}
	if ow := g.Overworld; ow != nil && (upper == "OVERWORLD" || strings.EqualFold(ow.Name, phrase)) {
		return types.Decision{Outcome: types.CouldReact, Reason: ow.Desc.Render()}
	}

	if noExit != "" {
		return types.Decision{Outcome: types.CouldNotReact, Reason: noExit}
	}
	return types.Decision{Outcome: types.CouldNotReact, Reason: "You see nothing like that here."}
}

// mapExamination maps an examination result onto a parser decision.
func mapExamination(res types.ExaminationResult) types.Decision {
	if res.Kind == types.SelfContainedExamination {
		return types.Decision{Outcome: types.SelfContainedReaction, Reason: res.Description}
	}
	return types.Decision{Outcome: types.CouldReact, Reason: res.Description}
}

// DescribeRoom renders the current room: name, description, visible contents
// and usable exits. Front ends use it for the post-move and post-load views.
func DescribeRoom(g *world.Game) string {
	room := g.CurrentRoom()
	if room == nil {
		return "You are nowhere at all."
	}

	var b strings.Builder
	b.WriteString(room.Name)
	b.WriteString("\n")
	b.WriteString(room.Desc.Render())

	var names []string
	for _, it := range room.Items {
		if it.Visible {
			names = append(names, it.Name)
		}
	}
	for _, c := range room.Characters {
		if c.Visible && c.Alive {
			names = append(names, c.Name)
		}
	}
	if len(names) > 0 {
		b.WriteString("\nYou see: ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(".")
	}

	var dirs []string
	for _, d := range types.Directions {
		if exit, ok := room.Exits[d]; ok && exit.Visible && !exit.Locked {
			dirs = append(dirs, d.String())
		}
	}
	if len(dirs) > 0 {
		b.WriteString("\nExits: ")
		b.WriteString(strings.Join(dirs, ", "))
		b.WriteString(".")
	}

	return b.String()
}
