package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/wayfarer/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// current region and room, usable exits, inventory, and turn count.
func (m Model) renderStatusBar() string {
	g := m.engine.Game

	location := "Nowhere"
	var dirs []string
	if room := g.CurrentRoom(); room != nil {
		location = room.Name
		if region := g.CurrentRegion(); region != nil {
			location = region.Name + ": " + room.Name
		}
		for _, d := range types.Directions {
			if exit := room.Exit(d); exit.Usable() && exit.Visible {
				dirs = append(dirs, d.String()[:1])
			}
		}
	}
	exitStr := strings.Join(dirs, ",")

	left := fmt.Sprintf(" %s | Exits: %s", location, exitStr)
	right := fmt.Sprintf("T:%d ", m.engine.Turns)
	if m.engine.Busy() {
		right = "busy " + right
	}

	// Show inventory items if they fit, otherwise just count.
	if len(g.Player.Items) > 0 {
		var names []string
		for _, item := range g.Player.Items {
			names = append(names, item.Name)
		}
		candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s", len(g.Player.Items), right)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
