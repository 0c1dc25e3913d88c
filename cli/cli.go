// Package cli provides the line-oriented terminal interface: prompt, input,
// meta-command dispatch, and wrapped output.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/parser"
)

const wrapWidth = 76

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine      *engine.Engine
	In          io.Reader
	Out         io.Writer
	DefaultSlot string
	Trace       bool
	EchoInput   bool   // echo each input line after the prompt (for script playback)
	lastCmd     string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:      eng,
		In:          os.Stdin,
		Out:         os.Stdout,
		DefaultSlot: "quicksave",
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if intro := c.Engine.Game.Desc.Render(); intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	c.printLine(parser.DescribeRoom(c.Engine.Game))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/new":
		c.Engine.NewGame()
		c.printSystem("New game started.")
		c.printLine(parser.DescribeRoom(c.Engine.Game))

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = c.DefaultSlot
	}
	if _, err := c.Engine.Save(name); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	for _, msg := range c.Engine.Settle() {
		c.printSystem(msg)
	}
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = c.DefaultSlot
	}
	if _, err := c.Engine.Load(name); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	for _, msg := range c.Engine.Settle() {
		c.printSystem(msg)
	}
	c.printLine(parser.DescribeRoom(c.Engine.Game))
}

func (c *CLI) cmdSaves() {
	slots, err := c.Engine.Saves()
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saves yet.")
		return
	}
	for _, slot := range slots {
		c.printLine(fmt.Sprintf("  %-20s turn %-5d %s", slot.Name, slot.Turns, slot.SavedAt.Format("2006-01-02 15:04")))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: " + c.DefaultSlot + ")",
		"  /load [name]  — Load game (default: " + c.DefaultSlot + ")",
		"  /saves        — List save slots",
		"  /new          — Start a new game",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  examine <thing>       — Look closely at something (examine alone: the room)",
		"  north/south/east/west — Move (or just n/s/e/w)",
		"  take <item>           — Pick something up",
		"  drop <item>           — Put something down",
		"  use <item> on <thing> — Use an item on something",
		"  talk [to <npc>]       — Talk to someone",
		"  again (g)             — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	g := c.Engine.Game
	c.printSystem(fmt.Sprintf("Turn: %d", c.Engine.Turns))
	c.printSystem(fmt.Sprintf("Session: %s", c.Engine.Session()))
	if region := g.CurrentRegion(); region != nil {
		c.printSystem(fmt.Sprintf("Region: %s", region.Name))
	}
	if room := g.CurrentRoom(); room != nil {
		c.printSystem(fmt.Sprintf("Room: %s", room.Name))
	}
	var carried []string
	for _, item := range g.Player.Items {
		carried = append(carried, item.Name)
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", carried))
	c.printSystem(fmt.Sprintf("Alive: %v  Completed: %v", g.Player.Alive, g.Completed()))
}

func (c *CLI) printTrace(result engine.Result) {
	c.printSystem(fmt.Sprintf("[trace] Outcome: %s", result.Decision.Outcome))
	for _, e := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
}

func (c *CLI) printResult(result engine.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, wordwrap.String(text, wrapWidth))
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
