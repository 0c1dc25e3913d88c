package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/persist"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Wayfarer TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width       int
	height      int
	ready       bool
	trace       bool
	quitting    bool
	lastCmd     string
	defaultSlot string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// persistDoneMsg arrives when a background save or load has finished.
type persistDoneMsg struct {
	isLoad bool
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, defaultSlot string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	if defaultSlot == "" {
		defaultSlot = "quicksave"
	}
	return Model{
		engine:      eng,
		input:       ti,
		history:     NewHistory(100),
		defaultSlot: defaultSlot,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defaultSlot string) error {
	m := New(eng, defaultSlot)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		lines = append(lines, m.engine.Game.Name)
		lines = append(lines, "")
		if intro := m.engine.Game.Desc.Render(); intro != "" {
			lines = append(lines, intro)
			lines = append(lines, "")
		}
		lines = append(lines, parser.DescribeRoom(m.engine.Game))
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)

	case persistDoneMsg:
		lines := m.engine.Settle()
		if msg.isLoad {
			lines = append(lines, parser.DescribeRoom(m.engine.Game))
		}
		m = m.appendOutput(gameOutputMsg{lines: lines, isSystem: true})
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}
	if m.engine.Busy() {
		m = m.appendOutput(gameOutputMsg{
			input: input, lines: []string{"Still saving or loading, one moment."}, isSystem: true,
		})
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, cmd, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}

	// Game command.
	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines, a follow-up
// command for async operations, and the quit flag.
func (m *Model) handleMeta(input string) ([]string, tea.Cmd, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, nil, true

	case "/save":
		lines, followUp := m.cmdSave(arg)
		return lines, followUp, false

	case "/load":
		lines, followUp := m.cmdLoad(arg)
		return lines, followUp, false

	case "/saves":
		return m.cmdSaves(), nil, false

	case "/new":
		m.engine.NewGame()
		return []string{"New game started.", parser.DescribeRoom(m.engine.Game)}, nil, false

	case "/help":
		return m.cmdHelp(), nil, false

	case "/state":
		return m.cmdState(), nil, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, nil, false
		}
		return []string{"Trace output disabled."}, nil, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, nil, false
	}
}

// awaitPersist turns a persistence handle into a message once it settles.
func awaitPersist(op *persist.Op, isLoad bool) tea.Cmd {
	return func() tea.Msg {
		<-op.Done()
		return persistDoneMsg{isLoad: isLoad}
	}
}

func (m *Model) cmdSave(name string) ([]string, tea.Cmd) {
	if name == "" {
		name = m.defaultSlot
	}
	op, err := m.engine.Save(name)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}, nil
	}
	return []string{fmt.Sprintf("Saving to %s...", name)}, awaitPersist(op, false)
}

func (m *Model) cmdLoad(name string) ([]string, tea.Cmd) {
	if name == "" {
		name = m.defaultSlot
	}
	op, err := m.engine.Load(name)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}, nil
	}
	return []string{fmt.Sprintf("Loading %s...", name)}, awaitPersist(op, true)
}

func (m *Model) cmdSaves() []string {
	slots, err := m.engine.Saves()
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(slots) == 0 {
		return []string{"No saves yet."}
	}
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, fmt.Sprintf("%-20s turn %-5d %s", slot.Name, slot.Turns, slot.SavedAt.Format("2006-01-02 15:04")))
	}
	return lines
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  — Save game (default: " + m.defaultSlot + ")",
		"  /load [name]  — Load game (default: " + m.defaultSlot + ")",
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
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	g := m.engine.Game
	output := []string{
		fmt.Sprintf("Turn: %d", m.engine.Turns),
		fmt.Sprintf("Session: %s", m.engine.Session()),
	}
	if region := g.CurrentRegion(); region != nil {
		output = append(output, fmt.Sprintf("Region: %s", region.Name))
	}
	if room := g.CurrentRoom(); room != nil {
		output = append(output, fmt.Sprintf("Room: %s", room.Name))
	}
	var carried []string
	for _, item := range g.Player.Items {
		carried = append(carried, item.Name)
	}
	output = append(output,
		fmt.Sprintf("Inventory: %v", carried),
		fmt.Sprintf("Alive: %v  Completed: %v", g.Player.Alive, g.Completed()),
	)
	return output
}

func (m *Model) formatTrace(result engine.Result) []string {
	lines := []string{fmt.Sprintf("[trace] Outcome: %s", result.Decision.Outcome)}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
