package world

// CompletionFunc is the pluggable predicate evaluated after every successful
// turn; returning true marks the session complete.
type CompletionFunc func(*Game) bool

// Game is the root of the world graph: the player, the overworld, and the
// completion predicate.
type Game struct {
	Name      string
	Desc      Description
	Player    *Player
	Overworld *Overworld
	Complete  CompletionFunc

	// Rebind repoints the shared context this graph's behavior closures act
	// through at a replacement graph. Authoring layers whose closures share
	// one context set it; the behavior transfer after a load calls it so
	// transferred closures read and mutate the graph that replaced this one.
	Rebind func(*Game)

	completed bool
}

// NewGame builds the root node.
func NewGame(name string, desc Description, player *Player, overworld *Overworld) *Game {
	return &Game{Name: name, Desc: desc, Player: player, Overworld: overworld}
}

// CurrentRegion returns the overworld's current region.
func (g *Game) CurrentRegion() *Region {
	if g.Overworld == nil {
		return nil
	}
	return g.Overworld.Current()
}

// CurrentRoom returns the current room of the current region.
func (g *Game) CurrentRoom() *Room {
	region := g.CurrentRegion()
	if region == nil {
		return nil
	}
	return region.Current()
}

// EvaluateCompletion runs the completion predicate and latches the result: a
// completed session stays completed.
func (g *Game) EvaluateCompletion() bool {
	if g.completed {
		return true
	}
	if g.Complete != nil && g.Complete(g) {
		g.completed = true
	}
	return g.completed
}

// Completed reports whether the session has been marked complete.
func (g *Game) Completed() bool {
	return g.completed
}

// SetCompleted overwrites the completion latch. Used when restoring a save.
func (g *Game) SetCompleted(v bool) {
	g.completed = v
}
