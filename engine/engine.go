// Package engine wires the parser, the effect applier, the completion
// evaluator and the persistence coordinator into a single synchronous turn
// loop. The loop owns all world mutation; save and load run on one background
// worker, and the loop suspends on the pending handle while one is in flight.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/wayfarer/engine/effects"
	"github.com/nathoo/wayfarer/engine/events"
	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/persist"
	"github.com/nathoo/wayfarer/engine/reattach"
	"github.com/nathoo/wayfarer/types"
	"github.com/nathoo/wayfarer/world"
)

// Factory is the author-supplied world constructor. Every call is one
// authoring run: a fresh graph with freshly bound behavior and an identical
// id sequence.
type Factory func() *world.Game

// Result is the output of one turn.
type Result struct {
	Decision types.Decision
	Output   []string
	Events   []events.Event
}

// Engine holds the live world and the turn loop state.
type Engine struct {
	Game  *world.Game
	Turns int

	factory Factory
	store   *persist.Store
	worker  *persist.Worker
	session string
	pending *persist.Op
}

// New builds an engine and authors the initial world.
func New(factory Factory, store *persist.Store) *Engine {
	e := &Engine{
		factory: factory,
		store:   store,
		worker:  persist.NewWorker(),
	}
	e.NewGame()
	return e
}

// NewGame replaces the world wholesale with a fresh authoring run and starts
// a new session lineage.
func (e *Engine) NewGame() {
	e.Game = e.factory()
	e.Turns = 0
	e.session = uuid.NewString()
}

// Session returns the current session lineage id.
func (e *Engine) Session() string {
	return e.session
}

// Step processes one player command.
func (e *Engine) Step(input string) Result {
	var result Result

	// Suspend until any in-flight persistence settles; the world must not be
	// touched during the handoff window.
	result.Output = append(result.Output, e.Settle()...)

	if !e.Game.Player.Alive {
		result.Decision = types.Decision{Outcome: types.CouldNotReact, Reason: "You are dead."}
		result.Output = append(result.Output, "You are dead. Start a new game or load a save.")
		return result
	}
	if e.Game.Completed() {
		result.Decision = types.Decision{Outcome: types.CouldNotReact, Reason: "The game is complete."}
		result.Output = append(result.Output, "The game is complete. Start a new game or load a save.")
		return result
	}

	decision, interaction, target := parser.Resolve(input, e.Game)
	result.Decision = decision
	if decision.Reason != "" {
		result.Output = append(result.Output, decision.Reason)
	}

	if interaction != nil && decision.Outcome != types.CouldNotReact {
		evts, err := effects.Apply(e.Game, *interaction, target)
		if err != nil {
			result.Output = append(result.Output, err.Error())
		}
		result.Events = append(result.Events, evts...)
		if _, died := events.Find(evts, events.PlayerDied); died {
			result.Output = append(result.Output, "You have died.")
		}
	}

	if decision.Outcome != types.CouldNotReact {
		e.Turns++
		wasComplete := e.Game.Completed()
		if e.Game.EvaluateCompletion() && !wasComplete {
			result.Events = append(result.Events, events.New(events.SessionCompleted, "game", e.Game.Name))
			result.Output = append(result.Output, fmt.Sprintf("You have completed %s!", e.Game.Name))
		}
	}

	return result
}

// Save snapshots the session and hands the write to the background worker.
// The document is captured here, on the turn-loop side, so the worker never
// reads the live world for a save.
func (e *Engine) Save(slot string) (*persist.Op, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no save store configured")
	}
	if e.pending != nil {
		return nil, fmt.Errorf("a save or load is already in progress")
	}
	doc := persist.Capture(e.Game, e.session, e.Turns)
	op := e.worker.Submit(func() (persist.Outcome, error) {
		if err := e.store.Save(slot, doc); err != nil {
			return persist.Outcome{}, err
		}
		return persist.Outcome{Message: fmt.Sprintf("Game saved to %s.", slot)}, nil
	})
	e.pending = op
	return op, nil
}

// Load reconstructs a session on the background worker: read the document,
// snapshot the live graph's behavior, re-run the authoring factory, overwrite
// the fresh graph's plain data, and transfer behavior across by identity key.
// The live world is swapped only when the whole load succeeded.
func (e *Engine) Load(slot string) (*persist.Op, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no save store configured")
	}
	if e.pending != nil {
		return nil, fmt.Errorf("a save or load is already in progress")
	}
	live := e.Game
	op := e.worker.Submit(func() (persist.Outcome, error) {
		doc, err := e.store.Load(slot)
		if err != nil {
			return persist.Outcome{}, err
		}
		snap := reattach.Take(live)
		fresh := e.factory()
		if err := persist.Overwrite(fresh, doc); err != nil {
			return persist.Outcome{}, err
		}
		snap.Transfer(fresh)
		return persist.Outcome{
			Message: fmt.Sprintf("Game loaded from %s (turn %d).", slot, doc.Game.Turns),
			Game:    fresh,
			Turns:   doc.Game.Turns,
			Session: doc.Game.Session,
		}, nil
	})
	e.pending = op
	return op, nil
}

// Settle waits for the in-flight persistence operation, applies its outcome
// (swapping in a loaded world), and returns its messages. With nothing in
// flight it returns nil immediately.
func (e *Engine) Settle() []string {
	if e.pending == nil {
		return nil
	}
	outcome, err := e.pending.Wait()
	e.pending = nil
	if err != nil {
		return []string{fmt.Sprintf("Save/load failed: %v", err)}
	}
	if outcome.Game != nil {
		e.Game = outcome.Game
		e.Turns = outcome.Turns
		if outcome.Session != "" {
			e.session = outcome.Session
		}
	}
	if outcome.Message != "" {
		return []string{outcome.Message}
	}
	return nil
}

// Busy reports whether a persistence operation is in flight.
func (e *Engine) Busy() bool {
	return e.pending != nil
}

// Saves lists the indexed save slots.
func (e *Engine) Saves() ([]persist.SlotInfo, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no save store configured")
	}
	return e.store.List()
}

// Close shuts the worker down and releases the store.
func (e *Engine) Close() error {
	e.Settle()
	e.worker.Shutdown()
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
