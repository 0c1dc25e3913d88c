// Package types defines the shared verdict and result types for the Wayfarer
// engine. This package contains only type definitions and their string forms,
// no world logic.
package types

import "strings"

// Direction is a compass direction a room exit can face.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists all directions in a stable order.
var Directions = []Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return "Unknown"
}

// Opposite returns the facing direction, used when linking rooms both ways.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// ParseDirection matches a direction letter ("n") or full name ("north"),
// case-insensitively. Returns the direction and whether the word matched.
func ParseDirection(word string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(word)) {
	case "N", "NORTH":
		return North, true
	case "S", "SOUTH":
		return South, true
	case "E", "EAST":
		return East, true
	case "W", "WEST":
		return West, true
	}
	return 0, false
}

// Outcome classifies how the parser handled a command.
type Outcome int

const (
	// CouldReact: the command was understood and produced a generic response.
	CouldReact Outcome = iota
	// CouldNotReact: the command could not be acted on; Reason says why.
	CouldNotReact
	// SelfContainedReaction: behavior handled the whole turn itself and no
	// generic message should be printed.
	SelfContainedReaction
)

func (o Outcome) String() string {
	switch o {
	case CouldReact:
		return "CouldReact"
	case CouldNotReact:
		return "CouldNotReact"
	case SelfContainedReaction:
		return "SelfContainedReaction"
	}
	return "Unknown"
}

// Decision is the parser's verdict on one command.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Effect is the typed outcome classification of an interaction. It drives the
// effect applier's mutation table.
type Effect int

const (
	// NoEffect: nothing to do at the applier layer.
	NoEffect Effect = iota
	// ItemUsedUp: remove the acted-upon item from whichever container holds it.
	ItemUsedUp
	// ItemMorphed: the behavior already swapped the item in place.
	ItemMorphed
	// FatalEffect: the player dies; the result description is the cause.
	FatalEffect
	// TargetUsedUp: remove the target from its room, else from the inventory.
	TargetUsedUp
	// SelfContained: behavior performed its own state change, if any.
	SelfContained
)

func (e Effect) String() string {
	switch e {
	case NoEffect:
		return "NoEffect"
	case ItemUsedUp:
		return "ItemUsedUp"
	case ItemMorphed:
		return "ItemMorphed"
	case FatalEffect:
		return "FatalEffect"
	case TargetUsedUp:
		return "TargetUsedUp"
	case SelfContained:
		return "SelfContained"
	}
	return "Unknown"
}

// ExaminationKind classifies an examination result.
type ExaminationKind int

const (
	// DescriptionReturned: the description should be printed as the response.
	DescriptionReturned ExaminationKind = iota
	// SelfContainedExamination: behavior produced its own output.
	SelfContainedExamination
)

// ExaminationResult is the outcome of examining a world node.
type ExaminationResult struct {
	Description string
	Kind        ExaminationKind
}
