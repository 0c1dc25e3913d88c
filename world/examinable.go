// Package world holds the mutable world graph: the overworld, its regions and
// rooms, the items and characters inside them, and the author-supplied
// behavior attached to each node. Plain data on these nodes is what the
// persistence layer writes out; behavior is reattached after a load by the
// engine's reattachment pass.
package world

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/types"
)

// IDGenerator produces sequence-generated object ids. One generator is owned
// by one authoring run; running the same authoring code against a fresh
// generator yields the identical id sequence, which is what makes ids usable
// as reattachment keys.
type IDGenerator struct {
	n int
}

// NewIDGenerator returns a generator starting at the beginning of the sequence.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next id in the sequence.
func (g *IDGenerator) Next() string {
	g.n++
	return fmt.Sprintf("obj-%04d", g.n)
}

// Description is descriptive text for a world node. Text is plain persisted
// data. Variant, when set, is author behavior that supersedes Text, such as a
// room whose description changes with world state.
type Description struct {
	Text    string
	Variant func() string
}

// StaticDescription returns a fixed-text description.
func StaticDescription(text string) Description {
	return Description{Text: text}
}

// ConditionalDescription returns a description computed by the given predicate
// on every render.
func ConditionalDescription(pick func() string) Description {
	return Description{Variant: pick}
}

// Render returns the effective description text.
func (d Description) Render() string {
	if d.Variant != nil {
		return d.Variant()
	}
	return d.Text
}

// ExamineFunc is author behavior run when a node is examined.
type ExamineFunc func(*Examinable) types.ExaminationResult

// Examinable is the base of every item and character: identity, descriptive
// data, visibility, and the examination behavior.
type Examinable struct {
	id      string
	Name    string
	Desc    Description
	Visible bool
	Examine ExamineFunc
}

// NewExaminable builds the base with a freshly generated id and the default
// examination behavior (return the description).
func NewExaminable(gen *IDGenerator, name string, desc Description, visible bool) Examinable {
	return Examinable{
		id:      gen.Next(),
		Name:    name,
		Desc:    desc,
		Visible: visible,
		Examine: DescribeSelf,
	}
}

// DescribeSelf is the default examination behavior: hand back the node's
// description.
func DescribeSelf(e *Examinable) types.ExaminationResult {
	return types.ExaminationResult{
		Description: e.Desc.Render(),
		Kind:        types.DescriptionReturned,
	}
}

// ID returns the node's generated id.
func (e *Examinable) ID() string {
	return e.id
}

// SetID overwrites the generated id. Used only when rebuilding a graph from a
// save document.
func (e *Examinable) SetID(id string) {
	e.id = id
}

// RunExamine dispatches to the node's examination behavior, falling back to
// DescribeSelf so an examination never hits a nil callback.
func (e *Examinable) RunExamine() types.ExaminationResult {
	if e.Examine == nil {
		return DescribeSelf(e)
	}
	return e.Examine(e)
}

// NameMatches reports whether the node's name equals the query,
// case-insensitively. Matching is always exact, never fuzzy.
func (e *Examinable) NameMatches(query string) bool {
	return strings.EqualFold(e.Name, query)
}
