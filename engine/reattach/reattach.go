// Package reattach restores behavior after a load. Serialized state carries
// only plain data; the author-supplied callbacks live exclusively in memory.
// The protocol: snapshot the behavior of the still-live graph, rebuild a fresh
// graph by re-running the authoring code, overwrite the fresh graph's plain
// data from the save document, then pair nodes across the two graphs by
// content identity and copy behavior from old to new.
package reattach

import "github.com/nathoo/wayfarer/world"

// Snapshot is the flat, ordered list of behavior-bearing nodes collected from
// a live graph before it is replaced, plus the graph's context rebind hook.
type Snapshot struct {
	nodes  []world.Carrier
	rebind func(*world.Game)
}

// Take collects every behavior-bearing node of the live graph.
func Take(g *world.Game) Snapshot {
	return Snapshot{nodes: g.Carriers(), rebind: g.Rebind}
}

// Len returns the number of captured nodes.
func (s Snapshot) Len() int {
	return len(s.nodes)
}

// Report summarizes one transfer pass.
type Report struct {
	// Adopted counts fresh nodes that received behavior from the snapshot.
	Adopted int
	// Dropped counts snapshot nodes with no counterpart in the fresh graph
	// (structurally removed by play, e.g. a used-up item).
	Dropped int
	// Defaulted counts fresh nodes left with their freshly authored default
	// behavior because nothing in the snapshot matched them.
	Defaulted int
}

// Transfer pairs the snapshot against a freshly authored graph by identity
// key and copies behavior across every match. Fresh nodes without a match
// keep their authored defaults; after this pass no node is ever left with an
// unset callback.
func (s Snapshot) Transfer(fresh *world.Game) Report {
	freshNodes := fresh.Carriers()

	byKey := make(map[string][]world.Carrier, len(freshNodes))
	for _, node := range freshNodes {
		key := node.BehaviorKey()
		byKey[key] = append(byKey[key], node)
	}

	var rep Report
	adopted := make(map[world.Carrier]bool, len(freshNodes))
	for _, old := range s.nodes {
		matches := byKey[old.BehaviorKey()]
		found := false
		for _, target := range matches {
			if target.AdoptBehavior(old) {
				found = true
				if !adopted[target] {
					adopted[target] = true
					rep.Adopted++
				}
			}
		}
		if !found {
			rep.Dropped++
		}
	}
	rep.Defaulted = len(freshNodes) - rep.Adopted

	// Transferred closures act through their source graph's shared context.
	// Repoint it at the fresh graph, and carry the hook forward so the next
	// transfer can repoint it again.
	if s.rebind != nil {
		s.rebind(fresh)
		fresh.Rebind = s.rebind
	}
	return rep
}
