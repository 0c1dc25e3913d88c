package world

// Rebuild constructors recreate nodes from persisted data. They are used when
// a save document references an object the re-authored graph no longer
// produces (behavior created it at runtime). Every rebuilt node carries the
// harmless default behavior, never a nil callback.

// RebuildItem constructs an item from persisted data.
func RebuildItem(id, name, description string, visible, takeable bool, morphTag string) *Item {
	it := &Item{
		Examinable: Examinable{
			id:      id,
			Name:    name,
			Desc:    StaticDescription(description),
			Visible: visible,
			Examine: DescribeSelf,
		},
		Takeable: takeable,
		MorphTag: morphTag,
	}
	return it
}

// RebuildNPC constructs a non-playable character from persisted data.
func RebuildNPC(id, name, description string, visible, alive bool) *NPC {
	n := &NPC{
		Character: Character{
			Examinable: Examinable{
				id:      id,
				Name:    name,
				Desc:    StaticDescription(description),
				Visible: visible,
				Examine: DescribeSelf,
			},
			Alive: alive,
		},
	}
	return n
}

// RebuildCommand constructs a custom command from persisted data with a no-op
// action.
func RebuildCommand(word, description string, visible bool) *Command {
	return &Command{Word: word, Description: description, Visible: visible}
}
