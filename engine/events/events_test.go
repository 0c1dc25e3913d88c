package events

import "testing"

func TestNew(t *testing.T) {
	e := New(PlayerDied, "cause", "curse", "room", "Beach")
	if e.Type != PlayerDied {
		t.Errorf("Type = %q", e.Type)
	}
	if e.Data["cause"] != "curse" || e.Data["room"] != "Beach" {
		t.Errorf("Data = %v", e.Data)
	}

	// A dangling key is dropped rather than paired with nothing.
	e = New(ItemTaken, "item")
	if len(e.Data) != 0 {
		t.Errorf("Data = %v, want empty", e.Data)
	}
}

func TestFind(t *testing.T) {
	evts := []Event{
		New(ItemTaken, "item", "Torch"),
		New(PlayerDied, "cause", "curse"),
	}

	if e, ok := Find(evts, PlayerDied); !ok || e.Data["cause"] != "curse" {
		t.Errorf("Find(PlayerDied) = %v, %v", e, ok)
	}
	if _, ok := Find(evts, SessionCompleted); ok {
		t.Error("Find matched an absent type")
	}
	if _, ok := Find(nil, PlayerDied); ok {
		t.Error("Find matched in an empty slice")
	}
}
