package world

import (
	"fmt"

	"github.com/nathoo/wayfarer/types"
)

// RoomHandle indexes a room in its region's arena. Handles are stable for the
// life of the region and cheap to compare.
type RoomHandle int

// NoRoom is the zero handle for "no destination".
const NoRoom RoomHandle = -1

// Region owns an arena of rooms arranged on a rectangular grid, plus the
// current-room cursor.
type Region struct {
	Name string
	Desc Description

	rooms   []*Room
	grid    [][]RoomHandle
	current RoomHandle
}

// NewRegion builds an empty region with a width×height grid.
func NewRegion(name string, desc Description, width, height int) *Region {
	grid := make([][]RoomHandle, height)
	for y := range grid {
		grid[y] = make([]RoomHandle, width)
		for x := range grid[y] {
			grid[y][x] = NoRoom
		}
	}
	return &Region{Name: name, Desc: desc, grid: grid, current: NoRoom}
}

// AddRoom places a room in the arena and returns its handle. The first room
// added becomes the current room.
func (r *Region) AddRoom(room *Room) RoomHandle {
	room.region = r.Name
	r.rooms = append(r.rooms, room)
	h := RoomHandle(len(r.rooms) - 1)
	if r.current == NoRoom {
		r.current = h
	}
	return h
}

// PlaceRoom adds a room and records it at the given grid cell.
func (r *Region) PlaceRoom(x, y int, room *Room) (RoomHandle, error) {
	if y < 0 || y >= len(r.grid) || x < 0 || x >= len(r.grid[y]) {
		return NoRoom, fmt.Errorf("grid cell (%d,%d) outside region %s", x, y, r.Name)
	}
	if r.grid[y][x] != NoRoom {
		return NoRoom, fmt.Errorf("grid cell (%d,%d) already occupied in region %s", x, y, r.Name)
	}
	h := r.AddRoom(room)
	r.grid[y][x] = h
	return h, nil
}

// RoomAt returns the room placed at a grid cell, or nil.
func (r *Region) RoomAt(x, y int) *Room {
	if y < 0 || y >= len(r.grid) || x < 0 || x >= len(r.grid[y]) {
		return nil
	}
	return r.Room(r.grid[y][x])
}

// Room dereferences a handle. Out-of-range handles return nil.
func (r *Region) Room(h RoomHandle) *Room {
	if h < 0 || int(h) >= len(r.rooms) {
		return nil
	}
	return r.rooms[h]
}

// Rooms returns the arena in handle order.
func (r *Region) Rooms() []*Room {
	return r.rooms
}

// Current returns the current room, or nil for an empty region.
func (r *Region) Current() *Room {
	return r.Room(r.current)
}

// CurrentHandle returns the current-room cursor.
func (r *Region) CurrentHandle() RoomHandle {
	return r.current
}

// SetCurrent moves the cursor. Out-of-range handles are rejected.
func (r *Region) SetCurrent(h RoomHandle) error {
	if r.Room(h) == nil {
		return fmt.Errorf("region %s has no room with handle %d", r.Name, h)
	}
	r.current = h
	return nil
}

// Connect links two rooms with an exit. When both is set, a matching exit is
// created in the opposite direction.
func (r *Region) Connect(from RoomHandle, d types.Direction, to RoomHandle, locked, both bool) error {
	src, dst := r.Room(from), r.Room(to)
	if src == nil || dst == nil {
		return fmt.Errorf("connect %v in region %s: unknown room handle", d, r.Name)
	}
	src.Exits[d] = &Exit{Direction: d, Locked: locked, Visible: true, To: to}
	if both {
		dst.Exits[d.Opposite()] = &Exit{Direction: d.Opposite(), Locked: locked, Visible: true, To: from}
	}
	return nil
}

// Move walks the current-room cursor through the exit in the given direction.
// It fails when the current room has no exit that way or the exit is locked.
func (r *Region) Move(d types.Direction) error {
	cur := r.Current()
	if cur == nil {
		return fmt.Errorf("region %s has no current room", r.Name)
	}
	exit, ok := cur.Exits[d]
	if !ok {
		return fmt.Errorf("There is no exit from this room to the %s.", d)
	}
	if exit.Locked {
		return fmt.Errorf("The exit to the %s is locked.", d)
	}
	if r.Room(exit.To) == nil {
		return fmt.Errorf("exit %v of room %s points at a missing room", d, cur.Name)
	}
	r.current = exit.To
	return nil
}
