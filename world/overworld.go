package world

import "fmt"

// Overworld owns the regions and the current-region cursor.
type Overworld struct {
	Name string
	Desc Description

	regions []*Region
	current int
}

// NewOverworld builds an overworld with no regions.
func NewOverworld(name string, desc Description) *Overworld {
	return &Overworld{Name: name, Desc: desc}
}

// AddRegion appends a region. The first region added becomes current.
func (o *Overworld) AddRegion(regions ...*Region) {
	o.regions = append(o.regions, regions...)
}

// Regions returns the regions in insertion order.
func (o *Overworld) Regions() []*Region {
	return o.regions
}

// Current returns the current region, or nil for an empty overworld.
func (o *Overworld) Current() *Region {
	if o.current < 0 || o.current >= len(o.regions) {
		return nil
	}
	return o.regions[o.current]
}

// CurrentIndex returns the current-region cursor.
func (o *Overworld) CurrentIndex() int {
	return o.current
}

// SetCurrent moves the cursor by index.
func (o *Overworld) SetCurrent(i int) error {
	if i < 0 || i >= len(o.regions) {
		return fmt.Errorf("overworld %s has no region at index %d", o.Name, i)
	}
	o.current = i
	return nil
}

// SwitchTo moves the cursor to the named region.
func (o *Overworld) SwitchTo(name string) error {
	for i, r := range o.regions {
		if r.Name == name {
			o.current = i
			return nil
		}
	}
	return fmt.Errorf("overworld %s has no region named %q", o.Name, name)
}
