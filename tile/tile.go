// Package tile builds a placed tile's own region geometry: given a catalog
// entry, a board coordinate, and a rotation count, it derives the globally
// oriented regions and perimeter edges the region tracker and validator
// consume.
package tile

import (
	"fmt"

	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
)

// Meeple is a follower placed by a player on one of a tile's regions.
type Meeple struct {
	Owner       string
	RegionIndex int
}

// Instance is a catalog entry committed to a board coordinate at a given
// rotation, with an optional meeple.
type Instance struct {
	Entry      *catalog.Entry
	Coordinate geometry.Coordinate
	Rotations  int // quarter-turns clockwise, 0-3
	Meeple     *Meeple
}

// OwnRegion is one of a placed tile's regions, translated into the global
// frame: its kind, the region's index within Entry.Regions (stable across
// rotation, used as the meeple placement key), and the global directions it
// touches.
type OwnRegion struct {
	Kind         catalog.RegionKind
	RegionIndex  int
	Directions   []geometry.Direction
	MeepleAnchor *geometry.TileCoordinate
	Pennant      bool
}

// OwnConnectedRegions returns t's regions with local directions rotated
// into the global frame, ready for the region tracker to merge against
// neighboring tiles.
func (t Instance) OwnConnectedRegions() []OwnRegion {
	out := make([]OwnRegion, 0, len(t.Entry.Regions))
	for i, r := range t.Entry.Regions {
		global := make([]geometry.Direction, len(r.Edges))
		for j, d := range r.Edges {
			global[j] = geometry.Rotate(d, t.Rotations)
		}
		anchor := r.MeepleAnchor
		if anchor != nil {
			rotated := geometry.RotateInTile(*anchor, t.Rotations)
			anchor = &rotated
		}
		out = append(out, OwnRegion{
			Kind:         r.Kind,
			RegionIndex:  i,
			Directions:   global,
			MeepleAnchor: anchor,
			Pennant:      r.Pennant,
		})
	}
	return out
}

// ListRegionsOnSide returns the region kinds present on one of the tile's
// four sides (the three perimeter samples belonging to that side), in
// global orientation, used by the validator to zip a new tile's side
// against its neighbor's opposite side.
func (t Instance) ListRegionsOnSide(side geometry.Side) [3]catalog.RegionKind {
	perim := t.Entry.PerimeterRegionKinds(t.Rotations)
	var out [3]catalog.RegionKind
	base := int(side) * 3
	for i := 0; i < 3; i++ {
		out[i] = perim[base+i]
	}
	return out
}

// RegionKindAt returns the region kind touching global direction d.
func (t Instance) RegionKindAt(d geometry.Direction) catalog.RegionKind {
	perim := t.Entry.PerimeterRegionKinds(t.Rotations)
	return perim[d]
}

// HasOccupiedCloister reports whether t carries a placed meeple on its
// Cloister region (only meaningful for entries with a Cloister region).
func (t Instance) HasOccupiedCloister() bool {
	if t.Meeple == nil {
		return false
	}
	if t.Meeple.RegionIndex < 0 || t.Meeple.RegionIndex >= len(t.Entry.Regions) {
		return false
	}
	return t.Entry.Regions[t.Meeple.RegionIndex].Kind == catalog.Cloister
}

// ValidateMeeplePlacement checks that t's meeple, if any, references a real,
// non-Water region index. It returns a descriptive error rather than
// panicking: unlike a kind-mismatched region merge, a bad meeple index can
// originate from caller input.
func (t Instance) ValidateMeeplePlacement() error {
	if t.Meeple == nil {
		return nil
	}
	idx := t.Meeple.RegionIndex
	if idx < 0 || idx >= len(t.Entry.Regions) {
		return fmt.Errorf("tile: meeple region index %d out of range for entry %q", idx, t.Entry.Name)
	}
	if t.Entry.Regions[idx].Kind == catalog.Water {
		return fmt.Errorf("tile: meeple cannot be placed on a Water region (entry %q)", t.Entry.Name)
	}
	return nil
}

// OppositeRiverEndDirection returns the global direction of the tile's
// other Water edge given the incoming direction a river is extended from.
// It panics if the tile is not a two-edge river tile — callers only invoke
// this after confirming the tile carries a Water region with two edges.
func (t Instance) OppositeRiverEndDirection(incoming geometry.Direction) geometry.Direction {
	water, ok := t.Entry.WaterRegion()
	if !ok || len(water.Edges) != 2 {
		panic(fmt.Sprintf("tile: OppositeRiverEndDirection called on non-two-edge-river entry %q", t.Entry.Name))
	}
	for _, d := range water.Edges {
		global := geometry.Rotate(d, t.Rotations)
		if global != incoming {
			return global
		}
	}
	panic(fmt.Sprintf("tile: incoming direction %s is not one of entry %q's water edges", incoming, t.Entry.Name))
}
