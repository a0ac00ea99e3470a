// Package region implements the connected region tracker: per-tile regions
// are merged across tile boundaries as tiles are placed, and the result
// tracks each region's membership, closure state, and adjacency to other
// region kinds for field scoring.
package region

import (
	"fmt"

	"github.com/google/uuid"

	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
	"carcassonne-core/tile"
)

// PlacedTileEdge is one directed perimeter sample of a placed tile: the
// tile's board coordinate plus the global direction of the sample.
type PlacedTileEdge struct {
	Coordinate geometry.Coordinate
	Direction  geometry.Direction
}

// OpposingTileEdge returns the edge on the neighboring tile that shares e's
// boundary: the neighbor's coordinate in e's direction, and the sub-edge on
// that neighbor's side that faces back toward e (a reflection, not a
// rotation, since a sample near one corner of a side meets the sample near
// the matching corner of the opposite side).
func (e PlacedTileEdge) OpposingTileEdge() PlacedTileEdge {
	return PlacedTileEdge{
		Coordinate: geometry.AdjacentInDirection(e.Coordinate, e.Direction),
		Direction:  geometry.TileOpposite(e.Direction),
	}
}

// MergeFailureKind classifies why two regions could not be merged.
type MergeFailureKind int

const (
	RegionTypeMismatch MergeFailureKind = iota
	EmptyCollection
)

// MergeFailure reports a failed region merge attempt.
type MergeFailure struct {
	Kind MergeFailureKind
}

func (f *MergeFailure) Error() string {
	switch f.Kind {
	case RegionTypeMismatch:
		return "region: cannot merge regions of different kinds"
	case EmptyCollection:
		return "region: cannot merge an empty collection of regions"
	default:
		return "region: merge failure"
	}
}

// TileRegion identifies one region of one placed tile: the tile's
// coordinate and the region's index within its catalog entry.
type TileRegion struct {
	Coordinate  geometry.Coordinate
	RegionIndex int
}

// Resident is a meeple sitting within a connected region, tracked so
// closure-time scoring can find every claimant across every member tile.
type Resident struct {
	Owner      string
	Coordinate geometry.Coordinate
}

// ConnectedRegion is the merged, cross-tile unit that validation and
// scoring operate on: one or more per-tile regions of the same kind,
// stitched together by shared edges.
type ConnectedRegion struct {
	ID             string
	Kind           catalog.RegionKind
	TileRegions    map[TileRegion]struct{}
	Edges          map[PlacedTileEdge]struct{} // perimeter edges not yet matched to a neighbor
	Residents      []Resident
	AdjacentFields map[string]struct{} // on a Field, the City/Road regions it borders; on a City/Road, the Fields it borders; keyed by ID, for end-of-game Field scoring
}

// newID mints a region identifier. Nothing compares IDs for order, only
// equality, so a random UUID works as well as a monotonic counter would.
func newID() string {
	return uuid.NewString()
}

// FromTile builds the set of ConnectedRegions a single newly placed tile
// contributes, before any cross-tile merging: one ConnectedRegion per
// catalog region, its own perimeter edges recorded as unmatched, and
// Field<->City/Road adjacency recorded from the tile's own region layout.
func FromTile(t tile.Instance) []*ConnectedRegion {
	own := t.OwnConnectedRegions()

	regions := make([]*ConnectedRegion, len(own))
	for i, r := range own {
		cr := &ConnectedRegion{
			ID:             newID(),
			Kind:           r.Kind,
			TileRegions:    map[TileRegion]struct{}{{Coordinate: t.Coordinate, RegionIndex: r.RegionIndex}: {}},
			Edges:          map[PlacedTileEdge]struct{}{},
			AdjacentFields: map[string]struct{}{},
		}
		for _, d := range r.Directions {
			cr.Edges[PlacedTileEdge{Coordinate: t.Coordinate, Direction: d}] = struct{}{}
		}
		if t.Meeple != nil && t.Meeple.RegionIndex == r.RegionIndex {
			cr.Residents = append(cr.Residents, Resident{Owner: t.Meeple.Owner, Coordinate: t.Coordinate})
		}
		regions[i] = cr
	}

	for i, a := range own {
		if a.Kind != catalog.Field {
			continue
		}
		for j, b := range own {
			if i == j || b.Kind == catalog.Field || b.Kind == catalog.Water {
				continue
			}
			if directionsTouch(a.Directions, b.Directions) {
				regions[i].AdjacentFields[regions[j].ID] = struct{}{}
				regions[j].AdjacentFields[regions[i].ID] = struct{}{}
			}
		}
	}

	return regions
}

// directionsTouch reports whether two region's direction sets sit next to
// each other on the same tile: any direction in a is the immediate
// clockwise or counter-clockwise perimeter neighbor of some direction in b.
// A region spanning a whole side (the common case, e.g. a City occupying
// N/NNE/NNW) only shares a corner sample with an adjoining Field, never a
// full Side, so adjacency is checked against the 12-point perimeter ring
// rather than the coarser 4-side grouping.
func directionsTouch(a, b []geometry.Direction) bool {
	set := map[geometry.Direction]bool{}
	for _, d := range b {
		set[d] = true
	}
	for _, d := range a {
		if set[geometry.Direction((int(d)+1)%12)] || set[geometry.Direction((int(d)+11)%12)] {
			return true
		}
	}
	return false
}

// MergeInto absorbs other into r in place. Both regions must share a kind;
// a mismatch is a programming error (the caller is expected to have
// already matched regions by edge, which guarantees same-kind) and panics,
// matching how connected_regions.rs treats this as an invariant violation
// rather than a caller-recoverable error.
func (r *ConnectedRegion) MergeInto(other *ConnectedRegion) {
	if r.Kind != other.Kind {
		panic(fmt.Sprintf("region: merge kind mismatch: %s vs %s", r.Kind, other.Kind))
	}
	for tr := range other.TileRegions {
		r.TileRegions[tr] = struct{}{}
	}
	for e := range other.Edges {
		r.Edges[e] = struct{}{}
	}
	r.Residents = append(r.Residents, other.Residents...)
	for id := range other.AdjacentFields {
		r.AdjacentFields[id] = struct{}{}
	}
}

// RemoveMatchedEdge deletes a now-interior edge pair from both regions:
// called once per newly placed tile side that found a neighbor, so Edges
// ends up holding exactly the perimeter still open to future tiles.
func RemoveMatchedEdge(a, b *ConnectedRegion, edgeOnA PlacedTileEdge) {
	delete(a.Edges, edgeOnA)
	delete(b.Edges, edgeOnA.OpposingTileEdge())
}

// IsClosed reports whether every edge of the region has been matched to a
// neighboring tile (no more open perimeter). Field and Water regions are
// never "closed" in the scoring sense: closure only triggers City and Road
// scoring and is checked separately from this raw adjacency fact by the
// caller for those kinds.
func (r *ConnectedRegion) IsClosed() bool {
	return len(r.Edges) == 0
}

// MemberTileCount returns the number of distinct tiles the region spans,
// the quantity Road scoring counts directly and City scoring counts (with
// a pennant bonus) per member tile.
func (r *ConnectedRegion) MemberTileCount() int {
	tiles := map[geometry.Coordinate]struct{}{}
	for tr := range r.TileRegions {
		tiles[tr.Coordinate] = struct{}{}
	}
	return len(tiles)
}

// MergeAll merges a batch of newly produced regions (from FromTile) against
// the existing region table, using the supplied edge index to find which
// existing region (if any) borders each new region's perimeter edges. It
// returns the surviving regions the new tile's regions ended up in, the
// City/Road regions among them that just closed (for closure-triggered
// scoring), a map from each region ID removed by merging to the ID of the
// region that absorbed it, and the previously indexed edges that became
// interior (for index cleanup by the caller).
func MergeAll(
	existingByEdge map[PlacedTileEdge]*ConnectedRegion,
	newRegions []*ConnectedRegion,
) (merged []*ConnectedRegion, closed []*ConnectedRegion, absorbed map[string]string, interiorEdges []PlacedTileEdge) {
	absorbed = map[string]string{}
	survivors := make([]*ConnectedRegion, 0, len(newRegions))

	for _, nr := range newRegions {
		current := nr
		for e := range nr.Edges {
			opposing := e.OpposingTileEdge()
			neighbor, ok := existingByEdge[opposing]
			if !ok {
				continue
			}
			if neighbor.ID == current.ID {
				// Both sides of this boundary already belong to the same
				// just-merged survivor (e.g. two of the new tile's edges
				// close against the same neighboring region): the regions
				// are already one, but this edge pair is still open and
				// must be closed.
				RemoveMatchedEdge(current, current, e)
				interiorEdges = append(interiorEdges, opposing)
				continue
			}
			RemoveMatchedEdge(current, neighbor, e)
			if neighbor.Kind != current.Kind {
				panic(fmt.Sprintf("region: merge kind mismatch at boundary: %s vs %s", current.Kind, neighbor.Kind))
			}
			neighbor.MergeInto(current)
			absorbed[current.ID] = neighbor.ID
			current = neighbor
			// opposing was indexed against the pre-merge existing region; it
			// is now an interior edge and the caller's index must drop it.
			interiorEdges = append(interiorEdges, opposing)
		}
		survivors = append(survivors, current)
	}

	seen := map[string]*ConnectedRegion{}
	for _, s := range survivors {
		seen[s.ID] = s
	}
	for _, s := range seen {
		merged = append(merged, s)
		if s.IsClosed() && (s.Kind == catalog.City || s.Kind == catalog.Road) {
			closed = append(closed, s)
		}
	}
	return merged, closed, absorbed, interiorEdges
}
