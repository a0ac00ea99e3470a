// Package board orchestrates placement validation, the region tracker, and
// closure-triggered scoring into the single entry point a caller drives a
// game through: Validate, Place, LegalMoves, EndOfGameScore.
package board

import (
	"fmt"

	"go.uber.org/zap"

	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
	"carcassonne-core/region"
	"carcassonne-core/score"
	"carcassonne-core/tile"
)

// RulesetConfig is this module's ruleset toggle, forwarded to the scorer.
type RulesetConfig = score.RulesetConfig

// Move is one candidate placement LegalMoves offers: an entry at a
// rotation and coordinate, with an optional meeple.
type Move struct {
	Entry             *catalog.Entry
	Coordinate        geometry.Coordinate
	Rotations         int
	MeepleRegionIndex *int
}

// PlacementOutcome reports what a committed placement changed: the score
// delta it produced (closures and cloister completions), and any meeples
// returned to their owners' hands.
type PlacementOutcome struct {
	Delta           *score.Score
	ReturnedMeeples []tile.Meeple
}

// Board is the mutable game state: every placed tile, the live region
// table, and the running score.
type Board struct {
	cfg    RulesetConfig
	logger *zap.Logger

	tiles map[geometry.Coordinate]tile.Instance
	order []geometry.Coordinate

	regionByEdge map[region.PlacedTileEdge]*region.ConnectedRegion
	regions      map[string]*region.ConnectedRegion
	scoredAt     map[string]bool // region IDs already credited (closed City/Road, completed Cloister)
	absorbedTo   map[string]string // region IDs merged away, mapped to the ID that absorbed them

	total *score.Score
}

// New returns an empty Board. logger may be nil; a no-op logger is used in
// that case so placement tracing never needs a nil check at call sites.
func New(cfg RulesetConfig, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		cfg:          cfg,
		logger:       logger,
		tiles:        map[geometry.Coordinate]tile.Instance{},
		regionByEdge: map[region.PlacedTileEdge]*region.ConnectedRegion{},
		regions:      map[string]*region.ConnectedRegion{},
		scoredAt:     map[string]bool{},
		absorbedTo:   map[string]string{},
		total:        score.New(),
	}
}

// resolveRegionID follows the absorbed-region chain to the live region ID a
// reference ultimately points to. A region's ID can go stale when the
// region it names is later merged into another during a subsequent
// placement; references captured before that merge (Field<->City adjacency
// in particular) still carry the old ID.
func (b *Board) resolveRegionID(id string) string {
	for {
		next, ok := b.absorbedTo[id]
		if !ok {
			return id
		}
		id = next
	}
}

// Validate checks whether t can legally be committed to the board right
// now, without mutating any state.
func (b *Board) Validate(t tile.Instance) error {
	if err := t.ValidateMeeplePlacement(); err != nil {
		kind := InvalidMeepleIndex
		if t.Meeple != nil && t.Meeple.RegionIndex >= 0 && t.Meeple.RegionIndex < len(t.Entry.Regions) &&
			t.Entry.Regions[t.Meeple.RegionIndex].Kind == catalog.Water {
			kind = MeepleInWater
		}
		return newValidationError(kind, t.Coordinate, err.Error())
	}

	if _, occupied := b.tiles[t.Coordinate]; occupied {
		return newValidationError(OccupiedCoordinate, t.Coordinate, "coordinate already holds a tile")
	}

	neighbors := b.neighborsOf(t.Coordinate)
	if len(b.tiles) > 0 && len(neighbors) == 0 {
		return newValidationError(NoContact, t.Coordinate, "placement touches no existing tile")
	}

	for side, neighbor := range neighbors {
		mine := t.ListRegionsOnSide(side)
		theirs := neighbor.ListRegionsOnSide(oppositeSide(side))
		for i := 0; i < 3; i++ {
			// The neighbor's three samples face back in reverse order:
			// the sample nearest one corner meets the sample nearest the
			// matching corner on the opposite side.
			if mine[i] != theirs[2-i] {
				return newValidationError(EdgeMismatch, t.Coordinate,
					fmt.Sprintf("side %s sample %d: %s does not match neighboring %s", side, i, mine[i], theirs[2-i]))
			}
		}
	}

	if err := b.validateRiver(t, neighbors); err != nil {
		return err
	}

	if err := b.validateMeepleTargetRegion(t); err != nil {
		return err
	}

	return nil
}

func (b *Board) neighborsOf(c geometry.Coordinate) map[geometry.Side]tile.Instance {
	out := map[geometry.Side]tile.Instance{}
	for side, coord := range geometry.AdjacentCoordinates(c) {
		if neighbor, ok := b.tiles[coord]; ok {
			out[side] = neighbor
		}
	}
	return out
}

func oppositeSide(s geometry.Side) geometry.Side {
	return geometry.Side((int(s) + 2) % 4)
}

// validateRiver enforces the river sub-grammar: a river tile must connect
// to the existing river's open end (RiverDisconnected), and a non-terminator
// river tile must not bend back toward the direction it just came from
// (RiverDoublesBack): its other Water end may not point in the same primary
// direction as the previously placed tile's other Water end.
func (b *Board) validateRiver(t tile.Instance, neighbors map[geometry.Side]tile.Instance) error {
	water, ok := t.Entry.WaterRegion()
	if !ok || len(b.tiles) == 0 {
		return nil
	}

	var matched []geometry.Direction
	for _, d := range water.Edges {
		global := geometry.Rotate(d, t.Rotations)
		neighbor, ok := neighbors[global.Side()]
		if !ok {
			continue
		}
		if neighbor.RegionKindAt(geometry.TileOpposite(global)) == catalog.Water {
			matched = append(matched, global)
		}
	}
	if len(matched) == 0 {
		return newValidationError(RiverDisconnected, t.Coordinate, "river tile does not connect to the open river end")
	}

	// A second matched end means this tile fills a gap between two already
	// connected river neighbors: both ends are spoken for, so there is no
	// "other" open end left to double back with.
	if len(water.Edges) == 2 && len(matched) == 1 {
		if err := b.validateRiverDoublesBack(t, matched[0]); err != nil {
			return err
		}
	}

	return nil
}

// validateRiverDoublesBack implements the doubling-back rule against prev,
// the most recently placed tile: d is the direction from t's coordinate to
// prev's, so prev's facing Water end lies on the opposite side. If that end
// and t's own other Water end point in the same primary direction, the river
// would immediately reverse course.
func (b *Board) validateRiverDoublesBack(t tile.Instance, incoming geometry.Direction) error {
	prevCoord := b.order[len(b.order)-1]
	prev, ok := b.tiles[prevCoord]
	if !ok {
		return nil
	}

	prevWater, ok := prev.Entry.WaterRegion()
	if !ok || len(prevWater.Edges) != 2 {
		return nil
	}

	var d geometry.Side
	adjacent := false
	for side, coord := range geometry.AdjacentCoordinates(t.Coordinate) {
		if coord == prevCoord {
			d = side
			adjacent = true
			break
		}
	}
	if !adjacent {
		return nil
	}

	facingSide := oppositeSide(d)
	var facing geometry.Direction
	foundFacing := false
	for _, pd := range prevWater.Edges {
		global := geometry.Rotate(pd, prev.Rotations)
		if global.Side() == facingSide {
			facing = global
			foundFacing = true
			break
		}
	}
	if !foundFacing {
		return nil
	}

	newOther := t.OppositeRiverEndDirection(incoming)
	prevOther := prev.OppositeRiverEndDirection(facing)
	if newOther.Primary() == prevOther.Primary() {
		return newValidationError(RiverDoublesBack, t.Coordinate, "river would double back toward its previous direction")
	}
	return nil
}

// validateMeepleTargetRegion rejects placing a meeple on a region that,
// once merged with any bordering existing regions, would already carry a
// resident (the classic "can't claim an already-claimed feature" rule).
func (b *Board) validateMeepleTargetRegion(t tile.Instance) error {
	if t.Meeple == nil {
		return nil
	}

	own := region.FromTile(t)
	target := own[t.Meeple.RegionIndex]

	for edge := range target.Edges {
		if existing, ok := b.regionByEdge[edge.OpposingTileEdge()]; ok {
			if len(existing.Residents) > 0 {
				return newValidationError(OtherMeepleInRegion, t.Coordinate, "target region already has a resident meeple")
			}
		}
	}
	return nil
}

// Place validates and, if legal, commits t to the board: merges its
// regions into the tracker, scores any closures, and liberates any
// completed cloisters.
func (b *Board) Place(t tile.Instance) (PlacementOutcome, error) {
	if err := b.Validate(t); err != nil {
		return PlacementOutcome{}, err
	}

	log := b.logger.With(zap.Int("x", t.Coordinate.X), zap.Int("y", t.Coordinate.Y))

	b.tiles[t.Coordinate] = t
	b.order = append(b.order, t.Coordinate)

	own := region.FromTile(t)
	merged, closed, absorbed, interiorEdges := region.MergeAll(b.regionByEdge, own)

	for old, survivor := range absorbed {
		delete(b.regions, old)
		b.absorbedTo[old] = survivor
	}
	for _, e := range interiorEdges {
		delete(b.regionByEdge, e)
	}
	for _, r := range merged {
		b.regions[r.ID] = r
		for edge := range r.Edges {
			b.regionByEdge[edge] = r
		}
	}
	log.Debug("tile placed", zap.Int("regions_touched", len(merged)), zap.Int("closed", len(closed)))

	delta := score.New()
	var returned []tile.Meeple

	for _, r := range closed {
		if b.scoredAt[r.ID] {
			continue
		}
		b.scoredAt[r.ID] = true
		s, owners := b.scoreClosedRegion(r)
		delta.AddScore(s)
		returned = append(returned, owners...)
		b.logger.With(zap.String("region_id", r.ID)).Debug("region closed", zap.Stringer("kind", r.Kind))
	}

	cloisterDelta, cloisterReturned := b.checkCloisterClosures(t)
	delta.AddScore(cloisterDelta)
	returned = append(returned, cloisterReturned...)

	b.total.AddScore(delta)

	return PlacementOutcome{Delta: delta, ReturnedMeeples: returned}, nil
}

func (b *Board) scoreClosedRegion(r *region.ConnectedRegion) (*score.Score, []tile.Meeple) {
	pennantCount := 0
	if r.Kind == catalog.City {
		for tr := range r.TileRegions {
			t := b.tiles[tr.Coordinate]
			if t.Entry.Regions[tr.RegionIndex].Pennant {
				pennantCount++
			}
		}
	}

	facts := score.RegionFacts{
		Kind:                 r.Kind,
		MemberTileCount:      r.MemberTileCount(),
		Closed:               true,
		PennantCityTileCount: pennantCount,
		Residents:            toScoreResidents(r.Residents),
	}
	s := score.ScoreRegion(facts, b.cfg)

	returned := make([]tile.Meeple, 0, len(r.Residents))
	for _, res := range r.Residents {
		returned = append(returned, tile.Meeple{Owner: res.Owner})
	}
	return s, returned
}

func toScoreResidents(rs []region.Resident) []score.Resident {
	out := make([]score.Resident, len(rs))
	for i, r := range rs {
		out[i] = score.Resident{Owner: r.Owner}
	}
	return out
}

// checkCloisterClosures scores and liberates any cloister whose 8
// surrounding coordinates just became fully occupied by placing t. Only
// the new tile itself and its eight neighbors can possibly have changed
// surround status, so only those are checked.
func (b *Board) checkCloisterClosures(t tile.Instance) (*score.Score, []tile.Meeple) {
	delta := score.New()
	var returned []tile.Meeple

	candidates := append([]geometry.Coordinate{t.Coordinate}, geometry.SurroundingCoordinates(t.Coordinate)...)
	for _, c := range candidates {
		candidate, ok := b.tiles[c]
		if !ok || !candidate.HasOccupiedCloister() {
			continue
		}
		regionID := b.cloisterRegionID(c)
		if regionID != "" && b.scoredAt[regionID] {
			continue
		}

		surrounding := geometry.SurroundingCoordinates(c)
		allPresent := true
		for _, s := range surrounding {
			if _, present := b.tiles[s]; !present {
				allPresent = false
				break
			}
		}
		if !allPresent {
			continue
		}

		if regionID != "" {
			b.scoredAt[regionID] = true
		}
		s := score.ScoreRegion(score.RegionFacts{
			Kind:                 catalog.Cloister,
			SurroundingTileCount: len(surrounding),
			Residents:            []score.Resident{{Owner: candidate.Meeple.Owner}},
		}, b.cfg)
		delta.AddScore(s)
		returned = append(returned, tile.Meeple{Owner: candidate.Meeple.Owner})
	}

	return delta, returned
}

func (b *Board) cloisterRegionID(c geometry.Coordinate) string {
	t, ok := b.tiles[c]
	if !ok || t.Meeple == nil {
		return ""
	}
	for id, r := range b.regions {
		for tr := range r.TileRegions {
			if tr.Coordinate == c && tr.RegionIndex == t.Meeple.RegionIndex {
				return id
			}
		}
	}
	return ""
}

// LegalMoves enumerates every distinct (coordinate, rotation) placement
// for entry that passes Validate, deduplicating rotations that are
// geometrically identical because the entry's perimeter is symmetric.
// If includeMeeple is true, one variant per legal meeple region (plus the
// no-meeple variant) is returned for each legal tile placement.
func (b *Board) LegalMoves(entry *catalog.Entry, includeMeeple bool) []Move {
	var moves []Move
	for _, coord := range b.candidateCoordinates() {
		seen := map[[12]catalog.RegionKind]bool{}
		for rot := 0; rot < 4; rot++ {
			perim := entry.PerimeterRegionKinds(rot)
			if seen[perim] {
				continue
			}

			base := tile.Instance{Entry: entry, Coordinate: coord, Rotations: rot}
			if err := b.Validate(base); err != nil {
				continue
			}
			seen[perim] = true

			if !includeMeeple {
				moves = append(moves, Move{Entry: entry, Coordinate: coord, Rotations: rot})
				continue
			}

			moves = append(moves, Move{Entry: entry, Coordinate: coord, Rotations: rot})
			for i := range entry.Regions {
				idx := i
				candidate := tile.Instance{Entry: entry, Coordinate: coord, Rotations: rot, Meeple: &tile.Meeple{Owner: "candidate", RegionIndex: idx}}
				if err := b.Validate(candidate); err == nil {
					moves = append(moves, Move{Entry: entry, Coordinate: coord, Rotations: rot, MeepleRegionIndex: &idx})
				}
			}
		}
	}
	return moves
}

func (b *Board) candidateCoordinates() []geometry.Coordinate {
	if len(b.tiles) == 0 {
		return []geometry.Coordinate{{X: 0, Y: 0}}
	}

	seen := map[geometry.Coordinate]bool{}
	var out []geometry.Coordinate
	for c := range b.tiles {
		for _, adj := range geometry.AdjacentCoordinates(c) {
			if _, occupied := b.tiles[adj]; occupied {
				continue
			}
			if !seen[adj] {
				seen[adj] = true
				out = append(out, adj)
			}
		}
	}
	return out
}

// EndOfGameScore returns the running total plus every region that never
// closed: unclosed City/Road regions score without the closure bonus,
// unscored Cloisters score one plus their current surround count, and Field
// regions score per distinct adjacent closed City.
func (b *Board) EndOfGameScore() *score.Score {
	total := b.total.Clone()

	for id, r := range b.regions {
		if b.scoredAt[id] {
			continue
		}
		switch r.Kind {
		case catalog.City, catalog.Road:
			pennantCount := 0
			if r.Kind == catalog.City {
				for tr := range r.TileRegions {
					if b.tiles[tr.Coordinate].Entry.Regions[tr.RegionIndex].Pennant {
						pennantCount++
					}
				}
			}
			facts := score.RegionFacts{
				Kind:                 r.Kind,
				MemberTileCount:      r.MemberTileCount(),
				Closed:               false,
				PennantCityTileCount: pennantCount,
				Residents:            toScoreResidents(r.Residents),
			}
			total.AddScore(score.ScoreRegion(facts, b.cfg))
		case catalog.Cloister:
			t := b.tileForCloister(r)
			surrounding := 0
			if t != nil {
				for _, c := range geometry.SurroundingCoordinates(t.Coordinate) {
					if _, present := b.tiles[c]; present {
						surrounding++
					}
				}
			}
			facts := score.RegionFacts{
				Kind:                 catalog.Cloister,
				SurroundingTileCount: surrounding,
				Residents:            toScoreResidents(r.Residents),
			}
			total.AddScore(score.ScoreRegion(facts, b.cfg))
		case catalog.Field:
			closedCities := map[string]struct{}{}
			for adjID := range r.AdjacentFields {
				resolved := b.resolveRegionID(adjID)
				if b.scoredAt[resolved] {
					if adj, ok := b.regions[resolved]; ok && adj.Kind == catalog.City {
						closedCities[resolved] = struct{}{}
					}
				}
			}
			facts := score.RegionFacts{
				Kind:                 catalog.Field,
				AdjacentClosedCities: len(closedCities),
				Residents:            toScoreResidents(r.Residents),
			}
			total.AddScore(score.ScoreRegion(facts, b.cfg))
		}
	}

	return total
}

func (b *Board) tileForCloister(r *region.ConnectedRegion) *tile.Instance {
	for tr := range r.TileRegions {
		t := b.tiles[tr.Coordinate]
		return &t
	}
	return nil
}

// Tiles returns every placed tile keyed by coordinate, for callers such as
// internal/render that need a read-only snapshot of the board layout.
func (b *Board) Tiles() map[geometry.Coordinate]tile.Instance {
	out := make(map[geometry.Coordinate]tile.Instance, len(b.tiles))
	for c, t := range b.tiles {
		out[c] = t
	}
	return out
}

// Surrounding returns every placed tile among c's eight King-move
// neighbors.
func (b *Board) Surrounding(c geometry.Coordinate) []tile.Instance {
	var out []tile.Instance
	for _, coord := range geometry.SurroundingCoordinates(c) {
		if t, ok := b.tiles[coord]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep-enough independent copy of b for caller-side
// parallel move ranking: mutating the clone never affects the original.
func (b *Board) Clone() *Board {
	cp := New(b.cfg, b.logger)

	for c, t := range b.tiles {
		cp.tiles[c] = t
	}
	cp.order = append([]geometry.Coordinate{}, b.order...)

	idRemap := map[*region.ConnectedRegion]*region.ConnectedRegion{}
	for id, r := range b.regions {
		clone := &region.ConnectedRegion{
			ID:             r.ID,
			Kind:           r.Kind,
			TileRegions:    copyTileRegionSet(r.TileRegions),
			Edges:          copyEdgeSet(r.Edges),
			Residents:      append([]region.Resident{}, r.Residents...),
			AdjacentFields: copyStringSet(r.AdjacentFields),
		}
		cp.regions[id] = clone
		idRemap[r] = clone
	}
	for edge, r := range b.regionByEdge {
		cp.regionByEdge[edge] = idRemap[r]
	}
	for id, v := range b.scoredAt {
		cp.scoredAt[id] = v
	}
	for old, survivor := range b.absorbedTo {
		cp.absorbedTo[old] = survivor
	}
	cp.total = b.total.Clone()

	return cp
}

func copyTileRegionSet(in map[region.TileRegion]struct{}) map[region.TileRegion]struct{} {
	out := make(map[region.TileRegion]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func copyEdgeSet(in map[region.PlacedTileEdge]struct{}) map[region.PlacedTileEdge]struct{} {
	out := make(map[region.PlacedTileEdge]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func copyStringSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
