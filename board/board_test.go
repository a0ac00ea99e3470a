package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcassonne-core/board"
	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
	"carcassonne-core/tile"
)

func mustEntry(t *testing.T, id string) *catalog.Entry {
	t.Helper()
	e, ok := catalog.Reference().ByID(id)
	require.True(t, ok, id)
	return e
}

func TestPlaceFirstTileAlwaysSucceeds(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "straight-road")

	_, err := b.Place(tile.Instance{Entry: e, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	assert.NoError(t, err)
}

func TestPlaceRejectsOccupiedCoordinate(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "straight-road")
	origin := geometry.Coordinate{X: 0, Y: 0}

	_, err := b.Place(tile.Instance{Entry: e, Coordinate: origin})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{Entry: e, Coordinate: origin})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.OccupiedCoordinate, ve.Kind())
}

func TestPlaceRejectsNoContact(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "straight-road")

	_, err := b.Place(tile.Instance{Entry: e, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{Entry: e, Coordinate: geometry.Coordinate{X: 10, Y: 10}})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.NoContact, ve.Kind())
}

func TestPlaceRejectsEdgeMismatch(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	road := mustEntry(t, "straight-road")
	city := mustEntry(t, "side-city")

	_, err := b.Place(tile.Instance{Entry: road, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	// city's north side is all-City; road's south side (facing it) is Field, Road, Field.
	_, err = b.Place(tile.Instance{Entry: city, Coordinate: geometry.Coordinate{X: 0, Y: 1}})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.EdgeMismatch, ve.Kind())
}

func TestPlaceRejectsMeepleOnWaterRegion(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	river := mustEntry(t, "river-terminator")
	waterIdx := -1
	for i, r := range river.Regions {
		if r.Kind == catalog.Water {
			waterIdx = i
		}
	}
	require.GreaterOrEqual(t, waterIdx, 0)

	_, err := b.Place(tile.Instance{
		Entry:      river,
		Coordinate: geometry.Coordinate{X: 0, Y: 0},
		Meeple:     &tile.Meeple{Owner: "alice", RegionIndex: waterIdx},
	})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.MeepleInWater, ve.Kind())
}

func TestClosedTwoTileCityScoresDoubledWithNoPennants(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "side-city")

	cityIdx := -1
	for i, r := range e.Regions {
		if r.Kind == catalog.City {
			cityIdx = i
		}
	}
	require.GreaterOrEqual(t, cityIdx, 0)

	_, err := b.Place(tile.Instance{
		Entry:      e,
		Coordinate: geometry.Coordinate{X: 0, Y: 0},
		Meeple:     &tile.Meeple{Owner: "alice", RegionIndex: cityIdx},
	})
	require.NoError(t, err)

	outcome, err := b.Place(tile.Instance{
		Entry:      e,
		Coordinate: geometry.Coordinate{X: 0, Y: -1},
		Rotations:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, outcome.Delta.For("alice"))
	require.Len(t, outcome.ReturnedMeeples, 1)
	assert.Equal(t, "alice", outcome.ReturnedMeeples[0].Owner)
}

func TestFieldScoresAdjacentClosedCity(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "side-city")

	// Closing the city absorbs the second tile's own City region into the
	// first tile's surviving region; the second tile's Field must still
	// resolve its adjacency to that survivor, not the absorbed ID.
	_, err := b.Place(tile.Instance{Entry: e, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{
		Entry:      e,
		Coordinate: geometry.Coordinate{X: 0, Y: -1},
		Rotations:  2,
		Meeple:     &tile.Meeple{Owner: "carol", RegionIndex: 1},
	})
	require.NoError(t, err)

	final := b.EndOfGameScore()
	assert.Equal(t, 3, final.For("carol"))
}

func TestCloisterScoresWhenFullySurrounded(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	cloister := mustEntry(t, "cloister-in-field")
	filler := mustEntry(t, "cloister-in-field")

	cloisterIdx := -1
	for i, r := range cloister.Regions {
		if r.Kind == catalog.Cloister {
			cloisterIdx = i
		}
	}
	require.GreaterOrEqual(t, cloisterIdx, 0)

	_, err := b.Place(tile.Instance{
		Entry:      cloister,
		Coordinate: geometry.Coordinate{X: 0, Y: 0},
		Meeple:     &tile.Meeple{Owner: "alice", RegionIndex: cloisterIdx},
	})
	require.NoError(t, err)

	// Primary sides first so every placement has a side-adjacent neighbor
	// already on the board; diagonals are only contact-valid once their
	// flanking primary neighbors are placed.
	ring := []geometry.Coordinate{
		{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
		{X: 1, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}

	var lastOutcome board.PlacementOutcome
	for _, c := range ring {
		outcome, err := b.Place(tile.Instance{Entry: filler, Coordinate: c})
		require.NoError(t, err)
		lastOutcome = outcome
	}

	assert.Equal(t, 9, lastOutcome.Delta.For("alice"))
	require.Len(t, lastOutcome.ReturnedMeeples, 1)
}

func TestLegalMovesDedupesRotationalSymmetry(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "cloister-in-field")

	_, err := b.Place(tile.Instance{Entry: e, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	moves := b.LegalMoves(e, false)
	// cloister-in-field's perimeter is rotationally symmetric (all Field),
	// so every legal coordinate should contribute exactly one move.
	seen := map[geometry.Coordinate]int{}
	for _, m := range moves {
		seen[m.Coordinate]++
	}
	for coord, count := range seen {
		assert.Equal(t, 1, count, "coordinate %v", coord)
	}
}

func TestRiverTileMustConnectToOpenEnd(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	term := mustEntry(t, "river-terminator")
	straight := mustEntry(t, "straight-river")

	_, err := b.Place(tile.Instance{Entry: term, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	// Placed away from the terminator's open (Water) end: disconnected.
	_, err = b.Place(tile.Instance{Entry: straight, Coordinate: geometry.Coordinate{X: 1, Y: 0}})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.RiverDisconnected, ve.Kind())
}

func TestRiverExtendsFromTerminatorSouthEnd(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	term := mustEntry(t, "river-terminator")
	straight := mustEntry(t, "straight-river")

	_, err := b.Place(tile.Instance{Entry: term, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{Entry: straight, Coordinate: geometry.Coordinate{X: 0, Y: 1}})
	assert.NoError(t, err)
}

func TestRiverDoublesBackOnCornerTurnReversal(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	corner := mustEntry(t, "corner-river")

	// corner-river's Water edges are N and W at rotation 0, so the first
	// tile's open ends face north and west. Placing a second corner tile
	// north of it (y-decreasing), rotated so its own Water ends face south
	// (connecting back down) and west again, immediately reverses the
	// river's direction.
	_, err := b.Place(tile.Instance{Entry: corner, Coordinate: geometry.Coordinate{X: 0, Y: 0}})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{Entry: corner, Coordinate: geometry.Coordinate{X: 0, Y: -1}, Rotations: 3})
	require.Error(t, err)
	ve, ok := err.(*board.ValidationError)
	require.True(t, ok)
	assert.Equal(t, board.RiverDoublesBack, ve.Kind())
}

func TestClosedThreeTileRoadScoresByMemberCount(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	corner := mustEntry(t, "corner-road")
	cap := mustEntry(t, "road-end")

	_, err := b.Place(tile.Instance{
		Entry:      corner,
		Coordinate: geometry.Coordinate{X: 0, Y: 0},
		Meeple:     &tile.Meeple{Owner: "alice", RegionIndex: 0},
	})
	require.NoError(t, err)

	_, err = b.Place(tile.Instance{Entry: cap, Coordinate: geometry.Coordinate{X: 1, Y: 0}, Rotations: 3})
	require.NoError(t, err)

	outcome, err := b.Place(tile.Instance{Entry: cap, Coordinate: geometry.Coordinate{X: 0, Y: 1}})
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Delta.For("alice"))
	require.Len(t, outcome.ReturnedMeeples, 1)
}

func TestEndOfGameScoresUnclosedRoadWithoutDoubling(t *testing.T) {
	b := board.New(board.RulesetConfig{}, nil)
	e := mustEntry(t, "straight-road")

	roadIdx := -1
	for i, r := range e.Regions {
		if r.Kind == catalog.Road {
			roadIdx = i
		}
	}
	require.GreaterOrEqual(t, roadIdx, 0)

	_, err := b.Place(tile.Instance{
		Entry:      e,
		Coordinate: geometry.Coordinate{X: 0, Y: 0},
		Meeple:     &tile.Meeple{Owner: "bob", RegionIndex: roadIdx},
	})
	require.NoError(t, err)

	final := b.EndOfGameScore()
	assert.Equal(t, 1, final.For("bob"))
}
