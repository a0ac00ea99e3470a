package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
)

func TestReferenceCatalogValidates(t *testing.T) {
	c := catalog.Reference()
	assert.NotEmpty(t, c.Entries())
	for _, e := range c.Entries() {
		assert.NoError(t, e.Validate(), e.Name)
	}
}

func TestByIDFindsRegisteredEntry(t *testing.T) {
	c := catalog.Reference()
	e, ok := c.ByID("straight-road")
	require.True(t, ok)
	assert.Equal(t, "StraightRoad", e.Name)
}

func TestPerimeterRegionKindsUnrotated(t *testing.T) {
	c := catalog.Reference()
	e, _ := c.ByID("side-city")
	perim := e.PerimeterRegionKinds(0)
	assert.Equal(t, catalog.City, perim[geometry.N])
	assert.Equal(t, catalog.Field, perim[geometry.S])
}

func TestPerimeterRegionKindsRotationMatchesRotatedLocalDirection(t *testing.T) {
	c := catalog.Reference()
	e, _ := c.ByID("side-city")

	// Rotating the entry 90 degrees clockwise (one quarter turn) moves its
	// unrotated N-side city onto the global E side.
	perim := e.PerimeterRegionKinds(1)
	assert.Equal(t, catalog.City, perim[geometry.E])
	assert.Equal(t, catalog.Field, perim[geometry.W])
}

func TestPerimeterRegionKindsFullRotationIsIdentity(t *testing.T) {
	c := catalog.Reference()
	for _, e := range c.Entries() {
		assert.Equal(t, e.PerimeterRegionKinds(0), e.PerimeterRegionKinds(4), e.Name)
	}
}

func TestIsRiverTerminator(t *testing.T) {
	c := catalog.Reference()

	term, _ := c.ByID("river-terminator")
	assert.True(t, term.IsRiverTerminator())

	straight, _ := c.ByID("straight-river")
	assert.False(t, straight.IsRiverTerminator())

	road, _ := c.ByID("straight-road")
	assert.False(t, road.IsRiverTerminator())
}

func TestValidateRejectsPennantOnNonCity(t *testing.T) {
	bad := &catalog.Entry{
		Name: "bad",
		Regions: []catalog.Region{
			{Kind: catalog.Road, Pennant: true, Edges: []geometry.Direction{geometry.N}},
			{Kind: catalog.Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE, geometry.SSE,
				geometry.S, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
	assert.Error(t, bad.Validate())
}

func TestValidateRejectsIncompletePerimeter(t *testing.T) {
	bad := &catalog.Entry{
		Name: "bad",
		Regions: []catalog.Region{
			{Kind: catalog.Road, Edges: []geometry.Direction{geometry.N}},
		},
	}
	assert.Error(t, bad.Validate())
}

func TestValidateRejectsThreeEdgeWaterRegion(t *testing.T) {
	bad := &catalog.Entry{
		Name: "bad",
		Regions: []catalog.Region{
			{Kind: catalog.Water, Edges: []geometry.Direction{geometry.N, geometry.E, geometry.S}},
			{Kind: catalog.Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.NNE, geometry.ENE, geometry.ESE, geometry.SSE,
				geometry.SSW, geometry.WSW, geometry.WNW,
			}},
		},
	}
	assert.Error(t, bad.Validate())
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	e := &catalog.Entry{
		ID:   "dup",
		Name: "dup",
		Regions: []catalog.Region{
			{Kind: catalog.Cloister},
		},
	}
	_, err := catalog.New([]*catalog.Entry{e, e})
	assert.Error(t, err)
}
