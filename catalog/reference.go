package catalog

import "carcassonne-core/geometry"

// Reference builds the small, fixed tile set this module's own tests and
// demo binary exercise. It is not a complete 72-tile base set: it is the
// named tiles the scoring and validation scenarios reference by name.
func Reference() *Catalog {
	entries := []*Entry{
		straightRoad(),
		cornerRoad(),
		roadEnd(),
		cloisterInField(),
		sideCity(),
		threeSidedCity(),
		cornerCityWithPennant(),
		cornerRoadWithCornerCity(),
		opposingSideCities(),
		straightRiver(),
		cornerRiver(),
		riverTerminator(),
	}
	c, err := New(entries)
	if err != nil {
		// The reference catalog is a fixed, hand-built set; a validation
		// failure here is a defect in this file, not a runtime condition.
		panic(err)
	}
	return c
}

// A Road (or Water) region's Edges list holds every perimeter sample that
// single physical feature touches: a straight road passing through a tile
// is ONE region with two edges, not two regions that happen to share a
// tile, since the latter would fragment what the region tracker merges
// across tile boundaries into two parallel chains instead of one.

func straightRoad() *Entry {
	return &Entry{
		ID:    "straight-road",
		Name:  "StraightRoad",
		Count: 8,
		Regions: []Region{
			{Kind: Road, Edges: []geometry.Direction{geometry.N, geometry.S}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNE, geometry.ENE, geometry.E, geometry.ESE, geometry.SSE,
			}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.SSW, geometry.WSW, geometry.W, geometry.WNW, geometry.NNW,
			}},
		},
	}
}

func cornerRoad() *Entry {
	return &Entry{
		ID:    "corner-road",
		Name:  "CornerRoad",
		Count: 9,
		Regions: []Region{
			{Kind: Road, Edges: []geometry.Direction{geometry.E, geometry.S}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.N, geometry.NNE, geometry.ENE, geometry.ESE, geometry.SSE,
				geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

// roadEnd is a road's dead-end cap: a single Road edge against an
// otherwise all-Field perimeter. Capping both ends of a road chain with
// this tile is what closes it, since its Road region contributes only one
// edge to match away.
func roadEnd() *Entry {
	return &Entry{
		ID:    "road-end",
		Name:  "RoadEnd",
		Count: 4,
		Regions: []Region{
			{Kind: Road, Edges: []geometry.Direction{geometry.N}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE, geometry.SSE,
				geometry.S, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func cloisterInField() *Entry {
	return &Entry{
		ID:    "cloister-in-field",
		Name:  "CloisterInField",
		Count: 4,
		Regions: []Region{
			{Kind: Cloister, MeepleAnchor: &geometry.TileCoordinate{Col: 3, Row: 3}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.N, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE,
				geometry.SSE, geometry.S, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func sideCity() *Entry {
	return &Entry{
		ID:    "side-city",
		Name:  "SideCity",
		Count: 5,
		Regions: []Region{
			{Kind: City, Edges: []geometry.Direction{geometry.NNW, geometry.N, geometry.NNE}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.ENE, geometry.E, geometry.ESE, geometry.SSE, geometry.S, geometry.SSW,
				geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func threeSidedCity() *Entry {
	return &Entry{
		ID:    "three-sided-city",
		Name:  "ThreeSidedCity",
		Count: 3,
		Regions: []Region{
			{Kind: City, Pennant: true, Edges: []geometry.Direction{
				geometry.NNW, geometry.N, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE,
				geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
			{Kind: Field, Edges: []geometry.Direction{geometry.SSE, geometry.S}},
		},
	}
}

func cornerCityWithPennant() *Entry {
	return &Entry{
		ID:    "corner-city-with-pennant",
		Name:  "CornerCityWithPennant",
		Count: 2,
		Regions: []Region{
			{Kind: City, Pennant: true, Edges: []geometry.Direction{
				geometry.NNW, geometry.N, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE,
			}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.SSE, geometry.S, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func cornerRoadWithCornerCity() *Entry {
	return &Entry{
		ID:    "corner-road-with-corner-city",
		Name:  "CornerRoadWithCornerCity",
		Count: 3,
		Regions: []Region{
			{Kind: City, Edges: []geometry.Direction{geometry.NNW, geometry.N, geometry.NNE}},
			{Kind: Road, Edges: []geometry.Direction{geometry.E, geometry.S}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.ENE, geometry.ESE, geometry.SSE, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func opposingSideCities() *Entry {
	return &Entry{
		ID:    "opposing-side-cities",
		Name:  "OpposingSideCities",
		Count: 3,
		Regions: []Region{
			{Kind: City, Edges: []geometry.Direction{geometry.NNW, geometry.N, geometry.NNE}},
			{Kind: City, Edges: []geometry.Direction{geometry.SSE, geometry.S, geometry.SSW}},
			{Kind: Field, Edges: []geometry.Direction{geometry.ENE, geometry.E, geometry.ESE}},
			{Kind: Field, Edges: []geometry.Direction{geometry.WSW, geometry.W, geometry.WNW}},
		},
	}
}

func straightRiver() *Entry {
	return &Entry{
		ID:        "straight-river",
		Name:      "StraightRiver",
		Count:     3,
		Expansion: River,
		Regions: []Region{
			{Kind: Water, Edges: []geometry.Direction{geometry.N, geometry.S}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE, geometry.SSE,
			}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}

func cornerRiver() *Entry {
	return &Entry{
		ID:        "corner-river",
		Name:      "CornerRiver",
		Count:     2,
		Expansion: River,
		Regions: []Region{
			{Kind: Water, Edges: []geometry.Direction{geometry.N, geometry.W}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE, geometry.SSE,
				geometry.S, geometry.SSW, geometry.WSW, geometry.WNW,
			}},
		},
	}
}

func riverTerminator() *Entry {
	return &Entry{
		ID:        "river-terminator",
		Name:      "RiverTerminator",
		Count:     2,
		Expansion: River,
		Regions: []Region{
			{Kind: Water, Edges: []geometry.Direction{geometry.S}},
			{Kind: Field, Edges: []geometry.Direction{
				geometry.NNW, geometry.N, geometry.NNE, geometry.ENE, geometry.E, geometry.ESE,
				geometry.SSE, geometry.SSW, geometry.WSW, geometry.W, geometry.WNW,
			}},
		},
	}
}
