// Package render draws a terminal visualization of a board or a single
// tile. It exists only for this module's own demo binary: no core package
// imports it.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
	"carcassonne-core/tile"
)

var (
	cityColor     = lipgloss.Color("#EF4444")
	fieldColor    = lipgloss.Color("#10B981")
	roadColor     = lipgloss.Color("#94A3B8")
	cloisterColor = lipgloss.Color("#F59E0B")
	waterColor    = lipgloss.Color("#06B6D4")
	meepleColor   = lipgloss.Color("#F8FAFC")

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	coordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8")).
			Bold(true)
)

func colorFor(k catalog.RegionKind) lipgloss.Color {
	switch k {
	case catalog.City:
		return cityColor
	case catalog.Road:
		return roadColor
	case catalog.Cloister:
		return cloisterColor
	case catalog.Water:
		return waterColor
	default:
		return fieldColor
	}
}

// Tile renders a single placed tile as a small labeled box summarizing its
// perimeter region kinds and whether it carries a meeple.
func Tile(t tile.Instance) string {
	perim := t.Entry.PerimeterRegionKinds(t.Rotations)

	var sides [4]string
	for s := geometry.North; s <= geometry.West; s++ {
		base := int(s) * 3
		var b strings.Builder
		for i := 0; i < 3; i++ {
			k := perim[base+i]
			style := lipgloss.NewStyle().Foreground(colorFor(k))
			b.WriteString(style.Render(shortKind(k)))
		}
		sides[s] = b.String()
	}

	label := t.Entry.Name
	if t.Meeple != nil {
		label += lipgloss.NewStyle().Foreground(meepleColor).Render(fmt.Sprintf(" [%s]", t.Meeple.Owner))
	}

	body := fmt.Sprintf("%s\n N:%s E:%s\n S:%s W:%s", label, sides[geometry.North], sides[geometry.East], sides[geometry.South], sides[geometry.West])
	return tileStyle.Render(body)
}

func shortKind(k catalog.RegionKind) string {
	if k < 0 {
		return "."
	}
	return k.String()[:1]
}

// TileSet is a source of the map Board renders: every placed tile, keyed by
// coordinate (board.Board provides it through Tiles). Board itself takes the
// map directly.
type TileSet interface {
	Tiles() map[geometry.Coordinate]tile.Instance
}

// Board renders every placed tile, ordered top-to-bottom, left-to-right.
func Board(tiles map[geometry.Coordinate]tile.Instance) string {
	coords := make([]geometry.Coordinate, 0, len(tiles))
	for c := range tiles {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	var b strings.Builder
	for _, c := range coords {
		b.WriteString(coordStyle.Render(fmt.Sprintf("(%d,%d) ", c.X, c.Y)))
		b.WriteString(Tile(tiles[c]))
		b.WriteString("\n")
	}
	return b.String()
}
