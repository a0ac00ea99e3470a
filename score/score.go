// Package score implements the Score accumulator and the per-region
// scoring rules: how many points a closed or end-of-game region is worth,
// and which player(s) claim them under majority-meeple attribution.
package score

import "carcassonne-core/catalog"

// Score is a componentwise per-player point accumulator.
type Score struct {
	points map[string]int
}

// New returns an empty Score.
func New() *Score {
	return &Score{points: map[string]int{}}
}

// FromPoints builds a Score from an explicit owner->points map, useful in
// tests and for constructing a single region's award before merging it into
// a running total.
func FromPoints(points map[string]int) *Score {
	s := New()
	for owner, p := range points {
		s.points[owner] = p
	}
	return s
}

// Add credits owner with amount points.
func (s *Score) Add(owner string, amount int) {
	s.points[owner] += amount
}

// AddScore merges other into s componentwise, matching the original
// implementation's AddAssign semantics.
func (s *Score) AddScore(other *Score) {
	for owner, p := range other.points {
		s.points[owner] += p
	}
}

// Sub returns a new Score holding s - other componentwise, used to compute
// a move's score delta by diffing the board's total before and after a
// tentative placement.
func (s *Score) Sub(other *Score) *Score {
	out := New()
	for owner, p := range s.points {
		out.points[owner] = p
	}
	for owner, p := range other.points {
		out.points[owner] -= p
	}
	return out
}

// For returns owner's accumulated points (zero if unseen).
func (s *Score) For(owner string) int {
	return s.points[owner]
}

// Owners returns every owner with a non-zero entry, in no particular order.
func (s *Score) Owners() []string {
	out := make([]string, 0, len(s.points))
	for owner, p := range s.points {
		if p != 0 {
			out = append(out, owner)
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s *Score) Clone() *Score {
	cp := New()
	for owner, p := range s.points {
		cp.points[owner] = p
	}
	return cp
}

// Resident is the minimal view of a connected region's occupant a scoring
// rule needs: who placed the meeple.
type Resident struct {
	Owner string
}

// RegionFacts carries the inputs a scoring rule needs beyond the region's
// own kind and member count: whether it is closed, how many Cities with
// the pennant bonus it contains, how many closed City regions a Field
// region borders, and how many tiles surround a Cloister.
type RegionFacts struct {
	Kind                 catalog.RegionKind
	MemberTileCount      int
	Closed               bool
	PennantCityTileCount int // member tiles whose City region carries a pennant
	AdjacentClosedCities int // Field only
	SurroundingTileCount int // Cloister only
	Residents            []Resident
}

// RulesetConfig toggles the one scoring variant this engine leaves open:
// whether a closed Road region's score doubles, matching City's closure
// bonus. Default false matches the canonical scoring rule this module
// grounds its Road scoring on.
type RulesetConfig struct {
	DoubleRoadScoreOnClosure bool
}

// baseValue computes a region's raw point value, before majority
// attribution, under the given RegionFacts and ruleset.
func baseValue(f RegionFacts, cfg RulesetConfig) int {
	switch f.Kind {
	case catalog.City:
		v := f.MemberTileCount + f.PennantCityTileCount
		if f.Closed {
			v *= 2
		}
		return v
	case catalog.Road:
		v := f.MemberTileCount
		if f.Closed && cfg.DoubleRoadScoreOnClosure {
			v *= 2
		}
		return v
	case catalog.Field:
		return 3 * f.AdjacentClosedCities
	case catalog.Cloister:
		return f.SurroundingTileCount + 1
	case catalog.Water:
		return 0
	default:
		return 0
	}
}

// majorityOwners returns the owner(s) holding the most meeples among a
// region's residents. Ties are returned together: every tied owner scores
// the region's full value, matching the original scoring rule's shared
// majority.
func majorityOwners(residents []Resident) []string {
	counts := map[string]int{}
	order := make([]string, 0)
	for _, r := range residents {
		if _, seen := counts[r.Owner]; !seen {
			order = append(order, r.Owner)
		}
		counts[r.Owner]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	if best == 0 {
		return nil
	}
	var owners []string
	for _, owner := range order {
		if counts[owner] == best {
			owners = append(owners, owner)
		}
	}
	return owners
}

// ScoreRegion computes the Score a single region awards right now: its
// base value under f and cfg, credited in full to every majority owner.
// A region with no residents (no meeple ever placed on it) scores zero
// regardless of its base value.
func ScoreRegion(f RegionFacts, cfg RulesetConfig) *Score {
	owners := majorityOwners(f.Residents)
	s := New()
	if len(owners) == 0 {
		return s
	}
	value := baseValue(f, cfg)
	for _, owner := range owners {
		s.Add(owner, value)
	}
	return s
}
