// Command democore exercises the engine end to end: it places a short
// sequence of tiles from the reference catalog onto a board, logs each
// outcome, renders the resulting layout to the terminal, and demonstrates
// ranking a batch of candidate moves concurrently over cloned boards.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"carcassonne-core/board"
	"carcassonne-core/catalog"
	"carcassonne-core/geometry"
	"carcassonne-core/internal/logging"
	"carcassonne-core/internal/render"
	"carcassonne-core/tile"
)

func main() {
	if err := logging.InitFromEnv(); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}
	defer logging.Sync()
	logger := logging.Get()

	cat := catalog.Reference()
	b := board.New(board.RulesetConfig{DoubleRoadScoreOnClosure: false}, logger)

	straightRoad, ok := cat.ByID("straight-road")
	if !ok {
		logger.Fatal("missing reference entry", zap.String("id", "straight-road"))
	}
	cornerRoad, ok := cat.ByID("corner-road")
	if !ok {
		logger.Fatal("missing reference entry", zap.String("id", "corner-road"))
	}
	roadEnd, ok := cat.ByID("road-end")
	if !ok {
		logger.Fatal("missing reference entry", zap.String("id", "road-end"))
	}

	placements := []tile.Instance{
		{Entry: cornerRoad, Coordinate: geometry.Coordinate{X: 0, Y: 0}, Meeple: &tile.Meeple{Owner: "alice", RegionIndex: 0}},
		{Entry: straightRoad, Coordinate: geometry.Coordinate{X: 1, Y: 0}, Rotations: 1},
		{Entry: roadEnd, Coordinate: geometry.Coordinate{X: 0, Y: 1}},
	}

	for _, p := range placements {
		outcome, err := b.Place(p)
		if err != nil {
			logger.Error("placement rejected", zap.String("entry", p.Entry.ID), zap.Error(err))
			os.Exit(1)
		}
		for _, owner := range outcome.Delta.Owners() {
			logger.Info("score delta", zap.String("owner", owner), zap.Int("points", outcome.Delta.For(owner)))
		}
	}

	fmt.Println(render.Board(b.Tiles()))

	rankMovesConcurrently(b, straightRoad, logger)

	final := b.EndOfGameScore()
	for _, owner := range final.Owners() {
		logger.Info("final score", zap.String("owner", owner), zap.Int("points", final.For(owner)))
	}
}

// rankMovesConcurrently evaluates every legal placement of candidate on a
// clone of b in parallel, each clone scored by how many points it would
// immediately award "alice", and logs the best outcome found.
func rankMovesConcurrently(b *board.Board, candidate *catalog.Entry, logger *zap.Logger) {
	moves := b.LegalMoves(candidate, false)
	if len(moves) == 0 {
		return
	}

	type ranked struct {
		move   board.Move
		points int
	}
	results := make([]ranked, len(moves))

	var wg sync.WaitGroup
	for i, m := range moves {
		wg.Add(1)
		go func(i int, m board.Move) {
			defer wg.Done()
			clone := b.Clone()
			outcome, err := clone.Place(tile.Instance{Entry: m.Entry, Coordinate: m.Coordinate, Rotations: m.Rotations})
			if err != nil {
				return
			}
			results[i] = ranked{move: m, points: outcome.Delta.For("alice")}
		}(i, m)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].points > results[j].points })
	best := results[0]
	logger.Info("best ranked move",
		zap.Int("x", best.move.Coordinate.X), zap.Int("y", best.move.Coordinate.Y),
		zap.Int("rotations", best.move.Rotations), zap.Int("points", best.points))
}
