// Package statetest provides helper functions to create tests using Isolation state.
package statetest

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	. "github.com/janpfeifer/isolationGo/internal/state"
)

// Layout describes a board position to be built for tests.
type Layout struct {
	Height, Width int

	// Locations of each player, state.NoMove if the player is not placed.
	Locations [NumPlayers]Move

	// Blocked cells, besides the players' locations.
	Blocked []Move

	NextPlayer PlayerNum
}

// BuildBoard from a Layout. MoveNumber is set to the number of blocked cells plus one.
func BuildBoard(layout Layout) (b *Board) {
	b = NewBoard(layout.Height, layout.Width)
	for _, m := range layout.Blocked {
		b.Block(m)
	}
	for player, loc := range layout.Locations {
		if loc != NoMove {
			b.SetLocation(PlayerNum(player), loc)
		}
	}
	b.NextPlayer = layout.NextPlayer
	b.MoveNumber = layout.Height*layout.Width - b.NumBlankCells() + 1
	return
}

// CenterAndCorner is a 3x3 board with the first player at the center, the second player at the
// top-left corner, and the second player to move.
//
// The first player has no moves from the center of a 3x3 board.
func CenterAndCorner() *Board {
	return BuildBoard(Layout{
		Height: 3, Width: 3,
		Locations:  [NumPlayers]Move{{1, 1}, {0, 0}},
		NextPlayer: PlayerSecond,
	})
}

// RandomBoard plays up to plies random moves from an empty board. It stops earlier if the
// match finishes.
func RandomBoard(rng *rand.Rand, height, width, plies int) *Board {
	b := NewBoard(height, width)
	for range plies {
		moves := b.LegalMoves(b.NextPlayer)
		if len(moves) == 0 {
			break
		}
		b = b.Act(moves[rng.IntN(len(moves))])
	}
	return b
}

// ExpireAfter returns a time-left function that reports plenty of time for the first n calls,
// and no time left afterwards. It is safe for concurrent use.
func ExpireAfter(n int) func() time.Duration {
	var calls atomic.Int64
	return func() time.Duration {
		if calls.Add(1) > int64(n) {
			return 0
		}
		return time.Hour
	}
}
