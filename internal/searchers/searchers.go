// Package searchers defines the interfaces and the common pieces of the search algorithms:
// results, the time-out Deadline and search statistics.
//
// The algorithms themselves are implemented in the sub-packages: minimax, alphabeta and
// iterative (iterative deepening under a time budget).
package searchers

import (
	"fmt"

	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
)

// Result of a search: the best move found and its score, from the perspective of the player
// that started the search.
//
// If the board had no legal moves, Move is state.NoMove and Score is the board utility.
type Result struct {
	Score float32
	Move  Move

	// Depth of the search that generated the result. For iterative searches it is the depth
	// of the last fully completed iteration.
	Depth int
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("%s (score=%.3g, depth=%d)", r.Move, r.Score, r.Depth)
}

// DepthSearcher is implemented by the depth limited search algorithms (minimax, alpha-beta).
type DepthSearcher interface {
	// SearchDepth searches the best move for board.NextPlayer, looking depth plies ahead.
	//
	// It returns ErrTimeout (possibly wrapped) if the deadline expires before it is finished,
	// in which case the Result must be discarded.
	SearchDepth(board *Board, depth int, deadline *Deadline) (Result, error)

	String() string
}

// Searcher is the interface that any of the search algorithms driven by a time budget
// must adhere to be valid.
type Searcher interface {
	// Search returns the best move it can find for board.NextPlayer before the time returned
	// by timeLeft runs out. A nil timeLeft means no time limit.
	//
	// Running out of time is not an error: the best move found so far is returned.
	Search(board *Board, timeLeft TimeLeftFn) (Result, error)

	String() string
}

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes visited during search, including leaves.
	Nodes int

	// Evals is the number of boards passed to the scorer. Notice end-game situations are not
	// scored and don't count here.
	Evals int

	// Terminals is the number of finished boards reached.
	Terminals int

	// Prunes is the number of cut-offs, only used by alpha-beta.
	Prunes int
}

// Add the counts of other into s.
func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.Evals += other.Evals
	s.Terminals += other.Terminals
	s.Prunes += other.Prunes
}

// ErrTimeout is returned by searches aborted because the Deadline expired.
var ErrTimeout = errors.New("search timed out")

// IsTimeout returns whether err was caused by a Deadline expiring.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// SelectBest returns the move with the highest score if maximizing, or the lowest score
// otherwise. Ties are broken by taking the first one, so the order of the moves matters.
//
// It returns state.NoMove if moves is empty.
func SelectBest(moves []Move, scores []float32, maximizing bool) Result {
	best := Result{Move: NoMove}
	for ii, score := range scores {
		if ii == 0 || (maximizing && score > best.Score) || (!maximizing && score < best.Score) {
			best.Score = score
			best.Move = moves[ii]
		}
	}
	return best
}
