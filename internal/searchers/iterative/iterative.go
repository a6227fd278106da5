// Package iterative implements a searchers.Searcher that drives a searchers.DepthSearcher under
// a time budget.
//
// In iterative mode it searches at depth 1, 2, 3, ... until the time runs out, and returns the
// result of the deepest search completed. In fixed mode it searches once at the configured depth.
package iterative

import (
	"fmt"
	"math"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DefaultDepth used in fixed mode.
	DefaultDepth = 3

	// DefaultThreshold is the time left at which searches are aborted.
	DefaultThreshold = 10 * time.Millisecond
)

// Searcher implements searchers.Searcher.
type Searcher struct {
	base      searchers.DepthSearcher
	iterative bool
	depth     int
	maxDepth  int
	threshold time.Duration
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an iterative deepening Searcher using base for each depth.
// Use the With* methods to configure it.
func New(base searchers.DepthSearcher) *Searcher {
	return &Searcher{
		base:      base,
		iterative: true,
		depth:     DefaultDepth,
		threshold: DefaultThreshold,
	}
}

// WithIterative sets whether to deepen iteratively (the default) or to search only once at the
// fixed depth set by WithDepth.
func (s *Searcher) WithIterative(iterative bool) *Searcher {
	s.iterative = iterative
	return s
}

// WithDepth sets the depth used in fixed mode. Default is DefaultDepth.
func (s *Searcher) WithDepth(depth int) *Searcher {
	s.depth = depth
	return s
}

// WithMaxDepth limits the depth of the iterative deepening. 0 means no limit.
func (s *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	s.maxDepth = maxDepth
	return s
}

// WithThreshold sets the time left at which the search is aborted. Default is DefaultThreshold.
func (s *Searcher) WithThreshold(threshold time.Duration) *Searcher {
	s.threshold = threshold
	return s
}

// NewFromParams wraps base with the parameters:
//
//   - iterative (bool): whether to deepen iteratively, default true.
//   - depth (int): search depth in fixed mode, default 3.
//   - max_depth (int): maximum depth in iterative mode, default 0 (unlimited).
//   - timeout (time.Duration): time left at which the search is aborted, default 10ms. Plain
//     numbers are taken as milliseconds.
func NewFromParams(base searchers.DepthSearcher, params parameters.Params) (*Searcher, error) {
	s := New(base)
	var err error
	s.iterative, err = parameters.PopParamOr(params, "iterative", true)
	if err != nil {
		return nil, err
	}
	s.depth, err = parameters.PopParamOr(params, "depth", DefaultDepth)
	if err != nil {
		return nil, err
	}
	if s.depth < 0 {
		return nil, errors.Errorf("invalid depth=%d, it must be >= 0", s.depth)
	}
	s.maxDepth, err = parameters.PopParamOr(params, "max_depth", 0)
	if err != nil {
		return nil, err
	}
	if s.maxDepth < 0 {
		return nil, errors.Errorf("invalid max_depth=%d, it must be >= 0", s.maxDepth)
	}
	s.threshold, err = parameters.PopParamOr(params, "timeout", DefaultThreshold)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("Creating %s", s)
	return s, nil
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	switch {
	case !s.iterative:
		return fmt.Sprintf("%s(depth=%d)", s.base, s.depth)
	case s.maxDepth > 0:
		return fmt.Sprintf("iterative(%s, max_depth=%d)", s.base, s.maxDepth)
	default:
		return fmt.Sprintf("iterative(%s)", s.base)
	}
}

// Search implements searchers.Searcher.
//
// Running out of time is not an error: the last completed result is returned, or a Result with
// state.NoMove if not even the first search completed.
func (s *Searcher) Search(board *Board, timeLeft searchers.TimeLeftFn) (searchers.Result, error) {
	if !board.HasLegalMoves(board.NextPlayer) {
		return searchers.Result{Move: NoMove, Score: board.Utility(board.NextPlayer)}, nil
	}
	deadline := searchers.NewDeadline(timeLeft, s.threshold)
	if !s.iterative {
		res, err := s.base.SearchDepth(board, s.depth, deadline)
		if err != nil {
			if searchers.IsTimeout(err) {
				klog.V(1).Infof("move #%d: %s timed out", board.MoveNumber, s.base)
				return searchers.Result{Move: NoMove}, nil
			}
			return searchers.Result{Move: NoMove}, errors.WithMessagef(err, "move #%d", board.MoveNumber)
		}
		return res, nil
	}

	best := searchers.Result{Move: NoMove}
	maxDepth := s.maxDepth
	if maxDepth == 0 {
		maxDepth = math.MaxInt
	}
	// A search as deep as the number of blank cells already reaches every end of the match.
	blankCells := board.NumBlankCells()
	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()
		res, err := s.base.SearchDepth(board, depth, deadline)
		if err != nil {
			if searchers.IsTimeout(err) {
				klog.V(2).Infof("move #%d: depth %d timed out after %s", board.MoveNumber, depth, time.Since(start))
				break
			}
			return best, errors.WithMessagef(err, "move #%d", board.MoveNumber)
		}
		best = res
		if klog.V(2).Enabled() {
			klog.Infof("move #%d: depth %d: %s in %s", board.MoveNumber, depth, res, time.Since(start))
		}
		if res.Score == ai.WinGameScore || res.Score == ai.LoseGameScore || depth >= blankCells {
			break
		}
	}
	return best, nil
}
