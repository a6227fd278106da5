// Package minimax implements a depth limited minimax searchers.DepthSearcher.
//
// It explores every move, so it is mostly useful as a reference for the alpha-beta
// searcher, and for very small boards. Root moves can optionally be explored in parallel.
//
// See: wikipedia.org/wiki/Minimax
package minimax

import (
	"runtime"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.DepthSearcher interface.
//
// It is not safe for concurrent use: Stats is updated at the end of each search.
type Searcher struct {
	scorer   ai.Scorer
	parallel bool
	stats    searchers.Stats
}

// Assert that Searcher implements searchers.DepthSearcher.
var _ searchers.DepthSearcher = (*Searcher)(nil)

// New returns a minimax searchers.DepthSearcher that evaluates leaf boards with scorer.
func New(scorer ai.Scorer) *Searcher {
	return &Searcher{scorer: scorer}
}

// WithParallel sets whether the moves at the root of the search are explored in parallel,
// using up to GOMAXPROCS goroutines. The result is exactly the same as the sequential search.
//
// The scorer must be safe for concurrent use if this is enabled. Default is false.
func (s *Searcher) WithParallel(parallel bool) *Searcher {
	s.parallel = parallel
	return s
}

// NewFromParams returns a minimax Searcher if "minimax" is set, otherwise it returns nil (and no error).
// The optional "parallel" parameter enables parallel exploration of the root moves.
func NewFromParams(scorer ai.Scorer, params parameters.Params) (searchers.DepthSearcher, error) {
	isMinimax, err := parameters.PopParamOr(params, "minimax", false)
	if err != nil || !isMinimax {
		return nil, err
	}
	parallel, err := parameters.PopParamOr(params, "parallel", false)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("Creating minimax searcher (parallel=%v)", parallel)
	return New(scorer).WithParallel(parallel), nil
}

// String implements searchers.DepthSearcher.
func (s *Searcher) String() string {
	if s.parallel {
		return "minimax(parallel)"
	}
	return "minimax"
}

// Stats of the last search.
func (s *Searcher) Stats() searchers.Stats {
	return s.stats
}

// SearchDepth implements searchers.DepthSearcher. The scores are from the perspective of
// board.NextPlayer.
func (s *Searcher) SearchDepth(board *Board, depth int, deadline *searchers.Deadline) (searchers.Result, error) {
	start := time.Now()
	sc := &search{scorer: s.scorer, agent: board.NextPlayer, deadline: deadline}
	var res searchers.Result
	var err error
	if s.parallel {
		res, err = sc.parallelRoot(board, depth)
	} else {
		res, err = sc.recursion(board, depth, true)
	}
	s.stats = sc.stats
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("minimax depth=%d: %+v, nodes/s=%.1f, err=%v", depth, s.stats, float64(s.stats.Nodes)/elapsed, err)
	}
	if err != nil {
		return searchers.Result{Move: NoMove}, errors.WithMessagef(err, "minimax at depth %d", depth)
	}
	res.Depth = depth
	return res, nil
}

// search holds the state of one search: it is created at the start of SearchDepth, and for
// each parallel branch.
type search struct {
	scorer   ai.Scorer
	agent    PlayerNum
	deadline *searchers.Deadline
	stats    searchers.Stats
}

// recursion of the minimax algorithm, with depthLeft plies to go.
// maximizing is true when it's sc.agent's turn.
func (sc *search) recursion(board *Board, depthLeft int, maximizing bool) (searchers.Result, error) {
	if err := sc.deadline.Check(); err != nil {
		return searchers.Result{}, err
	}
	sc.stats.Nodes++

	moves := board.LegalMoves(board.NextPlayer)
	if len(moves) == 0 {
		sc.stats.Terminals++
		return searchers.Result{Score: board.Utility(sc.agent), Move: NoMove}, nil
	}
	if depthLeft <= 0 {
		sc.stats.Evals++
		return searchers.Result{Score: sc.scorer.Score(board, sc.agent), Move: NoMove}, nil
	}

	scores := make([]float32, len(moves))
	for ii, move := range moves {
		child, err := sc.recursion(board.Act(move), depthLeft-1, !maximizing)
		if err != nil {
			return searchers.Result{}, err
		}
		scores[ii] = child.Score
	}
	return searchers.SelectBest(moves, scores, maximizing), nil
}

// parallelRoot is like recursion for the root node, but the moves are explored in parallel.
// Results are stored per move, so the tie-breaking is the same as the sequential version.
func (sc *search) parallelRoot(board *Board, depth int) (searchers.Result, error) {
	moves := board.LegalMoves(board.NextPlayer)
	if len(moves) == 0 || depth <= 0 {
		return sc.recursion(board, depth, true)
	}
	if err := sc.deadline.Check(); err != nil {
		return searchers.Result{}, err
	}
	sc.stats.Nodes++

	scores := make([]float32, len(moves))
	branches := make([]*search, len(moves))
	var wg errgroup.Group
	wg.SetLimit(runtime.GOMAXPROCS(0))
	for ii, move := range moves {
		branch := &search{scorer: sc.scorer, agent: sc.agent, deadline: sc.deadline}
		branches[ii] = branch
		wg.Go(func() error {
			child, err := branch.recursion(board.Act(move), depth-1, false)
			scores[ii] = child.Score
			return err
		})
	}
	err := wg.Wait()
	for _, branch := range branches {
		sc.stats.Add(branch.stats)
	}
	if err != nil {
		return searchers.Result{}, err
	}
	return searchers.SelectBest(moves, scores, true), nil
}
