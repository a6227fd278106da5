package alphabeta

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.DepthSearcher interface.
// It is used by searchers/iterative, along with a scorer, to implement an AI player (players.Player interface).
//
// It is not safe for concurrent use: Stats is updated at the end of each search.
type Searcher struct {
	scorer ai.Scorer
	stats  searchers.Stats
}

// Assert that Searcher implements searchers.DepthSearcher.
var _ searchers.DepthSearcher = (*Searcher)(nil)

// New returns an Alpha-Beta Pruning based searchers.DepthSearcher implementation.
//
// The one obligatory parameter is the scorer used to evaluate the boards at the maximum depth.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(scorer ai.Scorer) *Searcher {
	return &Searcher{scorer: scorer}
}

// NewFromParams returns an alpha-beta Searcher if "alphabeta" (or its short form "ab") is set,
// otherwise it returns nil (and no error).
func NewFromParams(scorer ai.Scorer, params parameters.Params) (searchers.DepthSearcher, error) {
	isAB, err := parameters.PopParamOr(params, "alphabeta", false)
	if err != nil {
		return nil, err
	}
	isShortAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	if !isAB && !isShortAB {
		return nil, nil
	}
	klog.V(1).Info("Creating alpha-beta pruning searcher")
	return New(scorer), nil
}

// String implements searchers.DepthSearcher.
func (ab *Searcher) String() string {
	return "alphabeta"
}

// Stats of the last search.
func (ab *Searcher) Stats() searchers.Stats {
	return ab.stats
}

// SearchDepth implements searchers.DepthSearcher, executing alpha-beta pruning algorithm to the given depth.
//
// The score returned is always the same as the one of a minimax search, the pruning only skips
// moves that could not change it.
func (ab *Searcher) SearchDepth(board *Board, depth int, deadline *searchers.Deadline) (searchers.Result, error) {
	start := time.Now()
	sc := &search{scorer: ab.scorer, agent: board.NextPlayer, deadline: deadline}
	alpha, beta := math32.Inf(-1), math32.Inf(1)
	res, err := sc.recursion(board, depth, alpha, beta, true)
	ab.stats = sc.stats
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("alphabeta depth=%d: %+v, nodes/s=%.1f, err=%v", depth, ab.stats, float64(ab.stats.Nodes)/elapsed, err)
	}
	if err != nil {
		return searchers.Result{Move: NoMove}, errors.WithMessagef(err, "alphabeta at depth %d", depth)
	}
	res.Depth = depth
	return res, nil
}

// search holds the state of one search.
type search struct {
	scorer   ai.Scorer
	agent    PlayerNum
	deadline *searchers.Deadline
	stats    searchers.Stats
}

// recursion of the alpha-beta pruning algorithm, with depthLeft plies to go.
//
// alpha is the score sc.agent is already guaranteed elsewhere in the tree, and beta the score
// the opponent is guaranteed. They are passed by value: each call has its own bounds.
func (sc *search) recursion(board *Board, depthLeft int, alpha, beta float32, maximizing bool) (searchers.Result, error) {
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

	scores := make([]float32, 0, len(moves))
	for _, move := range moves {
		child, err := sc.recursion(board.Act(move), depthLeft-1, alpha, beta, !maximizing)
		if err != nil {
			return searchers.Result{}, err
		}
		score := child.Score
		if maximizing {
			if score >= beta {
				// The opponent will never take this path, so we can prune the search and stop here.
				sc.stats.Prunes++
				return searchers.Result{Score: score, Move: move}, nil
			}
			alpha = max(alpha, score)
		} else {
			if score <= alpha {
				sc.stats.Prunes++
				return searchers.Result{Score: score, Move: move}, nil
			}
			beta = min(beta, score)
		}
		scores = append(scores, score)
	}
	return searchers.SelectBest(moves, scores, maximizing), nil
}
