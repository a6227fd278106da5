package players

import (
	"slices"
	"strings"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/generics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Agent is a standard set up for an AI: a searcher and a scorer.
// It implements the Player interface.
type Agent struct {
	Searcher searchers.Searcher
	Scorer   ai.Scorer

	// LastResult of ChooseMove, for debugging and display.
	LastResult searchers.Result
}

// Assert that Agent is a Player.
var _ Player = &Agent{}

// New creates a new AI player given the configuration string.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated. Exactly one
//     scorer and one searcher must be selected. If empty, the default is given by
//     DefaultPlayerConfig. E.g.: "heuristic=improved,alphabeta,iterative,timeout=10ms"
//
// Typical parameters:
//
//   - heuristic (string): the evaluation function, e.g. "improved", "aggressive_move". Default is "default".
//   - w_own_moves, w_opp_moves, w_own_dist, w_opp_dist, w_own_dist_norm, w_opp_dist_norm (float):
//     override individual weights of the heuristic.
//   - alphabeta (or ab), minimax or random (bool): the search algorithm.
//   - parallel (bool): explore the root moves of minimax in parallel.
//   - iterative (bool): iterative deepening until the time runs out, default true.
//   - depth (int): search depth when not iterative, default 3.
//   - max_depth (int): limit of the iterative deepening, default 0 (unlimited).
//   - timeout (time.Duration): the time left at which the search is aborted, default 10ms.
//   - seed (int): random seed for the random searcher.
func New(config string) (*Agent, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)

	if len(RegisteredScorers) == 0 {
		return nil, errors.New("no registered scorers. Perhaps you need to import _ \"github.com/janpfeifer/isolationGo/internal/players/default\" to your binary ?")
	}
	if len(RegisteredSearchers) == 0 {
		return nil, errors.New("no registered searchers. Perhaps you need to import _ \"github.com/janpfeifer/isolationGo/internal/players/default\" to your binary ?")
	}

	agent := &Agent{LastResult: searchers.Result{Move: NoMove}}

	// Find scorer.
	for _, builder := range RegisteredScorers {
		s, err := builder(params)
		if err != nil {
			return nil, errors.WithMessagef(err, "AI configuration %q", config)
		}
		if s == nil {
			// Not this type of scorer.
			continue
		}
		if agent.Scorer != nil {
			return nil, errors.Errorf("multiple scorers defined in parameters %q", config)
		}
		agent.Scorer = s
	}
	if agent.Scorer == nil {
		return nil, errors.Errorf("no scorers defined in parameters %q", config)
	}

	// Find searcher.
	for _, builder := range RegisteredSearchers {
		s, err := builder(agent.Scorer, params)
		if err != nil {
			return nil, errors.WithMessagef(err, "AI configuration %q", config)
		}
		if s == nil {
			continue
		}
		if agent.Searcher != nil {
			return nil, errors.Errorf("multiple searchers defined in parameters %q", config)
		}
		agent.Searcher = s
	}
	if agent.Searcher == nil {
		return nil, errors.Errorf("no searchers defined in parameters %q", config)
	}

	// Check that all parameters were processed.
	if len(params) > 0 {
		return nil, errors.Errorf("unknown AI parameters \"%s\" passed", strings.Join(slices.Collect(generics.SortedKeys(params)), "\", \""))
	}
	klog.V(1).Infof("Created AI player %s", agent)
	return agent, nil
}

// String returns the searcher and scorer used.
func (a *Agent) String() string {
	return a.Searcher.String() + " / " + a.Scorer.String()
}

// ChooseMove implements the Player interface.
//
// Errors from the searcher other than running out of time are logged, and the first legal move
// is played instead of forfeiting the match.
func (a *Agent) ChooseMove(board *Board, legalMoves []Move, timeLeft searchers.TimeLeftFn) Move {
	if len(legalMoves) == 0 {
		a.LastResult = searchers.Result{Move: NoMove, Score: board.Utility(board.NextPlayer)}
		return NoMove
	}
	res, err := a.Searcher.Search(board, timeLeft)
	if err != nil {
		klog.Errorf("Move #%d: AI (%s) failed, playing first legal move: %+v", board.MoveNumber, a, err)
		res = searchers.Result{Move: legalMoves[0]}
	}
	a.LastResult = res
	if klog.V(2).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing %s", board.MoveNumber, a, res)
	}
	return res.Move
}

// Finalize is called at the end of a match.
func (a *Agent) Finalize() {
	if klog.V(1).Enabled() {
		klog.Infof("Player (%s) finalized", a)
	}
}
