// Package players provides a factory of AI players from configuration strings.
// Scorers and searchers register themselves in RegisteredScorers and RegisteredSearchers,
// usually by importing players/default.
package players

import (
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
)

// Player is anything that is able to play the game.
type Player interface {
	// ChooseMove returns the move to play on board, out of legalMoves, before timeLeft runs out.
	// It returns state.NoMove if legalMoves is empty.
	//
	// A nil timeLeft means there is no time limit.
	ChooseMove(board *Board, legalMoves []Move, timeLeft searchers.TimeLeftFn) Move

	// Finalize is called at the end of a match.
	Finalize()
}

// ScorerBuilder returns a scorer if the params select it, or nil otherwise. It must pop from
// params the parameters it uses.
type ScorerBuilder func(params parameters.Params) (ai.Scorer, error)

// SearcherBuilder returns a searcher if the params select it, or nil otherwise. It must pop from
// params the parameters it uses.
type SearcherBuilder func(scorer ai.Scorer, params parameters.Params) (searchers.Searcher, error)

var (
	// RegisteredScorers is used by New to find the scorer selected by a configuration.
	RegisteredScorers []ScorerBuilder

	// RegisteredSearchers is used by New to find the searcher selected by a configuration.
	RegisteredSearchers []SearcherBuilder

	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "alphabeta,iterative"
)
