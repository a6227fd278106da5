// Package _default registers the default players that can be included in any
// front-end for isolationGo.
//
// It includes the heuristics scorers, and the minimax, alpha-beta and random searchers. The
// depth searchers are driven by searchers/iterative.
package _default

import (
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/isolationGo/internal/searchers/iterative"
	"github.com/janpfeifer/isolationGo/internal/searchers/minimax"
)

func init() {
	players.RegisteredScorers = append(players.RegisteredScorers,
		func(params parameters.Params) (ai.Scorer, error) {
			scorer, err := heuristics.NewFromParams(params)
			if scorer == nil || err != nil {
				return nil, err
			}
			return scorer, nil
		})

	players.RegisteredSearchers = append(players.RegisteredSearchers,
		withTimeBudget(minimax.NewFromParams),
		withTimeBudget(alphabeta.NewFromParams),
		func(_ ai.Scorer, params parameters.Params) (searchers.Searcher, error) {
			return searchers.NewRandomFromParams(params)
		})
}

// withTimeBudget converts a DepthSearcher builder to a SearcherBuilder, wrapping the selected
// searcher with iterative.Searcher.
func withTimeBudget(builder func(ai.Scorer, parameters.Params) (searchers.DepthSearcher, error)) players.SearcherBuilder {
	return func(scorer ai.Scorer, params parameters.Params) (searchers.Searcher, error) {
		base, err := builder(scorer, params)
		if base == nil || err != nil {
			return nil, err
		}
		s, err := iterative.NewFromParams(base, params)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
