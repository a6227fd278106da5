package heuristics

import (
	"slices"
	"strings"

	"github.com/janpfeifer/isolationGo/internal/generics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Named weights. Aggressive variants penalize the opponent's position strongly, relaxed ones
// only mildly.
var (
	// Null only distinguishes won and lost boards.
	Null = Weights{}

	// Open counts only the player's own moves.
	Open = Mobility(1, 0)

	// Improved is the classic "own moves minus opponent moves".
	Improved = Mobility(1, -1)

	AggressiveMove = Mobility(1, -2.5)
	RelaxedMove    = Mobility(1, -0.5)

	AggressiveDistance     = CenterDistance(-1.5, 3, false)
	RelaxedDistance        = CenterDistance(-1.5, 0.75, false)
	AggressiveDistanceNorm = CenterDistance(-1.5, 3, true)
	RelaxedDistanceNorm    = CenterDistance(-1.5, 0.75, true)

	RelaxedMoveRelaxedDistance        = RelaxedMove.Add(RelaxedDistance)
	RelaxedMoveAggressiveDistance     = RelaxedMove.Add(AggressiveDistance)
	RelaxedMoveRelaxedDistanceNorm    = RelaxedMove.Add(RelaxedDistanceNorm)
	RelaxedMoveAggressiveDistanceNorm = RelaxedMove.Add(AggressiveDistanceNorm)

	// Default heuristic used if none is configured.
	Default = RelaxedMoveAggressiveDistanceNorm
)

// ByName lists the named heuristics that can be selected with the "heuristic" parameter.
var ByName = map[string]Weights{
	"default":                               Default,
	"null":                                  Null,
	"open":                                  Open,
	"improved":                              Improved,
	"aggressive_move":                       AggressiveMove,
	"relaxed_move":                          RelaxedMove,
	"aggressive_distance":                   AggressiveDistance,
	"relaxed_distance":                      RelaxedDistance,
	"aggressive_distance_norm":              AggressiveDistanceNorm,
	"relaxed_distance_norm":                 RelaxedDistanceNorm,
	"relaxed_move_relaxed_distance":         RelaxedMoveRelaxedDistance,
	"relaxed_move_aggressive_distance":      RelaxedMoveAggressiveDistance,
	"relaxed_move_relaxed_distance_norm":    RelaxedMoveRelaxedDistanceNorm,
	"relaxed_move_aggressive_distance_norm": RelaxedMoveAggressiveDistanceNorm,
}

// NewFromParams returns the Scorer selected with "heuristic=<name>" (default is "default"),
// with any of the individual weights overridden by the parameters w_own_moves, w_opp_moves,
// w_own_dist, w_opp_dist, w_own_dist_norm and w_opp_dist_norm.
//
// It always returns a scorer, since there is no other type of scorer to choose from.
func NewFromParams(params parameters.Params) (*Scorer, error) {
	name, err := parameters.PopParamOr(params, "heuristic", "default")
	if err != nil {
		return nil, err
	}
	weights, found := ByName[name]
	if !found {
		names := slices.Collect(generics.SortedKeys(ByName))
		return nil, errors.Errorf("unknown heuristic %q, valid values are: %s", name, strings.Join(names, ", "))
	}

	overridden := false
	for _, override := range []struct {
		key    string
		weight *float32
	}{
		{"w_own_moves", &weights.OwnMoves},
		{"w_opp_moves", &weights.OppMoves},
		{"w_own_dist", &weights.OwnDistance},
		{"w_opp_dist", &weights.OppDistance},
		{"w_own_dist_norm", &weights.OwnNormDistance},
		{"w_opp_dist_norm", &weights.OppNormDistance},
	} {
		if _, found := params[override.key]; found {
			overridden = true
		}
		*override.weight, err = parameters.PopParamOr(params, override.key, *override.weight)
		if err != nil {
			return nil, err
		}
	}
	if overridden {
		name += "+custom"
	}
	scorer := New(name, weights)
	klog.V(1).Infof("Heuristic %#v", scorer)
	return scorer, nil
}
