// Package heuristics implements the static evaluation of Isolation boards as a weighted
// sum of primitive features: mobility (number of legal moves) and distance to the center of
// the board, for the player and for its opponent.
//
// There is a single scoring function, WeightedScore, and every named heuristic is just a
// different Weights value. Composite heuristics are built with Weights.Add.
package heuristics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/isolationGo/internal/ai"
	. "github.com/janpfeifer/isolationGo/internal/state"
)

// Weights of each of the primitive features. Features with weight 0 are not computed.
type Weights struct {
	// OwnMoves and OppMoves weight the number of legal moves of the player and its opponent.
	OwnMoves, OppMoves float32

	// OwnDistance and OppDistance weight the Euclidean distance from each player's location to
	// the center of the board.
	OwnDistance, OppDistance float32

	// OwnNormDistance and OppNormDistance weight the same distance as above, but normalized by
	// the largest possible distance to the center, so it is always in [0, 1].
	OwnNormDistance, OppNormDistance float32
}

// Add returns the weights of the sum of the two heuristics.
func (w Weights) Add(w2 Weights) Weights {
	return Weights{
		OwnMoves:        w.OwnMoves + w2.OwnMoves,
		OppMoves:        w.OppMoves + w2.OppMoves,
		OwnDistance:     w.OwnDistance + w2.OwnDistance,
		OppDistance:     w.OppDistance + w2.OppDistance,
		OwnNormDistance: w.OwnNormDistance + w2.OwnNormDistance,
		OppNormDistance: w.OppNormDistance + w2.OppNormDistance,
	}
}

// Mobility returns the weights of a moves-only heuristic.
func Mobility(own, opp float32) Weights {
	return Weights{OwnMoves: own, OppMoves: opp}
}

// CenterDistance returns the weights of a distance-only heuristic, optionally normalized.
func CenterDistance(own, opp float32, normalize bool) Weights {
	if normalize {
		return Weights{OwnNormDistance: own, OppNormDistance: opp}
	}
	return Weights{OwnDistance: own, OppDistance: opp}
}

// WeightedScore returns the weighted sum of the features of the board, from the perspective
// of player.
//
// If player already won or lost, it returns ai.WinGameScore or ai.LoseGameScore instead,
// irrespective of the weights.
func WeightedScore(b *Board, player PlayerNum, w Weights) float32 {
	if isEnd, score := ai.EndGameScore(b, player); isEnd {
		return score
	}
	opponent := player.Opponent()
	var score float32
	if w.OwnMoves != 0 {
		score += w.OwnMoves * float32(len(b.LegalMoves(player)))
	}
	if w.OppMoves != 0 {
		score += w.OppMoves * float32(len(b.LegalMoves(opponent)))
	}
	if w.OwnDistance != 0 || w.OppDistance != 0 || w.OwnNormDistance != 0 || w.OppNormDistance != 0 {
		ownDist := centerDistance(b, b.Location(player))
		oppDist := centerDistance(b, b.Location(opponent))
		score += w.OwnDistance*ownDist + w.OppDistance*oppDist
		if maxDist := maxCenterDistance(b); maxDist > 0 {
			score += (w.OwnNormDistance*ownDist + w.OppNormDistance*oppDist) / maxDist
		}
	}
	return score
}

// centerDistance returns the Euclidean distance from the location to the geometric center of
// the board. Players not yet placed are considered to be at the center.
func centerDistance(b *Board, loc Move) float32 {
	if loc == NoMove {
		return 0
	}
	centerRow, centerCol := float32(b.Height-1)/2, float32(b.Width-1)/2
	return math32.Hypot(float32(loc.Row)-centerRow, float32(loc.Col)-centerCol)
}

// maxCenterDistance is the distance from a corner to the center.
func maxCenterDistance(b *Board) float32 {
	return math32.Hypot(float32(b.Height-1)/2, float32(b.Width-1)/2)
}

// Scorer implements ai.Scorer for a named set of Weights.
type Scorer struct {
	name    string
	Weights Weights
}

// Assert that Scorer is an ai.Scorer.
var _ ai.Scorer = (*Scorer)(nil)

// New returns a Scorer with the given name and weights.
func New(name string, weights Weights) *Scorer {
	return &Scorer{name: name, Weights: weights}
}

// Score implements ai.Scorer.
func (s *Scorer) Score(b *Board, player PlayerNum) float32 {
	return WeightedScore(b, player, s.Weights)
}

// String implements ai.Scorer.
func (s *Scorer) String() string {
	return s.name
}

// GoString prints the weights along with the name, used when logging.
func (s *Scorer) GoString() string {
	return fmt.Sprintf("heuristics.Scorer{%q, %+v}", s.name, s.Weights)
}
