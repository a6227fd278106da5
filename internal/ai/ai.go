// Package ai (Artificial Intelligence) defines standard interfaces that AIs for the game
// have to implement.
package ai

import (
	. "github.com/janpfeifer/isolationGo/internal/state"
)

// WinGameScore for the winning side. For the losing side it is LoseGameScore.
//
// They are the same as the board utilities, so a static evaluation of a finished board and the
// terminal utility of the same board always agree.
const (
	WinGameScore  = WinUtility
	LoseGameScore = LoseUtility
)

// Scorer (aka. evaluator) returns a static score (value) of a board, from the perspective of
// player -- not necessarily the player to move.
//
// Implementations must be total and free of side effects, and they must return WinGameScore
// when player has won and LoseGameScore when player has lost (see EndGameScore).
type Scorer interface {
	Score(board *Board, player PlayerNum) float32
	String() string
}

// EndGameScore returns whether the match is decided, and if so the hard-coded score of the
// win or loss for player.
// If isEnd is false, the score should be ignored.
func EndGameScore(b *Board, player PlayerNum) (isEnd bool, score float32) {
	if b.IsLoser(player) {
		return true, LoseGameScore
	}
	if b.IsWinner(player) {
		return true, WinGameScore
	}
	return false, 0
}
