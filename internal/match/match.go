// Package match runs a match between two players, enforcing the rules on the caller side: a
// player that returns a move late, or an illegal move, forfeits.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Config of a match.
type Config struct {
	Height, Width int

	// TurnTime is the time a player has to choose a move. Players with Unlimited set have no limit.
	TurnTime  time.Duration
	Unlimited [NumPlayers]bool

	// OnMove is called after each move is applied, if not nil.
	OnMove func(before *Board, move Move, after *Board)

	// BeforeMove is called before a player is asked to move, if not nil.
	BeforeMove func(board *Board)
}

// Outcome of a match.
type Outcome struct {
	ID    uuid.UUID
	Board *Board

	// Winner of the match, or PlayerInvalid if it was interrupted.
	Winner PlayerNum

	// Forfeit is the player that lost by not playing a legal move in time, or PlayerInvalid.
	Forfeit PlayerNum
	Reason  string
}

// String implements fmt.Stringer.
func (o *Outcome) String() string {
	switch {
	case o.Forfeit != PlayerInvalid:
		return fmt.Sprintf("match %s: %s forfeits at move #%d (%s)", o.ID, o.Forfeit, o.Board.MoveNumber, o.Reason)
	case o.Winner != PlayerInvalid:
		return fmt.Sprintf("match %s: %s wins at move #%d", o.ID, o.Winner, o.Board.MoveNumber)
	default:
		return fmt.Sprintf("match %s: interrupted at move #%d", o.ID, o.Board.MoveNumber)
	}
}

// ErrInterrupted is returned if the context is cancelled during the match.
var ErrInterrupted = errors.New("match interrupted")

// Play a match from an empty board until it is finished or a player forfeits.
//
// If ctx is cancelled it returns the Outcome so far, and an error wrapping ErrInterrupted.
func Play(ctx context.Context, config Config, matchPlayers [NumPlayers]players.Player) (*Outcome, error) {
	if config.TurnTime <= 0 && !(config.Unlimited[0] && config.Unlimited[1]) {
		return nil, errors.Errorf("invalid turn time %s", config.TurnTime)
	}
	o := &Outcome{
		ID:      uuid.New(),
		Board:   NewBoard(config.Height, config.Width),
		Winner:  PlayerInvalid,
		Forfeit: PlayerInvalid,
	}
	defer func() {
		for _, p := range matchPlayers {
			p.Finalize()
		}
	}()

	for !o.Board.IsFinished() {
		if ctx.Err() != nil {
			return o, errors.Wrapf(ErrInterrupted, "match %s at move #%d", o.ID, o.Board.MoveNumber)
		}
		board := o.Board
		playerNum := board.NextPlayer
		if config.BeforeMove != nil {
			config.BeforeMove(board)
		}

		var timeLeft searchers.TimeLeftFn
		var deadline time.Time
		if !config.Unlimited[playerNum] {
			deadline = time.Now().Add(config.TurnTime)
			timeLeft = func() time.Duration {
				if ctx.Err() != nil {
					return 0
				}
				return time.Until(deadline)
			}
		}
		// Players get a copy, so they can't change the match board.
		move := matchPlayers[playerNum].ChooseMove(board.Clone(), board.LegalMoves(playerNum), timeLeft)
		if ctx.Err() != nil {
			return o, errors.Wrapf(ErrInterrupted, "match %s at move #%d", o.ID, board.MoveNumber)
		}
		if timeLeft != nil && time.Now().After(deadline) {
			o.forfeit(playerNum, fmt.Sprintf("played %s after the turn time of %s", move, config.TurnTime))
			return o, nil
		}
		newBoard, err := board.Apply(move)
		if err != nil {
			o.forfeit(playerNum, err.Error())
			return o, nil
		}
		if klog.V(2).Enabled() {
			klog.Infof("Match %s, move #%d: %s plays %s", o.ID, board.MoveNumber, playerNum, move)
		}
		if config.OnMove != nil {
			config.OnMove(board, move, newBoard)
		}
		o.Board = newBoard
	}
	o.Winner = o.Board.Winner()
	klog.V(1).Info(o)
	return o, nil
}

func (o *Outcome) forfeit(player PlayerNum, reason string) {
	o.Forfeit = player
	o.Winner = player.Opponent()
	o.Reason = reason
	klog.V(1).Info(o)
}
