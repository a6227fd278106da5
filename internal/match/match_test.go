package match

import (
	"context"
	"testing"
	"time"

	"github.com/janpfeifer/isolationGo/internal/players"
	_ "github.com/janpfeifer/isolationGo/internal/players/default"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted plays the first legal move, or a fixed move, optionally after a delay.
type scripted struct {
	fixed     bool
	move      Move
	delay     time.Duration
	finalized bool
	cancel    func()
}

func (s *scripted) ChooseMove(_ *Board, legalMoves []Move, _ searchers.TimeLeftFn) Move {
	if s.cancel != nil {
		s.cancel()
	}
	time.Sleep(s.delay)
	if s.fixed {
		return s.move
	}
	return legalMoves[0]
}

func (s *scripted) Finalize() { s.finalized = true }

func TestPlay(t *testing.T) {
	p0, err := players.New("alphabeta,max_depth=3")
	require.NoError(t, err)
	p1, err := players.New("random,seed=1")
	require.NoError(t, err)
	var moves int
	config := Config{
		Height: 5, Width: 5,
		TurnTime: time.Minute,
		OnMove: func(before *Board, move Move, after *Board) {
			moves++
			assert.Equal(t, before.MoveNumber+1, after.MoveNumber)
			assert.Equal(t, before.NextPlayer, after.OpponentPlayer())
			assert.Equal(t, move, after.Location(before.NextPlayer))
		},
	}
	o, err := Play(context.Background(), config, [NumPlayers]players.Player{p0, p1})
	require.NoError(t, err)
	assert.True(t, o.Board.IsFinished())
	assert.Equal(t, o.Board.Winner(), o.Winner)
	assert.Equal(t, PlayerInvalid, o.Forfeit)
	assert.Equal(t, moves, o.Board.MoveNumber-1)
	assert.Contains(t, o.String(), "wins")
}

func TestForfeit(t *testing.T) {
	// Illegal move: (0, 0) is taken by the first player.
	p0, p1 := &scripted{fixed: true, move: Move{0, 0}}, &scripted{fixed: true, move: Move{0, 0}}
	config := Config{Height: 3, Width: 3, TurnTime: time.Second}
	o, err := Play(context.Background(), config, [NumPlayers]players.Player{p0, p1})
	require.NoError(t, err)
	assert.Equal(t, PlayerSecond, o.Forfeit)
	assert.Equal(t, PlayerFirst, o.Winner)
	assert.Contains(t, o.Reason, "not a legal move")
	assert.True(t, p0.finalized)
	assert.True(t, p1.finalized)

	// Late move.
	p0, p1 = &scripted{delay: 20 * time.Millisecond}, &scripted{}
	config.TurnTime = 5 * time.Millisecond
	o, err = Play(context.Background(), config, [NumPlayers]players.Player{p0, p1})
	require.NoError(t, err)
	assert.Equal(t, PlayerFirst, o.Forfeit)
	assert.Equal(t, PlayerSecond, o.Winner)
	assert.Contains(t, o.String(), "forfeits")

	// Without time limit the slow player is fine.
	p0 = &scripted{delay: 20 * time.Millisecond}
	config.Unlimited[PlayerFirst] = true
	o, err = Play(context.Background(), config, [NumPlayers]players.Player{p0, p1})
	require.NoError(t, err)
	assert.Equal(t, PlayerInvalid, o.Forfeit)
	assert.NotEqual(t, PlayerInvalid, o.Winner)

	// No move counts as an illegal move.
	p0 = &scripted{fixed: true, move: NoMove}
	o, err = Play(context.Background(), config, [NumPlayers]players.Player{p0, p1})
	require.NoError(t, err)
	assert.Equal(t, PlayerFirst, o.Forfeit)
}

func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p0, p1 := &scripted{cancel: cancel}, &scripted{}
	config := Config{Height: 5, Width: 5, TurnTime: time.Second}
	o, err := Play(ctx, config, [NumPlayers]players.Player{p0, p1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, PlayerInvalid, o.Winner)
	assert.Equal(t, 1, o.Board.MoveNumber)
	assert.Contains(t, o.String(), "interrupted")

	_, err = Play(context.Background(), Config{Height: 5, Width: 5}, [NumPlayers]players.Player{p0, p1})
	assert.Error(t, err)
}
