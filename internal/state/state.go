// Package state holds the Isolation board: cells, blocked positions, where each player stands
// and whose turn it is.
//
// A Board is never changed once built: Board.Act returns a new Board with the move applied, so
// searchers can branch freely from any position.
package state

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

const (
	// NumPlayers is always 2.
	NumPlayers = 2

	// DefaultHeight and DefaultWidth of a board.
	DefaultHeight = 7
	DefaultWidth  = 7
)

// PlayerNum is the either 0 or 1 corresponding to the first player to move or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents an invalid PlayerNum.
	PlayerInvalid
)

//go:generate go tool enumer -type=PlayerNum -trimprefix=Player -values -text -json state.go

// Opponent returns the other player.
func (p PlayerNum) Opponent() PlayerNum {
	return 1 - p
}

// WinUtility is the utility of a won match, for the winner. The loser gets LoseUtility.
//
// It is finite so that it can be compared and negated safely, and any heuristic score is
// expected to be much smaller in magnitude.
const (
	WinUtility  = float32(math32.MaxFloat32)
	LoseUtility = -WinUtility
)

// Move is the cell (row, column) a player jumps to.
type Move struct {
	Row, Col int
}

// NoMove is the sentinel returned when there are no moves available.
var NoMove = Move{-1, -1}

// String returns a text representation of Move.
func (m Move) String() string {
	if m == NoMove {
		return "(no move)"
	}
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// knightJumps are the L-shaped jumps a player can make, in the order they are enumerated.
var knightJumps = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board represents the state of a match.
type Board struct {
	Height, Width int

	// MoveNumber starts at 1 and is incremented at every ply.
	MoveNumber int
	NextPlayer PlayerNum

	// blocked cells, indexed by row*Width+col. Cells where players stand are also blocked.
	blocked   []bool
	locations [NumPlayers]Move
}

// NewBoard creates an empty board, with neither player placed yet.
func NewBoard(height, width int) *Board {
	if height <= 0 || width <= 0 {
		exceptions.Panicf("invalid board dimensions %dx%d", height, width)
	}
	return &Board{
		Height:     height,
		Width:      width,
		MoveNumber: 1,
		NextPlayer: PlayerFirst,
		blocked:    make([]bool, height*width),
		locations:  [NumPlayers]Move{NoMove, NoMove},
	}
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.blocked = make([]bool, len(b.blocked))
	copy(newB.blocked, b.blocked)
	return newB
}

// OpponentPlayer returns the player that is not the next one to play.
func (b *Board) OpponentPlayer() PlayerNum {
	return b.NextPlayer.Opponent()
}

// InBounds returns whether the move points to a cell of the board.
func (b *Board) InBounds(m Move) bool {
	return m.Row >= 0 && m.Row < b.Height && m.Col >= 0 && m.Col < b.Width
}

// IsBlocked returns whether the cell was already visited by any player.
// Out of bounds cells are considered blocked.
func (b *Board) IsBlocked(m Move) bool {
	if !b.InBounds(m) {
		return true
	}
	return b.blocked[m.Row*b.Width+m.Col]
}

// Block marks a cell as unavailable, without moving any player. Used to set up positions.
func (b *Board) Block(m Move) {
	if !b.InBounds(m) {
		exceptions.Panicf("Block(%s) out of bounds for %dx%d board", m, b.Height, b.Width)
	}
	b.blocked[m.Row*b.Width+m.Col] = true
}

// Location of the player, or NoMove if the player hasn't been placed yet.
func (b *Board) Location(player PlayerNum) Move {
	return b.locations[player]
}

// SetLocation places the player in the given cell, blocking it. Used to set up positions.
func (b *Board) SetLocation(player PlayerNum, m Move) {
	b.Block(m)
	b.locations[player] = m
}

// BlankCells returns all cells not blocked, in row-major order.
func (b *Board) BlankCells() []Move {
	cells := make([]Move, 0, b.NumBlankCells())
	for row := range b.Height {
		for col := range b.Width {
			if !b.blocked[row*b.Width+col] {
				cells = append(cells, Move{row, col})
			}
		}
	}
	return cells
}

// NumBlankCells returns the number of cells not blocked yet.
func (b *Board) NumBlankCells() (count int) {
	for _, blocked := range b.blocked {
		if !blocked {
			count++
		}
	}
	return
}

// LegalMoves available to player. The order is fixed, and searchers use it to break ties.
//
// A player not yet placed can move to any blank cell.
func (b *Board) LegalMoves(player PlayerNum) []Move {
	loc := b.locations[player]
	if loc == NoMove {
		return b.BlankCells()
	}
	moves := make([]Move, 0, len(knightJumps))
	for _, jump := range knightJumps {
		m := Move{loc.Row + jump[0], loc.Col + jump[1]}
		if !b.IsBlocked(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// HasLegalMoves returns whether player has at least one move available.
func (b *Board) HasLegalMoves(player PlayerNum) bool {
	loc := b.locations[player]
	if loc == NoMove {
		return b.NumBlankCells() > 0
	}
	for _, jump := range knightJumps {
		if !b.IsBlocked(Move{loc.Row + jump[0], loc.Col + jump[1]}) {
			return true
		}
	}
	return false
}

// IsLegal returns whether the move is available to the next player.
func (b *Board) IsLegal(m Move) bool {
	if b.IsBlocked(m) {
		return false
	}
	loc := b.locations[b.NextPlayer]
	if loc == NoMove {
		return true
	}
	for _, jump := range knightJumps {
		if m.Row == loc.Row+jump[0] && m.Col == loc.Col+jump[1] {
			return true
		}
	}
	return false
}

// Act returns a new board with the move of b.NextPlayer applied. The board b is not changed.
//
// It panics if the move is not legal: use Apply for moves that are not known to be valid.
func (b *Board) Act(m Move) *Board {
	if !b.IsLegal(m) {
		exceptions.Panicf("move #%d: %s is not a legal move for player %s", b.MoveNumber, m, b.NextPlayer)
	}
	newB := b.Clone()
	newB.SetLocation(b.NextPlayer, m)
	newB.NextPlayer = b.NextPlayer.Opponent()
	newB.MoveNumber++
	return newB
}

// Apply is like Act, but returns an error if the move is not legal.
func (b *Board) Apply(m Move) (*Board, error) {
	if !b.IsLegal(m) {
		return nil, errors.Errorf("move #%d: %s is not a legal move for player %s", b.MoveNumber, m, b.NextPlayer)
	}
	return b.Act(m), nil
}

// IsLoser returns whether player is to move and has no moves available.
func (b *Board) IsLoser(player PlayerNum) bool {
	return player == b.NextPlayer && !b.HasLegalMoves(player)
}

// IsWinner returns whether the opponent of player is to move and has no moves available.
func (b *Board) IsWinner(player PlayerNum) bool {
	return player != b.NextPlayer && !b.HasLegalMoves(b.NextPlayer)
}

// IsFinished returns whether the next player has no moves left.
func (b *Board) IsFinished() bool {
	return !b.HasLegalMoves(b.NextPlayer)
}

// Winner of the match, or PlayerInvalid if it is not finished.
func (b *Board) Winner() PlayerNum {
	if !b.IsFinished() {
		return PlayerInvalid
	}
	return b.OpponentPlayer()
}

// Utility of the board from the player's perspective: WinUtility if player won, LoseUtility
// if player lost, and 0 if the match is not finished.
func (b *Board) Utility(player PlayerNum) float32 {
	if b.IsWinner(player) {
		return WinUtility
	}
	if b.IsLoser(player) {
		return LoseUtility
	}
	return 0
}

// String returns a plain text rendering of the board: "1" and "2" are the players, "-" a
// blocked cell and "." a blank one.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Height {
		for col := range b.Width {
			m := Move{row, col}
			switch {
			case m == b.locations[PlayerFirst]:
				sb.WriteString(" 1")
			case m == b.locations[PlayerSecond]:
				sb.WriteString(" 2")
			case b.IsBlocked(m):
				sb.WriteString(" -")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
