package cli

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/janpfeifer/isolationGo/internal/state"
	. "github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardFields splits the rendered board in lines of fields.
func boardFields(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		rows = append(rows, strings.Fields(ansiFilter.ReplaceAllString(line, "")))
	}
	return rows
}

func TestFormatBoard(t *testing.T) {
	ui := NewWithIO(&bytes.Buffer{}, strings.NewReader(""), false, false)
	b := BuildBoard(Layout{
		Height: 3, Width: 3,
		Locations:  [NumPlayers]Move{{1, 1}, {0, 0}},
		Blocked:    []Move{{2, 2}},
		NextPlayer: PlayerSecond,
	})
	assert.Equal(t, [][]string{
		{"0", "1", "2"},
		{"0", "2", ".", "."},
		{"1", ".", "1", "."},
		{"2", ".", ".", "-"},
	}, boardFields(ui.FormatBoard(b, false)))

	assert.Equal(t, [][]string{
		{"0", "1", "2"},
		{"0", "2", ".", "."},
		{"1", ".", "1", "*"},
		{"2", ".", "*", "-"},
	}, boardFields(ui.FormatBoard(b, true)))
}

func TestReadMove(t *testing.T) {
	b := CenterAndCorner()
	var out bytes.Buffer
	ui := NewWithIO(&out, strings.NewReader("hello\n0 0\n2 1\n"), false, false)
	move, err := ui.ReadMove(b)
	require.NoError(t, err)
	assert.Equal(t, Move{2, 1}, move)
	assert.Contains(t, out.String(), "Failed to parse")
	assert.Contains(t, out.String(), "not a legal move")

	// Without a trailing new line.
	ui = NewWithIO(&out, strings.NewReader("1, 2"), false, false)
	move, err = ui.ReadMove(b)
	require.NoError(t, err)
	assert.Equal(t, Move{1, 2}, move)

	ui = NewWithIO(&out, strings.NewReader("a\nb\nc\n1 2\n"), false, false)
	_, err = ui.ReadMove(b)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	ui = NewWithIO(&out, strings.NewReader(""), false, false)
	_, err = ui.ReadMove(b)
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	ui := NewWithIO(&out, strings.NewReader(""), false, false)
	b := CenterAndCorner()
	ui.Print(b)
	assert.Contains(t, out.String(), "Move #3")
	assert.Contains(t, out.String(), "Second Player turn to play")

	out.Reset()
	b = b.Act(Move{1, 2})
	ui.Print(b)
	ui.PrintWinner(b)
	assert.NotContains(t, out.String(), "turn to play")
	assert.Contains(t, out.String(), "Second Player WINS")

	out.Reset()
	ui.PrintForfeit(PlayerFirst, "out of time")
	assert.Contains(t, out.String(), "First Player forfeits: out of time. Second Player WINS")
}
