// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/isolationGo/internal/generics"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// CharsPerColumn used to render each cell.
const CharsPerColumn = 3

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// UI prints boards and reads moves from a human player.
type UI struct {
	out         io.Writer
	reader      *bufio.Reader
	color       bool
	clearScreen bool

	styles [numCellTypes]lipgloss.Style
}

type cellType int

const (
	cellBlank cellType = iota
	cellBlocked
	cellLegal
	cellFirst
	cellSecond
	numCellTypes
)

var (
	moveParser = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)[\s,]*$`)

	// ErrTooManyAttempts is returned by ReadMove if the user failed to input a valid move.
	ErrTooManyAttempts = errors.New("failed to read a valid move 3 times")
)

// New creates a UI that writes to stdout and reads from stdin.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdout, os.Stdin, color, clearScreen)
}

// NewWithIO creates a UI with the given output and input.
func NewWithIO(out io.Writer, in io.Reader, color bool, clearScreen bool) *UI {
	ui := &UI{
		out:         out,
		reader:      bufio.NewReader(in),
		color:       color,
		clearScreen: clearScreen,
	}
	for ii := range ui.styles {
		ui.styles[ii] = lipgloss.NewStyle().Width(CharsPerColumn).Align(lipgloss.Center)
	}
	if color {
		ui.styles[cellBlocked] = ui.styles[cellBlocked].Foreground(lipgloss.Color("8"))
		ui.styles[cellLegal] = ui.styles[cellLegal].Foreground(lipgloss.Color("11")).Bold(true)
		ui.styles[cellFirst] = ui.styles[cellFirst].
			Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true)
		ui.styles[cellSecond] = ui.styles[cellSecond].
			Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Bold(true)
	}
	return ui
}

// terminalWidth returns the width of the output if it is a terminal, or 0.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// PlayerName returns the name of the player, colored if color is enabled.
func (ui *UI) PlayerName(player PlayerNum) string {
	name := player.String() + " Player"
	switch player {
	case PlayerFirst:
		return ui.styles[cellFirst].UnsetWidth().Render(name)
	case PlayerSecond:
		return ui.styles[cellSecond].UnsetWidth().Render(name)
	}
	return name
}

// Print the move number, the board and whose turn it is.
func (ui *UI) Print(board *Board) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	_, _ = fmt.Fprintf(ui.out, "\nMove #%d\n\n", board.MoveNumber)
	ui.printCentered(ui.FormatBoard(board, !board.IsFinished()))
	_, _ = fmt.Fprintln(ui.out)
	if !board.IsFinished() {
		_, _ = fmt.Fprintf(ui.out, "%s turn to play\n", ui.PlayerName(board.NextPlayer))
	}
}

// FormatBoard renders the board with row and column numbers. Players are shown as "1" and "2",
// blocked cells as "-" and blank cells as ".".
//
// If highlightMoves is set, the legal moves of the next player are shown as "*".
func (ui *UI) FormatBoard(board *Board, highlightMoves bool) string {
	legal := generics.MakeSet[Move]()
	if highlightMoves {
		legal.Insert(board.LegalMoves(board.NextPlayer)...)
	}
	header := lipgloss.NewStyle().Width(CharsPerColumn).Align(lipgloss.Right)
	var sb strings.Builder
	sb.WriteString(header.Render(""))
	for col := range board.Width {
		sb.WriteString(header.Render(strconv.Itoa(col)))
	}
	sb.WriteByte('\n')
	for row := range board.Height {
		sb.WriteString(header.Render(strconv.Itoa(row)))
		for col := range board.Width {
			m := Move{row, col}
			var ct cellType
			var symbol string
			switch {
			case m == board.Location(PlayerFirst):
				ct, symbol = cellFirst, "1"
			case m == board.Location(PlayerSecond):
				ct, symbol = cellSecond, "2"
			case legal.Has(m):
				ct, symbol = cellLegal, "*"
			case board.IsBlocked(m):
				ct, symbol = cellBlocked, "-"
			default:
				ct, symbol = cellBlank, "."
			}
			sb.WriteString(ui.styles[ct].Render(symbol))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintWinner of a finished board.
func (ui *UI) PrintWinner(board *Board) {
	winner := board.Winner()
	_, _ = fmt.Fprintln(ui.out)
	if winner == PlayerInvalid {
		ui.printCentered("*** Match not finished ***")
	} else {
		ui.printCentered(fmt.Sprintf("*** %s WINS!! Congratulations! ***", ui.PlayerName(winner)))
	}
	_, _ = fmt.Fprintln(ui.out)
}

// PrintForfeit reports that player lost for not playing a legal move in time.
func (ui *UI) PrintForfeit(player PlayerNum, reason string) {
	_, _ = fmt.Fprintln(ui.out)
	ui.printCentered(fmt.Sprintf("*** %s forfeits: %s. %s WINS!! ***",
		ui.PlayerName(player), reason, ui.PlayerName(player.Opponent())))
	_, _ = fmt.Fprintln(ui.out)
}

// ReadMove reads a "row col" move for board.NextPlayer. It gives the user 3 attempts to type a
// legal move, and returns ErrTooManyAttempts after that.
func (ui *UI) ReadMove(board *Board) (Move, error) {
	for range 3 {
		_, _ = fmt.Fprintf(ui.out, "    %s move (row col) > ", ui.PlayerName(board.NextPlayer))
		text, err := ui.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || text == "") {
			return NoMove, errors.Wrap(err, "failed to read move")
		}
		text = strings.TrimSpace(text)
		matches := moveParser.FindStringSubmatch(text)
		if len(matches) != 3 {
			_, _ = fmt.Fprintf(ui.out, "    * Failed to parse your input %q, please type the row and column, e.g. \"2 3\".\n", text)
			continue
		}
		row, _ := strconv.Atoi(matches[1])
		col, _ := strconv.Atoi(matches[2])
		move := Move{row, col}
		if !board.IsLegal(move) {
			_, _ = fmt.Fprintf(ui.out, "    * %s is not a legal move, valid moves are: %s\n",
				move, strings.Join(generics.SliceMap(board.LegalMoves(board.NextPlayer), Move.String), " "))
			continue
		}
		return move, nil
	}
	return NoMove, ErrTooManyAttempts
}
