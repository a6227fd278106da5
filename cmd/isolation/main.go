// isolation plays a match of Isolation on the terminal: human vs AI, AI vs AI, or human vs human.
//
// Each player is either "human" or an AI configuration, see players.New. E.g.:
//
//	isolation -p0=human -p1="heuristic=improved,alphabeta" -turn_time=1s
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/players"
	_ "github.com/janpfeifer/isolationGo/internal/players/default"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/cli"
	"github.com/janpfeifer/isolationGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagPlayers = [NumPlayers]*string{
		flag.String("p0", "human", `First player: "human" or an AI configuration, e.g. "heuristic=improved,alphabeta".`),
		flag.String("p1", players.DefaultPlayerConfig, `Second player: "human" or an AI configuration.`),
	}
	flagHeight   = flag.Int("height", DefaultHeight, "Number of rows of the board.")
	flagWidth    = flag.Int("width", DefaultWidth, "Number of columns of the board.")
	flagTurnTime = flag.Duration("turn_time", 150*time.Millisecond,
		"Time an AI player has to choose a move. Late moves forfeit the match. Human players have no limit.")
	flagQuiet = flag.Bool("quiet", false, "Quiet mode: only the moves and the final board are printed.")
	flagColor = flag.Bool("color", true, "Use colors in the terminal.")
)

// humanPlayer reads moves from the terminal.
type humanPlayer struct {
	ui *cli.UI
}

var _ players.Player = (*humanPlayer)(nil)

func (h *humanPlayer) ChooseMove(board *Board, legalMoves []Move, _ searchers.TimeLeftFn) Move {
	if len(legalMoves) == 0 {
		return NoMove
	}
	h.ui.Print(board)
	move, err := h.ui.ReadMove(board)
	if err != nil {
		klog.Errorf("Failed to read move: %v", err)
		return NoMove
	}
	return move
}

func (h *humanPlayer) Finalize() {}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagHeight <= 0 || *flagWidth <= 0 {
		klog.Exitf("Invalid board dimensions --height=%d --width=%d", *flagHeight, *flagWidth)
	}
	if *flagTurnTime <= 0 {
		klog.Exitf("Invalid --turn_time=%s", *flagTurnTime)
	}

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	ui := cli.New(*flagColor, false)
	config := match.Config{Height: *flagHeight, Width: *flagWidth, TurnTime: *flagTurnTime}
	var matchPlayers [NumPlayers]players.Player
	for playerNum, playerConfig := range flagPlayers {
		if strings.ToLower(*playerConfig) == "human" {
			matchPlayers[playerNum] = &humanPlayer{ui: ui}
			config.Unlimited[playerNum] = true
			continue
		}
		matchPlayers[playerNum] = must.M1(players.New(*playerConfig))
	}

	// AI moves are shown with a spinner while thinking.
	var spinner *spinning.Spinning
	config.BeforeMove = func(board *Board) {
		if config.Unlimited[board.NextPlayer] || *flagQuiet {
			return
		}
		ui.Print(board)
		fmt.Printf("\t%s thinking ", ui.PlayerName(board.NextPlayer))
		spinner = spinning.New(ctx, os.Stdout)
	}
	config.OnMove = func(before *Board, move Move, _ *Board) {
		if spinner != nil {
			spinner.Done()
			spinner = nil
		}
		if *flagQuiet || !config.Unlimited[before.NextPlayer] {
			fmt.Printf("%s plays %s\n", ui.PlayerName(before.NextPlayer), move)
		}
	}

	outcome, err := match.Play(ctx, config, matchPlayers)
	if spinner != nil {
		spinner.Done()
	}
	if err != nil {
		klog.Exitf("Failed to run match: %+v", err)
	}
	ui.Print(outcome.Board)
	if outcome.Forfeit != PlayerInvalid {
		ui.PrintForfeit(outcome.Forfeit, outcome.Reason)
		return
	}
	ui.PrintWinner(outcome.Board)
}
