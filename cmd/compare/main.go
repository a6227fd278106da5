// compare plays a series of matches between two AI configurations and reports the wins of each.
//
// Players alternate who plays first. E.g.:
//
//	compare -ai1="heuristic=improved,alphabeta" -ai2="heuristic=open,alphabeta" -num_matches=20
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/players"
	_ "github.com/janpfeifer/isolationGo/internal/players/default"
	"github.com/janpfeifer/isolationGo/internal/profilers"
	"github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration.")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration.")
	flagNumMatches    = flag.Int("num_matches", 20, "Number of matches to play.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagHeight   = flag.Int("height", state.DefaultHeight, "Number of rows of the board.")
	flagWidth    = flag.Int("width", state.DefaultWidth, "Number of columns of the board.")
	flagTurnTime = flag.Duration("turn_time", 150*time.Millisecond,
		"Time each player has to choose a move. Late moves forfeit the match.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Fatal("You must configure both players to compare with flags -ai1 and -ai2")
	}

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(ctx)
	defer profilers.OnQuit()

	// Check configurations before starting.
	for _, config := range []string{*flagPlayer1Config, *flagPlayer2Config} {
		_ = must.M1(players.New(config))
	}
	must.M(runMatches(ctx))
}

// Results of the matches played so far.
type Results struct {
	mu                   sync.Mutex
	start                time.Time
	winsAs1st, winsAs2nd [2]int
	forfeits             [2]int
	played, total        int
}

func (r *Results) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for playerIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d, forfeits: %d) / ",
				playerIdx+1, r.winsAs1st[playerIdx]+r.winsAs2nd[playerIdx],
				r.winsAs1st[playerIdx], r.winsAs2nd[playerIdx], r.forfeits[playerIdx]))
	}
	parts = append(parts, time.Since(r.start).Round(time.Millisecond).String())
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

// record the outcome of a match. aiFirst is the index of the AI that played first.
func (r *Results) record(o *match.Outcome, aiFirst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	winnerAI := int(o.Winner)
	if aiFirst == 1 {
		winnerAI = 1 - winnerAI
	}
	if o.Winner == state.PlayerFirst {
		r.winsAs1st[winnerAI]++
	} else {
		r.winsAs2nd[winnerAI]++
	}
	if o.Forfeit != state.PlayerInvalid {
		r.forfeits[1-winnerAI]++
	}
	r.played++
	fmt.Printf("\r%s", r)
}

func runMatches(ctx context.Context) error {
	r := &Results{
		start: time.Now(),
		total: *flagNumMatches,
	}
	var wg errgroup.Group
	parallelism := *flagParallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	wg.SetLimit(parallelism)
	fmt.Printf("\r%s", r)

	configs := [2]string{*flagPlayer1Config, *flagPlayer2Config}
	for matchIdx := range r.total {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// Players are not safe for concurrent use, so each match creates its own.
			aiFirst := matchIdx % 2
			var matchPlayers [state.NumPlayers]players.Player
			for playerNum := range matchPlayers {
				var err error
				matchPlayers[playerNum], err = players.New(configs[(aiFirst+playerNum)%2])
				if err != nil {
					return err
				}
			}
			config := match.Config{Height: *flagHeight, Width: *flagWidth, TurnTime: *flagTurnTime}
			o, err := match.Play(ctx, config, matchPlayers)
			if err != nil {
				if errors.Is(err, match.ErrInterrupted) {
					return nil
				}
				return errors.WithMessagef(err, "match #%d", matchIdx)
			}
			r.record(o, aiFirst)
			return nil
		})
	}
	err := wg.Wait()
	fmt.Printf("\r%s\n", r)
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}
