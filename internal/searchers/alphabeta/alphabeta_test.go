package alphabeta_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/isolationGo/internal/searchers/minimax"
	. "github.com/janpfeifer/isolationGo/internal/state"
	. "github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scorer = heuristics.New("default", heuristics.Default)

func TestEndGameMove(t *testing.T) {
	b := CenterAndCorner()
	for _, depth := range []int{1, 2, 5} {
		res, err := alphabeta.New(scorer).SearchDepth(b, depth, nil)
		require.NoError(t, err)
		assert.Equal(t, Move{1, 2}, res.Move)
		assert.Equal(t, ai.WinGameScore, res.Score)
		assert.Equal(t, depth, res.Depth)
	}

	// Finished board: no move, regardless of depth.
	b = b.Act(Move{2, 1})
	for _, depth := range []int{0, 1, 3} {
		res, err := alphabeta.New(scorer).SearchDepth(b, depth, nil)
		require.NoError(t, err)
		assert.Equal(t, NoMove, res.Move)
		assert.Equal(t, ai.LoseGameScore, res.Score)
	}
}

func TestCutoff(t *testing.T) {
	b := RandomBoard(rand.New(rand.NewPCG(7, 0)), 7, 7, 5)
	res, err := alphabeta.New(scorer).SearchDepth(b, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, NoMove, res.Move)
	assert.Equal(t, scorer.Score(b, b.NextPlayer), res.Score)
}

// TestMinimaxEquivalence checks that pruning never changes the result: the score is always the
// same as minimax's, and so is the move chosen at the root, since both break ties by taking
// the first best move.
func TestMinimaxEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	var totalPrunes, abNodes, mmNodes int
	for _, s := range []*heuristics.Scorer{
		scorer,
		heuristics.New("improved", heuristics.Improved),
		heuristics.New("open", heuristics.Open),
		heuristics.New("null", heuristics.Null),
	} {
		for range 8 {
			b := RandomBoard(rng, 5, 5, 2+rng.IntN(10))
			for depth := range 5 {
				mm := minimax.New(s)
				want, err := mm.SearchDepth(b, depth, nil)
				require.NoError(t, err)
				ab := alphabeta.New(s)
				got, err := ab.SearchDepth(b, depth, nil)
				require.NoError(t, err)
				require.Equalf(t, want.Score, got.Score, "heuristic %s, depth %d, board:\n%s", s, depth, b)
				require.Equalf(t, want.Move, got.Move, "heuristic %s, depth %d, board:\n%s", s, depth, b)
				require.LessOrEqual(t, ab.Stats().Nodes, mm.Stats().Nodes)
				totalPrunes += ab.Stats().Prunes
				abNodes += ab.Stats().Nodes
				mmNodes += mm.Stats().Nodes
			}
		}
	}
	assert.Greater(t, totalPrunes, 0)
	assert.Less(t, abNodes, mmNodes)
}

func TestTimeout(t *testing.T) {
	b := BuildBoard(Layout{
		Height: 7, Width: 7,
		Locations:  [NumPlayers]Move{{3, 3}, {2, 2}},
		NextPlayer: PlayerFirst,
	})
	ab := alphabeta.New(scorer)
	for _, n := range []int{0, 1, 10} {
		res, err := ab.SearchDepth(b, 4, searchers.NewDeadline(ExpireAfter(n), 5*time.Millisecond))
		require.Error(t, err)
		assert.True(t, searchers.IsTimeout(err))
		assert.Equal(t, NoMove, res.Move)
	}
}

func TestNewFromParams(t *testing.T) {
	s, err := alphabeta.NewFromParams(scorer, parameters.NewFromConfigString("minimax"))
	require.NoError(t, err)
	assert.Nil(t, s)

	for _, config := range []string{"alphabeta", "ab"} {
		params := parameters.NewFromConfigString(config)
		s, err = alphabeta.NewFromParams(scorer, params)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "alphabeta", s.String())
		assert.Empty(t, params)
	}
}
