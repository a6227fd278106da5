package iterative

import (
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
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher records the depths searched and returns the first legal move with a fixed score.
type fakeSearcher struct {
	depths []int
	score  float32
	failAt int
	err    error
}

func (f *fakeSearcher) SearchDepth(board *Board, depth int, _ *searchers.Deadline) (searchers.Result, error) {
	f.depths = append(f.depths, depth)
	if depth == f.failAt {
		return searchers.Result{Move: NoMove}, f.err
	}
	return searchers.Result{Score: f.score, Move: board.LegalMoves(board.NextPlayer)[0], Depth: depth}, nil
}

func (f *fakeSearcher) String() string { return "fake" }

// recorder keeps the results of each depth searched by the wrapped searcher.
type recorder struct {
	searchers.DepthSearcher
	results []searchers.Result
}

func (r *recorder) SearchDepth(board *Board, depth int, deadline *searchers.Deadline) (searchers.Result, error) {
	res, err := r.DepthSearcher.SearchDepth(board, depth, deadline)
	if err == nil {
		r.results = append(r.results, res)
	}
	return res, err
}

var scorer = heuristics.New("default", heuristics.Default)

func midGame() *Board {
	return BuildBoard(Layout{
		Height: 7, Width: 7,
		Locations:  [NumPlayers]Move{{3, 3}, {2, 2}},
		Blocked:    []Move{{1, 4}, {4, 1}, {5, 5}},
		NextPlayer: PlayerFirst,
	})
}

// threeBlanks is a 3x3 board with only 3 blank cells left, the second player to move.
func threeBlanks() *Board {
	return BuildBoard(Layout{
		Height: 3, Width: 3,
		Locations:  [NumPlayers]Move{{1, 1}, {0, 0}},
		Blocked:    []Move{{0, 1}, {0, 2}, {1, 0}, {2, 0}},
		NextPlayer: PlayerSecond,
	})
}

func TestNoMoves(t *testing.T) {
	b := CenterAndCorner().Act(Move{2, 1})
	for _, iterative := range []bool{true, false} {
		fake := &fakeSearcher{}
		res, err := New(fake).WithIterative(iterative).Search(b, nil)
		require.NoError(t, err)
		assert.Equal(t, NoMove, res.Move)
		assert.Equal(t, ai.LoseGameScore, res.Score)
		assert.Empty(t, fake.depths)
	}
}

func TestExpired(t *testing.T) {
	b := midGame()
	for _, iterative := range []bool{true, false} {
		s := New(alphabeta.New(scorer)).WithIterative(iterative)
		res, err := s.Search(b, ExpireAfter(0))
		require.NoError(t, err)
		assert.Equal(t, NoMove, res.Move)

		res, err = s.Search(b, func() time.Duration { return -time.Second })
		require.NoError(t, err)
		assert.Equal(t, NoMove, res.Move)
	}
}

func TestIterationsMatchFixedDepth(t *testing.T) {
	b := midGame()
	for _, base := range []searchers.DepthSearcher{alphabeta.New(scorer), minimax.New(scorer)} {
		rec := &recorder{DepthSearcher: base}
		res, err := New(rec).WithMaxDepth(4).Search(b, nil)
		require.NoError(t, err)
		require.NotEmpty(t, rec.results)
		assert.Equal(t, rec.results[len(rec.results)-1], res)
		for ii, iterRes := range rec.results {
			depth := ii + 1
			assert.Equal(t, depth, iterRes.Depth)
			want, err := alphabeta.New(scorer).SearchDepth(b, depth, nil)
			require.NoError(t, err)
			assert.Equal(t, want, iterRes)
		}
	}
}

func TestTimeoutKeepsLastIteration(t *testing.T) {
	b := midGame()
	fake := &fakeSearcher{score: 1, failAt: 3, err: errors.WithMessage(searchers.ErrTimeout, "fake")}
	res, err := New(fake).Search(b, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, fake.depths)
	assert.Equal(t, 2, res.Depth)
	assert.Equal(t, b.LegalMoves(PlayerFirst)[0], res.Move)

	// Real search, interrupted after a few nodes.
	rec := &recorder{DepthSearcher: alphabeta.New(scorer)}
	res, err = New(rec).WithThreshold(time.Millisecond).Search(b, ExpireAfter(200))
	require.NoError(t, err)
	require.NotEmpty(t, rec.results)
	assert.Equal(t, rec.results[len(rec.results)-1], res)
	assert.True(t, b.IsLegal(res.Move))
}

func TestOtherErrors(t *testing.T) {
	fake := &fakeSearcher{failAt: 2, err: errors.New("broken")}
	_, err := New(fake).Search(midGame(), nil)
	require.Error(t, err)
	assert.False(t, searchers.IsTimeout(err))
	assert.ErrorContains(t, err, "broken")

	fake = &fakeSearcher{failAt: 3, err: errors.New("broken")}
	_, err = New(fake).WithIterative(false).Search(midGame(), nil)
	require.Error(t, err)
}

func TestEarlyStop(t *testing.T) {
	// Proven win at depth 1.
	fake := &fakeSearcher{score: ai.WinGameScore}
	res, err := New(fake).Search(CenterAndCorner(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fake.depths)
	assert.Equal(t, ai.WinGameScore, res.Score)

	// Proven loss.
	fake = &fakeSearcher{score: ai.LoseGameScore}
	_, err = New(fake).Search(midGame(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fake.depths)

	// Tree exhausted.
	fake = &fakeSearcher{}
	_, err = New(fake).Search(threeBlanks(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, fake.depths)

	// Maximum depth.
	fake = &fakeSearcher{}
	_, err = New(fake).WithMaxDepth(5).Search(midGame(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, fake.depths)

	// Real search on the small board also finishes without a time limit.
	res, err = New(alphabeta.New(scorer)).Search(threeBlanks(), nil)
	require.NoError(t, err)
	assert.True(t, threeBlanks().IsLegal(res.Move))
}

func TestFixedDepth(t *testing.T) {
	b := midGame()
	fake := &fakeSearcher{score: 2}
	res, err := New(fake).WithIterative(false).WithDepth(2).Search(b, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, fake.depths)
	assert.Equal(t, float32(2), res.Score)

	want, err := alphabeta.New(scorer).SearchDepth(b, DefaultDepth, nil)
	require.NoError(t, err)
	res, err = New(alphabeta.New(scorer)).WithIterative(false).Search(b, ExpireAfter(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, want, res)

	fake = &fakeSearcher{failAt: 2, err: searchers.ErrTimeout}
	res, err = New(fake).WithIterative(false).WithDepth(2).Search(b, nil)
	require.NoError(t, err)
	assert.Equal(t, NoMove, res.Move)
}

func TestNewFromParams(t *testing.T) {
	base := alphabeta.New(scorer)
	params := parameters.NewFromConfigString("")
	s, err := NewFromParams(base, params)
	require.NoError(t, err)
	assert.True(t, s.iterative)
	assert.Equal(t, DefaultDepth, s.depth)
	assert.Equal(t, 0, s.maxDepth)
	assert.Equal(t, DefaultThreshold, s.threshold)
	assert.Equal(t, "iterative(alphabeta)", s.String())

	params = parameters.NewFromConfigString("iterative=false,depth=5,timeout=20ms")
	s, err = NewFromParams(base, params)
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.False(t, s.iterative)
	assert.Equal(t, 5, s.depth)
	assert.Equal(t, 20*time.Millisecond, s.threshold)
	assert.Equal(t, "alphabeta(depth=5)", s.String())

	s, err = NewFromParams(base, parameters.NewFromConfigString("max_depth=7,timeout=15"))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Millisecond, s.threshold)
	assert.Equal(t, "iterative(alphabeta, max_depth=7)", s.String())

	_, err = NewFromParams(base, parameters.NewFromConfigString("depth=-1"))
	assert.Error(t, err)
	_, err = NewFromParams(base, parameters.NewFromConfigString("depth=x"))
	assert.Error(t, err)
}
