package searchers

import (
	"math/rand/v2"
	"sync"

	"github.com/janpfeifer/isolationGo/internal/parameters"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"k8s.io/klog/v2"
)

// randomSearcher plays a uniformly random legal move. It is the baseline opponent.
type randomSearcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Assert randomSearcher is a Searcher.
var _ Searcher = &randomSearcher{}

// NewRandomSearcher returns a Searcher that picks any of the legal moves with equal probability.
// If seed is 0 a random seed is used.
func NewRandomSearcher(seed uint64) Searcher {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randomSearcher{rng: rand.New(rand.NewPCG(seed, 0))}
}

// NewRandomFromParams returns a random Searcher if "random" is set, otherwise it returns nil (and no error).
// The optional "seed" parameter makes it reproducible.
func NewRandomFromParams(params parameters.Params) (Searcher, error) {
	isRandom, err := parameters.PopParamOr(params, "random", false)
	if err != nil || !isRandom {
		return nil, err
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return NewRandomSearcher(uint64(seed)), nil
}

// Search implements the Searcher interface. It ignores timeLeft, since it takes no time.
func (rs *randomSearcher) Search(board *Board, _ TimeLeftFn) (Result, error) {
	moves := board.LegalMoves(board.NextPlayer)
	if len(moves) == 0 {
		return Result{Move: NoMove, Score: board.Utility(board.NextPlayer)}, nil
	}
	rs.mu.Lock()
	idx := rs.rng.IntN(len(moves))
	rs.mu.Unlock()
	if klog.V(3).Enabled() {
		klog.Infof("random selection: %s out of %d moves", moves[idx], len(moves))
	}
	return Result{Move: moves[idx]}, nil
}

// String implements the Searcher interface.
func (rs *randomSearcher) String() string {
	return "random"
}
