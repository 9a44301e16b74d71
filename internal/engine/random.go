package engine

import (
	"math/rand"
	"time"
)

// randSource wraps math/rand.Rand. It is not safe for concurrent use;
// every worker owns its own instance, seeded deterministically from the
// render seed and its tile index so a fixed seed reproduces the exact
// same image regardless of how tiles are scheduled across workers.
type randSource struct {
	r *rand.Rand
}

func newRandSource(seed int64) *randSource {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

// timeSeed returns a wall-clock seed for renders that did not ask for a
// reproducible one.
func timeSeed() int64 {
	return time.Now().UnixNano()
}

// tileSeed derives an independent per-tile seed from the base render
// seed. The multiplier spreads consecutive tile indices far apart in
// the generator's state space.
func tileSeed(base int64, tile int) int64 {
	return base + int64(tile+1)*0x9E3779B9
}

func (rs *randSource) Float64() float64 {
	return rs.r.Float64()
}
