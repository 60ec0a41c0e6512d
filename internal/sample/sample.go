// ABOUTME: Random subset selection of feed entries
// ABOUTME: Picks a uniformly random count in [1, max] then draws without replacement

package sample

import (
	"math/rand"

	"github.com/KS1019/my-discord-bot/internal/parse"
)

// Sampler draws random subsets of feed entries. The randomness source is
// injected so tests can seed it.
type Sampler struct {
	rnd *rand.Rand
}

// New returns a Sampler backed by rnd.
func New(rnd *rand.Rand) *Sampler {
	return &Sampler{rnd: rnd}
}

// Pick selects between 1 and maxCount entries uniformly without
// replacement, clamped to the number available. An empty input yields an
// empty result. maxCount is validated as positive before the pipeline runs.
func (s *Sampler) Pick(entries []parse.Entry, maxCount int) []parse.Entry {
	if len(entries) == 0 {
		return nil
	}

	if maxCount < 1 {
		maxCount = 1
	}
	k := 1 + s.rnd.Intn(maxCount)
	if k > len(entries) {
		k = len(entries)
	}

	picked := make([]parse.Entry, 0, k)
	for _, i := range s.rnd.Perm(len(entries))[:k] {
		picked = append(picked, entries[i])
	}
	return picked
}
