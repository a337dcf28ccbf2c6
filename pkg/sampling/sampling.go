// Package sampling decides which negative examples are retained for training.
package sampling

import "math/rand"

// DefaultSeed is the fixed seed used when none is configured, so repeated runs
// over the same input produce identical training sets.
const DefaultSeed = 0

// Sampler is a deterministic coin backed by a single seeded random stream.
// It is shared process-wide and consumed in candidate order, so the decision
// for one candidate depends on how many negatives preceded it. Not safe for
// concurrent use; the pipeline is single-threaded by design.
type Sampler struct {
	rng *rand.Rand
}

// New creates a sampler seeded with the given value.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Keep consumes exactly one draw and reports whether a negative example with
// retention probability p should be kept. A draw in [0, 1) is compared with
// strict less-than, so p=0 always drops and p=1 always keeps.
func (s *Sampler) Keep(p float64) bool {
	return s.rng.Float64() < p
}
