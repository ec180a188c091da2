// Package entropy provides the seeded random source threaded through every
// stochastic operation in the simulation. One Source per space (or model)
// guarantees that identical seeds and identical call sequences reproduce
// identical draws.
package entropy

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Sentinel errors for selection primitives.
var (
	// ErrEmptyPopulation indicates a draw from a zero-size population.
	ErrEmptyPopulation = errors.New("entropy: empty population")
	// ErrSampleSize indicates k is negative or exceeds the population.
	ErrSampleSize = errors.New("entropy: sample size out of range")
	// ErrWeights indicates malformed weight input.
	ErrWeights = errors.New("entropy: malformed weights")
)

// Source is a deterministic pseudo-random generator with a known seed.
// It is not safe for concurrent use; the simulation core is single-threaded
// and every draw must happen in call order for reproducibility.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource creates a Source from the given seed.
// Seed 0 means "no seed chosen": one is derived from the wall clock.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Intn returns a uniform int in [0, n). Panics if n <= 0, matching math/rand.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Int63 returns a non-negative uniform int64.
func (s *Source) Int63() int64 {
	return s.rng.Int63()
}

// Shuffle pseudo-randomizes the order of n elements via the swap function.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Pick returns one uniform element of population.
func Pick[T any](s *Source, population []T) (T, error) {
	var zero T
	if len(population) == 0 {
		return zero, ErrEmptyPopulation
	}
	return population[s.Intn(len(population))], nil
}

// Sample returns k elements drawn without replacement.
//
// If counts is non-nil it must have one entry per population element; entry i
// repeats population[i] that many times in the effective population, so one
// element can be drawn up to counts[i] times. k may not exceed the effective
// population size.
func Sample[T any](s *Source, population []T, k int, counts []int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrSampleSize, k)
	}

	pool := population
	if counts != nil {
		if len(counts) != len(population) {
			return nil, fmt.Errorf("%w: %d counts for %d elements", ErrWeights, len(counts), len(population))
		}
		expanded := make([]T, 0, len(population))
		for i, n := range counts {
			if n < 0 {
				return nil, fmt.Errorf("%w: negative count at index %d", ErrWeights, i)
			}
			for j := 0; j < n; j++ {
				expanded = append(expanded, population[i])
			}
		}
		pool = expanded
	}

	if k > len(pool) {
		return nil, fmt.Errorf("%w: k=%d exceeds population %d", ErrSampleSize, k, len(pool))
	}

	// Partial Fisher-Yates over an index slice keeps the input untouched and
	// draws exactly k values from the generator.
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := i + s.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = pool[idx[i]]
	}
	return out, nil
}

// Choices returns k elements drawn with replacement.
//
// At most one of weights and cumWeights may be non-nil. weights are relative
// per-element weights; cumWeights is their running total. Nil for both means
// uniform selection.
func Choices[T any](s *Source, population []T, k int, weights, cumWeights []float64) ([]T, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrSampleSize, k)
	}
	if weights != nil && cumWeights != nil {
		return nil, fmt.Errorf("%w: both weights and cumulative weights given", ErrWeights)
	}

	if weights != nil {
		if len(weights) != len(population) {
			return nil, fmt.Errorf("%w: %d weights for %d elements", ErrWeights, len(weights), len(population))
		}
		cumWeights = make([]float64, len(weights))
		total := 0.0
		for i, w := range weights {
			if w < 0 {
				return nil, fmt.Errorf("%w: negative weight at index %d", ErrWeights, i)
			}
			total += w
			cumWeights[i] = total
		}
	}

	out := make([]T, k)
	if cumWeights == nil {
		for i := 0; i < k; i++ {
			out[i] = population[s.Intn(len(population))]
		}
		return out, nil
	}

	if len(cumWeights) != len(population) {
		return nil, fmt.Errorf("%w: %d cumulative weights for %d elements", ErrWeights, len(cumWeights), len(population))
	}
	total := cumWeights[len(cumWeights)-1]
	if total <= 0 {
		return nil, fmt.Errorf("%w: total weight is zero", ErrWeights)
	}
	for i := 0; i < k; i++ {
		out[i] = population[searchCum(cumWeights, s.Float64()*total)]
	}
	return out, nil
}

// searchCum returns the first index whose cumulative weight exceeds target.
func searchCum(cum []float64, target float64) int {
	lo, hi := 0, len(cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cum[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
