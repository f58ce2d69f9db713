package common

import (
	"fmt"
	"math/rand"
)

// Unsynchronized random source. Every random draw made by the generator
// flows through this source so that a fixed seed reproduces a run exactly.
var localRand = rand.New(rand.NewSource(1))

// Seed uses the provided seed value to initialize the generator to a deterministic state.
func Seed(seed int64) {
	localRand.Seed(seed)
}

// RandIntn returns a uniform int in [0, n).
func RandIntn(n int) int {
	return localRand.Intn(n)
}

// RandInt63n returns a uniform int64 in [0, n).
func RandInt63n(n int64) int64 {
	return localRand.Int63n(n)
}

// RandBool returns true or false with equal probability.
func RandBool() bool {
	return localRand.Intn(2) == 1
}

// WeightedDistribution models repeated independent draws from a fixed set of
// string choices with relative weights. Weights need not sum to 1.
type WeightedDistribution struct {
	Choices []string
	Weights []float64

	total float64
}

func NewWeightedDistribution(choices []string, weights []float64) (*WeightedDistribution, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("weighted distribution needs at least one choice")
	}
	if len(choices) != len(weights) {
		return nil, fmt.Errorf("weighted distribution mismatch: %d choices vs %d weights", len(choices), len(weights))
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative weight %f", w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("weights sum to zero")
	}
	return &WeightedDistribution{Choices: choices, Weights: weights, total: total}, nil
}

// Sample draws one choice according to the relative weights.
func (d *WeightedDistribution) Sample() string {
	x := localRand.Float64() * d.total
	for i, w := range d.Weights {
		x -= w
		if x < 0 {
			return d.Choices[i]
		}
	}
	// float accumulation can land exactly on the upper bound
	return d.Choices[len(d.Choices)-1]
}

// SampleN draws k choices with replacement.
func (d *WeightedDistribution) SampleN(k int) []string {
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = d.Sample()
	}
	return out
}

// SampleWithReplacement draws k items uniformly with replacement. An empty
// candidate set yields an empty sample.
func SampleWithReplacement(items []string, k int) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = items[localRand.Intn(len(items))]
	}
	return out
}
