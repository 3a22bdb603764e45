package layout

import "math"

// distributeProportional splits available pixels across weights using
// cumulative-boundary rounding: boundary k sits at
// available*sum(weights[:k])/sum(weights), rounded to the nearest pixel.
// This guarantees the returned widths sum to exactly available even when
// the proportional shares are fractional (spec.md §8 scenario 2).
func distributeProportional(weights []float64, available int) []int {
	n := len(weights)
	widths := make([]int, n)
	if n == 0 {
		return widths
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		sum = float64(n)
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}

	prevBoundary := 0
	acc := 0.0
	for i, w := range weights {
		acc += w
		boundary := int(math.Round(float64(available) * acc / sum))
		widths[i] = boundary - prevBoundary
		prevBoundary = boundary
	}
	return widths
}

// reconcileWeights spreads the deficit between the weight sum and target
// equally across all weights before they're used for distribution
// (spec.md §4.2 Tiles: "deficit in the weight sum ... is spread equally
// across children before distribution"). Returns a new slice; does not
// mutate weights.
func reconcileWeights(weights []float64, target int) []float64 {
	n := len(weights)
	if n == 0 {
		return nil
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	deficit := float64(target) - sum
	per := deficit / float64(n)

	out := make([]float64, n)
	for i, w := range weights {
		out[i] = w + per
	}
	return out
}
