package prospect

import "math"

// Weights are the heuristic confidence values assigned to synthesized
// candidates. They are tunable and carry no statistical meaning.
type Weights struct {
	// Named applies to candidates whose page yielded a person name.
	Named float64

	// Unnamed applies to candidates built with the placeholder name.
	Unnamed float64

	// SparsePenalty is subtracted when the page gave no company, title
	// or location.
	SparsePenalty float64
}

// DefaultWeights returns the stock confidence weights.
func DefaultWeights() Weights {
	return Weights{
		Named:         0.8,
		Unnamed:       0.6,
		SparsePenalty: 0.1,
	}
}

// Score returns the confidence for a candidate, rounded to two decimals and
// clamped to [0,1].
func (w Weights) Score(named, sparse bool) float64 {
	score := w.Unnamed
	if named {
		score = w.Named
	}
	if sparse {
		score -= w.SparsePenalty
	}
	score = math.Round(score*100) / 100
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
