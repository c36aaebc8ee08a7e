package reco

import "math"

// Cosine returns the cosine similarity of a and b clamped to [0,1].
// It is 0 when either vector is absent, the dimensions differ, or a norm is zero.
func Cosine(a, b Embedding) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return clamp01(dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
