package facial

import (
	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity returns the cosine of the angle between two descriptors:
// dot product over the product of magnitudes, nominally in [-1, 1]. For the
// non-negative intensity vectors produced here it is effectively in [0, 1].
// Mismatched lengths or a zero-magnitude vector score 0, never NaN.
func CosineSimilarity(a, b Descriptor) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0.0
	}

	return floats.Dot(a, b) / (normA * normB)
}
