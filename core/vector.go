package core

import "math"

// NormalizeVector scales an embedding vector to unit length so dot-product
// scoring behaves as cosine similarity. Returns a new vector; a zero vector
// stays zero since it has no direction.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}

	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
