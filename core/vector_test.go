package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("known magnitude", func(t *testing.T) {
		result := NormalizeVector([]float32{3.0, 4.0})
		require.Len(t, result, 2)
		assert.InDelta(t, 0.6, result[0], 0.001)
		assert.InDelta(t, 0.8, result[1], 0.001)
	})

	t.Run("already unit length", func(t *testing.T) {
		result := NormalizeVector([]float32{1.0, 0.0, 0.0})
		assert.InDelta(t, 1.0, result[0], 0.001)
		assert.InDelta(t, 0.0, result[1], 0.001)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		result := NormalizeVector([]float32{0.0, 0.0, 0.0})
		require.Len(t, result, 3)
		for _, v := range result {
			assert.Zero(t, v)
		}
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		input := []float32{3.0, 4.0}
		NormalizeVector(input)
		assert.Equal(t, []float32{3.0, 4.0}, input)
	})
}
