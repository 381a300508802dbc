// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultScoringWeights_Valid(t *testing.T) {
	w := DefaultScoringWeights()
	assert.NoError(t, w.Validate())
}

func TestScoringWeights_RecencyBonus(t *testing.T) {
	w := DefaultScoringWeights()

	assert.Equal(t, 2.0, w.RecencyBonus(0))
	assert.Equal(t, 1.0, w.RecencyBonus(1))
	assert.Equal(t, 0.5, w.RecencyBonus(2))
	assert.Equal(t, 0.5, w.RecencyBonus(7))
	assert.Equal(t, 0.0, w.RecencyBonus(-1))
}

func TestScoringWeights_ValidateRejectsIncreasingRecency(t *testing.T) {
	w := DefaultScoringWeights()
	w.Recency = []float64{1.0, 2.0}

	err := w.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-increasing")
}

func TestScoringWeights_ValidateRejectsNegative(t *testing.T) {
	w := DefaultScoringWeights()
	w.KeywordMatch = -1

	assert.Error(t, w.Validate())
}

func TestScoringWeights_ValidateRequiresRecency(t *testing.T) {
	w := DefaultScoringWeights()
	w.Recency = nil

	assert.Error(t, w.Validate())
}
