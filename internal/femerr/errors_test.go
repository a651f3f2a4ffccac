package femerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	err := Solutionf("insufficient boundary conditions at x=%.1f", 0.0)

	assert.ErrorIs(t, err, ErrSolution)
	assert.NotErrorIs(t, err, ErrValue)
	assert.Equal(t, "insufficient boundary conditions at x=0.0", err.Error())
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("reading model: %w", Lookupf("no node at height %g", 12.5))

	assert.True(t, errors.Is(err, ErrLookup))

	var fe *Error
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, KindLookup, fe.Kind)
}

func TestSentinelMessage(t *testing.T) {
	assert.Equal(t, "missing capability", ErrCapability.Error())
	assert.Equal(t, "unknown error", Kind(0).String())
}
