package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOnlyDateRequired(t *testing.T) {
	e, err := New("u1", CreateRequest{Date: "2024-05-05"}, time.Now())

	require.NoError(t, err)
	assert.Nil(t, e.Weight)
	assert.Zero(t, e.Steps)
	assert.Zero(t, e.Distance)
	assert.Zero(t, e.ActiveMinutes)
	assert.Equal(t, "", e.Notes)
}

func TestNewMissingDate(t *testing.T) {
	_, err := New("u1", CreateRequest{}, time.Now())
	require.Error(t, err)
}

func TestApplyWeight(t *testing.T) {
	e := Entry{Steps: 100}
	w := 71.5

	require.NoError(t, UpdateRequest{Weight: &w}.Apply(&e))
	w = 0

	require.NotNil(t, e.Weight)
	assert.Equal(t, 71.5, *e.Weight)
	assert.Equal(t, 100, e.Steps)
}
