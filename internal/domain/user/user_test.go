package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesEmail(t *testing.T) {
	u, err := New(RegisterRequest{Email: "  Jane@Example.COM ", Password: "secret1", Name: "Jane"}, "hash", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, []string{}, u.FitnessGoals)
}

func TestNewRequiresName(t *testing.T) {
	_, err := New(RegisterRequest{Email: "a@b.co", Password: "secret1", Name: "  "}, "hash", time.Now())
	require.Error(t, err)
}

func TestApplyProfile(t *testing.T) {
	age := 30
	u := User{Name: "Jane", FitnessGoals: []string{"Strength"}}
	goals := []string{"Weight Loss"}

	err := UpdateProfileRequest{Age: &age, FitnessGoals: &goals}.Apply(&u)

	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
	require.NotNil(t, u.Age)
	assert.Equal(t, 30, *u.Age)
	assert.Equal(t, []string{"Weight Loss"}, u.FitnessGoals)
}

func TestApplyRejectsBlankName(t *testing.T) {
	u := User{Name: "Jane"}
	blank := " "

	require.Error(t, UpdateProfileRequest{Name: &blank}.Apply(&u))
	assert.Equal(t, "Jane", u.Name)
}
