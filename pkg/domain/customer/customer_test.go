package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New("  yassir ", " yassir@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "yassir", c.Name)
	assert.Equal(t, "yassir@example.com", c.Email)
	assert.Zero(t, c.ID)

	_, err = New("", "x@example.com")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestMatches(t *testing.T) {
	c := Customer{Name: "Khadija"}
	assert.True(t, c.Matches("kha"))
	assert.True(t, c.Matches("DIJA"))
	assert.True(t, c.Matches(""))
	assert.False(t, c.Matches("oma"))
}
