package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"up": Up, "UP": Up, "u": Up,
		"down": Down, "D": Down,
		"Left": Left, "l": Left,
		" right ": Right, "R": Right,
	}
	for in, want := range cases {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("north")
	assert.Error(t, err)
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("UU, LD r")
	require.NoError(t, err)
	assert.Equal(t, []Direction{Up, Up, Left, Down, Right}, moves)

	_, err = ParseMoves("UX")
	assert.Error(t, err)

	moves, err = ParseMoves("")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "UP", Up.String())
	assert.Equal(t, "DOWN", Down.String())
	assert.Equal(t, "LEFT", Left.String())
	assert.Equal(t, "RIGHT", Right.String())
	assert.Equal(t, "Direction(9)", Direction(9).String())
}
