package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIsIdempotent(t *testing.T) {
	s := NewSnapshot()
	s.Apply(KeyEvent{Key: KeyW, State: Pressed})
	s.Apply(KeyEvent{Key: KeyW, State: Pressed})
	assert.True(t, s.IsKeyPressed(KeyW))
	assert.Equal(t, 1, s.Held())

	s.Apply(KeyEvent{Key: KeyW, State: Released})
	s.Apply(KeyEvent{Key: KeyW, State: Released})
	assert.False(t, s.IsKeyPressed(KeyW))
	assert.Zero(t, s.Held())
}

func TestChords(t *testing.T) {
	s := NewSnapshot()
	exit := [][]Key{{KeyEscape}, {KeyLAlt, KeyF4}}

	s.Apply(KeyEvent{Key: KeyLAlt, State: Pressed})
	assert.False(t, s.AnyChordPressed(exit))
	s.Apply(KeyEvent{Key: KeyF4, State: Pressed})
	assert.True(t, s.AreAllKeysPressed([]Key{KeyLAlt, KeyF4}))
	assert.True(t, s.AnyChordPressed(exit))

	assert.False(t, s.AreAllKeysPressed(nil))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" Escape ")
	require.NoError(t, err)
	assert.Equal(t, KeyEscape, k)
	assert.Equal(t, "escape", k.String())

	_, err = ParseKey("hyper")
	assert.Error(t, err)

	chord, err := ParseChord([]string{"lalt", "f4"})
	require.NoError(t, err)
	assert.Equal(t, []Key{KeyLAlt, KeyF4}, chord)
}
