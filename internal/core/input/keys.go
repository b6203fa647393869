package input

import (
	"fmt"
	"strings"
)

// Key identifies a physical keyboard key independent of the platform layer.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyLAlt
	KeyRAlt
	KeyLShift
	KeyRShift
	KeyLControl
	KeyRControl
	KeySpace
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	keyCount
)

var keyNames = [keyCount]string{
	"unknown", "escape", "f1", "f2", "f3", "f4",
	"lalt", "ralt", "lshift", "rshift", "lcontrol", "rcontrol",
	"space", "enter", "tab", "up", "down", "left", "right",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseKey resolves a case-insensitive key name as used in config and scripts.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := Key(1); i < keyCount; i++ {
		if keyNames[i] == n {
			return i, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// ParseChord parses a list of key names into keys that must be held together.
func ParseChord(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, n := range names {
		k, err := ParseKey(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
