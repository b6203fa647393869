package input

// State is the press state carried by a keyboard event.
type State uint8

const (
	Released State = iota
	Pressed
)

// KeyEvent is a translated keyboard event handed over by the platform boundary.
type KeyEvent struct {
	Key   Key
	State State
}

// Snapshot holds the set of keys currently held down. It is written only by
// the platform boundary and read by entities during the update phase.
type Snapshot struct {
	held map[Key]struct{}
}

func NewSnapshot() *Snapshot {
	return &Snapshot{held: make(map[Key]struct{}, 16)}
}

// Apply merges one key event. Repeating an identical event is a no-op.
func (s *Snapshot) Apply(ev KeyEvent) {
	if ev.Key == KeyUnknown {
		return
	}
	if ev.State == Pressed {
		s.held[ev.Key] = struct{}{}
		return
	}
	delete(s.held, ev.Key)
}

func (s *Snapshot) IsKeyPressed(k Key) bool {
	_, ok := s.held[k]
	return ok
}

// AreAllKeysPressed reports whether every key is held. An empty chord is never pressed.
func (s *Snapshot) AreAllKeysPressed(keys []Key) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if !s.IsKeyPressed(k) {
			return false
		}
	}
	return true
}

// AnyChordPressed reports whether at least one chord is fully held.
func (s *Snapshot) AnyChordPressed(chords [][]Key) bool {
	for _, c := range chords {
		if s.AreAllKeysPressed(c) {
			return true
		}
	}
	return false
}

// Held returns the number of keys currently held.
func (s *Snapshot) Held() int { return len(s.held) }
