package engine

import "errors"

// errJoin keeps both the engine error kind and the backend cause visible to errors.Is.
func errJoin(kind, cause error) error {
	if errors.Is(cause, kind) {
		return cause
	}
	return errors.Join(kind, cause)
}
