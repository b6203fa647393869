package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTag is returned by AddEntity under the Reject policy.
var ErrDuplicateTag = errors.New("duplicate entity tag")

// DuplicationBehaviour decides what happens when a tag is already present.
type DuplicationBehaviour uint8

const (
	Allow DuplicationBehaviour = iota
	WarnOnDuplication
	Reject
)

func (d DuplicationBehaviour) String() string {
	switch d {
	case Allow:
		return "allow"
	case Reject:
		return "reject"
	default:
		return "warn"
	}
}

func ParseDuplicationBehaviour(s string) (DuplicationBehaviour, error) {
	switch strings.ToLower(s) {
	case "allow":
		return Allow, nil
	case "warn", "warn_on_duplication", "":
		return WarnOnDuplication, nil
	case "reject":
		return Reject, nil
	}
	return WarnOnDuplication, fmt.Errorf("unknown duplication behaviour %q", s)
}
