// Package entity provides a back-end-neutral identifier for simulated
// objects. A Ref addresses an actuator either by numeric handle (the
// modern back-end) or by string name (the classic back-end), letting
// control and messaging code stay generic over which back-end is active.
package entity

import (
	"errors"
	"fmt"
)

// Kind discriminates the two Ref variants.
type Kind int

const (
	// HandleRef addresses an object by uint64 handle.
	HandleRef Kind = iota
	// NameRef addresses an object by string name.
	NameRef
)

func (k Kind) String() string {
	switch k {
	case HandleRef:
		return "handle"
	case NameRef:
		return "name"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrNotHandleRef is returned when Handle is called on a name ref.
	ErrNotHandleRef = errors.New("entity: ref does not hold a handle")
	// ErrNotNameRef is returned when Name is called on a handle ref.
	ErrNotNameRef = errors.New("entity: ref does not hold a name")
)

// Ref identifies a simulated object in exactly one of two ways: by
// numeric handle or by name. The variant is fixed at construction.
// Reading the wrong variant is an error, never a silent zero value.
type Ref struct {
	kind   Kind
	handle uint64
	name   string
}

// ByHandle builds a handle-addressed ref.
func ByHandle(h uint64) Ref {
	return Ref{kind: HandleRef, handle: h}
}

// ByName builds a name-addressed ref.
func ByName(n string) Ref {
	return Ref{kind: NameRef, name: n}
}

// Kind reports which variant this ref holds.
func (r Ref) Kind() Kind { return r.kind }

// Handle returns the numeric handle. It fails with ErrNotHandleRef on a
// name-addressed ref.
func (r Ref) Handle() (uint64, error) {
	if r.kind != HandleRef {
		return 0, fmt.Errorf("%w (ref %s)", ErrNotHandleRef, r)
	}
	return r.handle, nil
}

// Name returns the string name. It fails with ErrNotNameRef on a
// handle-addressed ref.
func (r Ref) Name() (string, error) {
	if r.kind != NameRef {
		return "", fmt.Errorf("%w (ref %s)", ErrNotNameRef, r)
	}
	return r.name, nil
}

// MustHandle is for call sites that have already dispatched on Kind.
// It panics on a name-addressed ref.
func (r Ref) MustHandle() uint64 {
	h, err := r.Handle()
	if err != nil {
		panic(err)
	}
	return h
}

// MustName is for call sites that have already dispatched on Kind.
// It panics on a handle-addressed ref.
func (r Ref) MustName() string {
	n, err := r.Name()
	if err != nil {
		panic(err)
	}
	return n
}

func (r Ref) String() string {
	switch r.kind {
	case HandleRef:
		return fmt.Sprintf("handle:%d", r.handle)
	case NameRef:
		return fmt.Sprintf("name:%s", r.name)
	default:
		return "invalid"
	}
}
