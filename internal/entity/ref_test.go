package entity

import (
	"errors"
	"testing"
)

func TestByHandle(t *testing.T) {
	r := ByHandle(42)

	if r.Kind() != HandleRef {
		t.Errorf("expected HandleRef kind, got %v", r.Kind())
	}

	h, err := r.Handle()
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	if h != 42 {
		t.Errorf("expected handle 42, got %d", h)
	}

	if _, err := r.Name(); !errors.Is(err, ErrNotNameRef) {
		t.Errorf("Name() on handle ref: expected ErrNotNameRef, got %v", err)
	}
}

func TestByName(t *testing.T) {
	r := ByName("robot_1")

	if r.Kind() != NameRef {
		t.Errorf("expected NameRef kind, got %v", r.Kind())
	}

	n, err := r.Name()
	if err != nil {
		t.Fatalf("Name() failed: %v", err)
	}
	if n != "robot_1" {
		t.Errorf("expected name robot_1, got %q", n)
	}

	if _, err := r.Handle(); !errors.Is(err, ErrNotHandleRef) {
		t.Errorf("Handle() on name ref: expected ErrNotHandleRef, got %v", err)
	}
}

func TestMustAccessors(t *testing.T) {
	if got := ByHandle(7).MustHandle(); got != 7 {
		t.Errorf("MustHandle = %d, want 7", got)
	}
	if got := ByName("arm").MustName(); got != "arm" {
		t.Errorf("MustName = %q, want arm", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustName on handle ref should panic")
		}
	}()
	ByHandle(1).MustName()
}

func TestRefString(t *testing.T) {
	tests := []struct {
		ref      Ref
		expected string
	}{
		{ByHandle(42), "handle:42"},
		{ByName("robot_1"), "name:robot_1"},
	}

	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
