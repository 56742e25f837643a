package backend

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/san-kum/kinesim/internal/entity"
	"github.com/san-kum/kinesim/internal/pose"
)

func TestSelect(t *testing.T) {
	for _, kind := range Kinds() {
		w, err := Select(kind, nil)
		if err != nil {
			t.Fatalf("Select(%q) failed: %v", kind, err)
		}
		if w.Kind() != kind {
			t.Errorf("Kind() = %q, want %q", w.Kind(), kind)
		}
	}

	if _, err := Select("unknown", nil); err == nil {
		t.Error("expected error for unknown back-end")
	}
}

func TestWorldLifecycle(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			w, err := Select(kind, nil)
			if err != nil {
				t.Fatal(err)
			}

			start := pose.Identity()
			ref, err := w.Spawn("cart_1", start, r3.Vector{X: 1})
			if err != nil {
				t.Fatalf("Spawn failed: %v", err)
			}

			p, v, err := w.State(ref)
			if err != nil {
				t.Fatalf("State failed: %v", err)
			}
			if v != 0 {
				t.Errorf("fresh actuator should be at rest, velocity %g", v)
			}
			if p.Translation.Norm() != 0 {
				t.Errorf("fresh actuator moved: %v", p.Translation)
			}

			if err := w.Command(ref, 0.2); err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			w.Step(0.5)

			p, v, err = w.State(ref)
			if err != nil {
				t.Fatal(err)
			}
			if v != 0.2 {
				t.Errorf("velocity = %g, want 0.2", v)
			}
			if math.Abs(p.Translation.X-0.1) > 1e-12 {
				t.Errorf("x = %g, want 0.1", p.Translation.X)
			}
		})
	}
}

func TestWorldRefVariants(t *testing.T) {
	modernWorld, _ := Select("modern", nil)
	ref, err := modernWorld.Spawn("lift", pose.Identity(), r3.Vector{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind() != entity.HandleRef {
		t.Errorf("modern should hand out handle refs, got %v", ref.Kind())
	}

	classicWorld, _ := Select("classic", nil)
	ref, err = classicWorld.Spawn("lift", pose.Identity(), r3.Vector{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind() != entity.NameRef {
		t.Errorf("classic should hand out name refs, got %v", ref.Kind())
	}
}

func TestWorldRejectsForeignRef(t *testing.T) {
	// A ref minted by one back-end must fail loudly on the other, not
	// resolve to a default actuator.
	modernWorld, _ := Select("modern", nil)
	classicWorld, _ := Select("classic", nil)

	if _, _, err := modernWorld.State(entity.ByName("cart")); !errors.Is(err, entity.ErrNotHandleRef) {
		t.Errorf("modern with name ref: got %v, want ErrNotHandleRef", err)
	}
	if err := classicWorld.Command(entity.ByHandle(1), 0.1); !errors.Is(err, entity.ErrNotNameRef) {
		t.Errorf("classic with handle ref: got %v, want ErrNotNameRef", err)
	}
}

func TestWorldUnknownActuator(t *testing.T) {
	modernWorld, _ := Select("modern", nil)
	if _, _, err := modernWorld.State(entity.ByHandle(99)); err == nil {
		t.Error("expected error for unknown handle")
	}

	classicWorld, _ := Select("classic", nil)
	if _, _, err := classicWorld.State(entity.ByName("ghost")); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestClassicSanitizesOnSpawn(t *testing.T) {
	w, _ := Select("classic", nil)
	ref, err := w.Spawn("cart 1", pose.Identity(), r3.Vector{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	name, err := ref.Name()
	if err != nil {
		t.Fatal(err)
	}
	if name != "cart_1" {
		t.Errorf("name = %q, want cart_1", name)
	}

	if _, err := w.Spawn("cart_1", pose.Identity(), r3.Vector{X: 1}); err == nil {
		t.Error("duplicate name should be rejected")
	}
}
