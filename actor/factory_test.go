package actor

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// =============================================================================
// Factory Tests
// =============================================================================

func TestFactory_CreateCircle(t *testing.T) {
	f := NewFactory(DefaultLimits(), nil)

	rb, err := f.CreateCircle(12, mgl32.Vec2{0, 0}, 0.5, false, 0.5)
	if err != nil {
		t.Fatalf("CreateCircle() error = %v", err)
	}

	if !almostEqual(rb.Mass(), 226.19, 226.19*1e-3) {
		t.Errorf("Mass() = %v, want ≈226.19", rb.Mass())
	}
	if !almostEqual(rb.Inertia(), 16286, 16286*1e-3) {
		t.Errorf("Inertia() = %v, want ≈16286", rb.Inertia())
	}
	if rb.Kind() != ShapeCircle {
		t.Errorf("Kind() = %v, want circle", rb.Kind())
	}
	if rb.Color != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Color = %v, want white without a random source", rb.Color)
	}
}

func TestFactory_CreateRectangle(t *testing.T) {
	f := NewFactory(DefaultLimits(), nil)

	rb, err := f.CreateRectangle(5, 5, mgl32.Vec2{3, 4}, 1, true, 0)
	if err != nil {
		t.Fatalf("CreateRectangle() error = %v", err)
	}
	if !rb.IsStatic() {
		t.Error("IsStatic() = false, want true")
	}
	if rb.Position() != (mgl32.Vec2{3, 4}) {
		t.Errorf("Position() = %v, want [3 4]", rb.Position())
	}
	if !almostEqual(rb.Mass(), 25, 1e-5) {
		t.Errorf("Mass() = %v, want 25", rb.Mass())
	}
}

func TestFactory_Bounds(t *testing.T) {
	f := NewFactory(DefaultLimits(), nil)

	tests := []struct {
		name    string
		create  func() (*Body, error)
		wantErr error
	}{
		{
			name:    "tiny rectangle",
			create:  func() (*Body, error) { return f.CreateRectangle(0.05, 0.05, mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "huge rectangle",
			create:  func() (*Body, error) { return f.CreateRectangle(1000, 1000, mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "tiny circle",
			create:  func() (*Body, error) { return f.CreateCircle(0.01, mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "light circle",
			create:  func() (*Body, error) { return f.CreateCircle(2, mgl32.Vec2{}, 0.1, false, 0) },
			wantErr: ErrDensityOutOfRange,
		},
		{
			name:    "dense rectangle",
			create:  func() (*Body, error) { return f.CreateRectangle(2, 2, mgl32.Vec2{}, 30, false, 0) },
			wantErr: ErrDensityOutOfRange,
		},
		{
			name:    "negative radius",
			create:  func() (*Body, error) { return f.CreateCircle(-2, mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "negative sides",
			create:  func() (*Body, error) { return f.CreateRectangle(-2, -2, mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "NaN radius",
			create:  func() (*Body, error) { return f.CreateCircle(math32.NaN(), mgl32.Vec2{}, 1, false, 0) },
			wantErr: ErrSizeOutOfRange,
		},
		{
			name:    "NaN density",
			create:  func() (*Body, error) { return f.CreateCircle(2, mgl32.Vec2{}, math32.NaN(), false, 0) },
			wantErr: ErrDensityOutOfRange,
		},
		{
			name:    "infinite density",
			create:  func() (*Body, error) { return f.CreateRectangle(2, 2, mgl32.Vec2{}, math32.Inf(1), false, 0) },
			wantErr: ErrDensityOutOfRange,
		},
		{
			name:    "minimum density accepted",
			create:  func() (*Body, error) { return f.CreateCircle(2, mgl32.Vec2{}, 0.5, false, 0) },
			wantErr: nil,
		},
		{
			name:    "maximum density accepted",
			create:  func() (*Body, error) { return f.CreateCircle(2, mgl32.Vec2{}, 21.4, false, 0) },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb, err := tt.create()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rb == nil {
					t.Fatal("body is nil")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if rb != nil {
				t.Errorf("body = %v, want nil on error", rb)
			}
		})
	}
}

func TestFactory_Friction(t *testing.T) {
	f := NewFactory(DefaultLimits(), nil)
	f.StaticFriction = 0.9
	f.DynamicFriction = 0.1

	rb, err := f.CreateCircle(2, mgl32.Vec2{}, 1, false, 0)
	if err != nil {
		t.Fatalf("CreateCircle() error = %v", err)
	}
	if rb.Material.StaticFriction != 0.9 || rb.Material.DynamicFriction != 0.1 {
		t.Errorf("friction = (%v, %v), want (0.9, 0.1)", rb.Material.StaticFriction, rb.Material.DynamicFriction)
	}
}

func TestFactory_SeededColors(t *testing.T) {
	a := NewFactory(DefaultLimits(), rand.New(rand.NewSource(42)))
	b := NewFactory(DefaultLimits(), rand.New(rand.NewSource(42)))

	for i := range 5 {
		ra, err := a.CreateCircle(2, mgl32.Vec2{}, 1, false, 0)
		if err != nil {
			t.Fatal(err)
		}
		rb, err := b.CreateCircle(2, mgl32.Vec2{}, 1, false, 0)
		if err != nil {
			t.Fatal(err)
		}
		if ra.Color != rb.Color {
			t.Errorf("body %d colors differ for same seed: %v vs %v", i, ra.Color, rb.Color)
		}
		for c := range 3 {
			if ra.Color[c] < 0 || ra.Color[c] > 1 {
				t.Errorf("body %d color channel %d = %v, want in [0, 1]", i, c, ra.Color[c])
			}
		}
	}
}
