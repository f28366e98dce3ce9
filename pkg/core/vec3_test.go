package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, 7, 9)},
		{"Subtract", b.Subtract(a), NewVec3(3, 3, 3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, 10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", a.Cross(b), NewVec3(-3, 6, -3)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()

	const tolerance = 1e-12
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %v", v.Length())
	}
	if v.Subtract(NewVec3(0.6, 0.8, 0)).Length() > tolerance {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	// Zero vectors normalize to zero rather than NaN.
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incident := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)

	reflected := incident.Reflect(normal)
	expected := NewVec3(1, 1, 0).Normalize()

	if reflected.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)

	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis %d: expected %v, got %v", axis, expected, got)
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.3, 0.8, -0.2).Normalize(),
	}

	const tolerance = 1e-9
	for _, normal := range normals {
		tangent, bitangent := OrthonormalBasis(normal)

		if math.Abs(tangent.Length()-1) > tolerance || math.Abs(bitangent.Length()-1) > tolerance {
			t.Errorf("Normal %v: basis vectors not unit length", normal)
		}
		if math.Abs(tangent.Dot(normal)) > tolerance ||
			math.Abs(bitangent.Dot(normal)) > tolerance ||
			math.Abs(tangent.Dot(bitangent)) > tolerance {
			t.Errorf("Normal %v: basis not orthogonal", normal)
		}
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	// Every sample must land in the upper hemisphere as a unit vector.
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			sample := NewVec2((float64(i)+0.5)/16, (float64(j)+0.5)/16)
			dir := SampleCosineHemisphere(normal, sample)

			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("Sample %v: direction not unit length: %v", sample, dir)
			}
			if dir.Dot(normal) < 0 {
				t.Fatalf("Sample %v: direction below hemisphere: %v", sample, dir)
			}
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	// Concentric mapping must stay inside the unit disk and map the center
	// sample to the origin.
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			sample := NewVec2((float64(i)+0.5)/16, (float64(j)+0.5)/16)
			p := SamplePointInUnitDisk(sample)

			if p.X*p.X+p.Y*p.Y > 1+1e-12 {
				t.Fatalf("Sample %v maps outside the disk: %v", sample, p)
			}
		}
	}

	center := SamplePointInUnitDisk(NewVec2(0.5, 0.5))
	if center != NewVec2(0, 0) {
		t.Errorf("Expected center sample at origin, got %v", center)
	}
}
