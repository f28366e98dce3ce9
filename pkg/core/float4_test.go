package core

import (
	"math"
	"testing"
)

func TestFloat4_Arithmetic(t *testing.T) {
	a := NewFloat4(1, 2, 3, 4)
	b := NewFloat4(4, 3, 2, 1)

	tests := []struct {
		name     string
		result   Float4
		expected Float4
	}{
		{"Add", a.Add(b), NewFloat4(5, 5, 5, 5)},
		{"Sub", a.Sub(b), NewFloat4(-3, -1, 1, 3)},
		{"Mul", a.Mul(b), NewFloat4(4, 6, 6, 4)},
		{"Div", a.Div(b), NewFloat4(0.25, 2.0 / 3.0, 1.5, 4)},
		{"Scale", a.Scale(2), NewFloat4(2, 4, 6, 8)},
		{"MinWith", a.MinWith(b), NewFloat4(1, 2, 2, 1)},
		{"MaxWith", a.MaxWith(b), NewFloat4(4, 3, 3, 4)},
		{"Clamp", a.Clamp(2, 3), NewFloat4(2, 2, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			for i := 0; i < 4; i++ {
				if math.Abs(tt.result[i]-tt.expected[i]) > tolerance {
					t.Errorf("Expected %v, got %v", tt.expected, tt.result)
					break
				}
			}
		})
	}
}

func TestFloat4_HorizontalOps(t *testing.T) {
	f := NewFloat4(3, 1, 4, 2)

	if got := f.HSum(); got != 10 {
		t.Errorf("Expected HSum 10, got %v", got)
	}
	if got := f.HProduct(); got != 24 {
		t.Errorf("Expected HProduct 24, got %v", got)
	}
	if got := f.HMin(); got != 1 {
		t.Errorf("Expected HMin 1, got %v", got)
	}
	if got := f.HMax(); got != 4 {
		t.Errorf("Expected HMax 4, got %v", got)
	}
	if got := f.MaxElem(); got != 4 {
		t.Errorf("Expected MaxElem 4, got %v", got)
	}
}

func TestFloat4_Shuffle(t *testing.T) {
	f := NewFloat4(10, 20, 30, 40)

	if got := f.Shuffle(3, 2, 1, 0); got != NewFloat4(40, 30, 20, 10) {
		t.Errorf("Expected reversed lane, got %v", got)
	}
	if got := f.Shuffle(0, 0, 0, 0); got != SplatFloat4(10) {
		t.Errorf("Expected broadcast lane, got %v", got)
	}
	// Indices wrap modulo 4.
	if got := f.Shuffle(4, 5, 6, 7); got != f {
		t.Errorf("Expected identity from wrapped indices, got %v", got)
	}
}

func TestFloat4_Dot(t *testing.T) {
	a := NewFloat4(1, 2, 3, 4)
	b := NewFloat4(4, 3, 2, 1)

	if got := a.Dot(b); got != 20 {
		t.Errorf("Expected dot 20, got %v", got)
	}
}

func TestFloat4_IsFinite(t *testing.T) {
	tests := []struct {
		name     string
		value    Float4
		expected bool
	}{
		{"All finite", NewFloat4(1, 2, 3, 4), true},
		{"Zero lane", Float4{}, true},
		{"Contains NaN", NewFloat4(1, math.NaN(), 3, 4), false},
		{"Contains +Inf", NewFloat4(1, 2, math.Inf(1), 4), false},
		{"Contains -Inf", NewFloat4(math.Inf(-1), 2, 3, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsFinite(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
