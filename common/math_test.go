package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0.5, 5},
		{2, 4, 0, 2},
		{2, 4, 1, 4},
	}
	for _, c := range cases {
		if got := Lerp(c.a, c.b, c.t); got != c.want {
			t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.t, got, c.want)
		}
	}
}

func TestClampAndInverseLerp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp upper = %d", got)
	}
	if got := Clamp(-1.5, 0, 3); got != 0 {
		t.Fatalf("Clamp lower = %v", got)
	}
	if got := InverseLerp(0, 4, 1); got != 0.25 {
		t.Fatalf("InverseLerp = %v", got)
	}
	if got := InverseLerp(1, 1, 3); got != 0 {
		t.Fatalf("InverseLerp degenerate = %v", got)
	}
	if got := InverseLerp(0, 1, 9); got != 1 {
		t.Fatalf("InverseLerp clamp = %v", got)
	}
}
