package vmath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		v, w V2
		want V2
	}{
		{name: "zero", v: NewV2(0, 0), w: NewV2(0, 0), want: NewV2(0, 0)},
		{name: "positive", v: NewV2(1, 2), w: NewV2(3, 4), want: NewV2(4, 6)},
		{name: "mixed signs", v: NewV2(-1, 2), w: NewV2(1, -2), want: NewV2(0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Add(tc.w)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Add() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		name string
		v, w V2
		want V2
	}{
		{name: "zero", v: NewV2(0, 0), w: NewV2(0, 0), want: NewV2(0, 0)},
		{name: "positive", v: NewV2(3, 4), w: NewV2(1, 2), want: NewV2(2, 2)},
		{name: "negative result", v: NewV2(1, 1), w: NewV2(2, 3), want: NewV2(-1, -2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Sub(tc.w)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Sub() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		v    V2
		s    float32
		want V2
	}{
		{name: "identity", v: NewV2(1, 2), s: 1, want: NewV2(1, 2)},
		{name: "double", v: NewV2(1, 2), s: 2, want: NewV2(2, 4)},
		{name: "negate", v: NewV2(1, 2), s: -1, want: NewV2(-1, -2)},
		{name: "zero", v: NewV2(1, 2), s: 0, want: NewV2(0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Scale(tc.s)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Scale() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		v, w V2
		f    float32
		want V2
	}{
		{name: "f=0", v: NewV2(0, 0), w: NewV2(10, 20), f: 0, want: NewV2(0, 0)},
		{name: "f=1", v: NewV2(0, 0), w: NewV2(10, 20), f: 1, want: NewV2(10, 20)},
		{name: "midpoint", v: NewV2(0, 0), w: NewV2(10, 20), f: 0.5, want: NewV2(5, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Lerp(tc.w, tc.f)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Lerp() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	v := NewV2(1, 4)
	w := NewV2(3, 2)

	if got, want := v.Min(w), NewV2(1, 2); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := v.Max(w), NewV2(3, 4); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}
