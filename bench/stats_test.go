package bench

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{name: "empty", data: nil, want: 0},
		{name: "single", data: []float64{4}, want: 4},
		{name: "several", data: []float64{1, 2, 3, 4}, want: 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Mean(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 10},
		{p: 50, want: 30},
		{p: 100, want: 50},
		{p: 25, want: 20},
		{p: 90, want: 46},
	}
	for _, tt := range tests {
		if got := Percentile(data, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(p=%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPercentile_UnsortedInput(t *testing.T) {
	if got := Percentile([]float64{50, 10, 40, 20, 30}, 50); math.Abs(got-30) > 1e-9 {
		t.Errorf("Percentile of unsorted input = %v, want 30", got)
	}
}

func TestPercentile_Empty(t *testing.T) {
	if got := Percentile([]float64{}, 95); got != 0 {
		t.Errorf("Percentile of empty = %v, want 0", got)
	}
}

func TestPopVariance(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{name: "fewer than two values", data: []float64{0.5}, want: 0},
		{name: "identical values", data: []float64{0.3, 0.3, 0.3}, want: 0},
		{name: "binary split", data: []float64{0, 1}, want: 0.25},
		{name: "wider spread", data: []float64{0, 0, 1, 1}, want: 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopVariance(tt.data); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PopVariance(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
