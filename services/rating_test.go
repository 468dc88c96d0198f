package services

import "testing"

func TestMeanRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4.0},
		{"whole mean", []int{4, 4, 4}, 4.0},
		{"rounds down", []int{4, 4, 5}, 4.3},
		{"rounds up", []int{4, 5, 5}, 4.7},
		{"half rounds away", []int{4, 5}, 4.5},
		{"all minimum", []int{1, 1, 1, 1}, 1.0},
		{"all maximum", []int{5, 5, 5, 5, 5}, 5.0},
		{"mixed", []int{1, 2, 3, 4, 5}, 3.0},
		{"new rating keeps mean", []int{5, 3, 4}, 4.0},
		{"repeating decimal", []int{5, 5, 4}, 4.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeanRating(tt.ratings); got != tt.want {
				t.Errorf("MeanRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.44, 4.4},
		{4.46, 4.5},
		{4.56, 4.6},
		{4.649999, 4.6},
		{0, 0},
		{5, 5},
	}

	for _, tt := range tests {
		if got := RoundRating(tt.in); got != tt.want {
			t.Errorf("RoundRating(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMeanRatingStaysInBounds(t *testing.T) {
	for count := 1; count <= 50; count++ {
		ratings := make([]int, count)
		for i := range ratings {
			ratings[i] = (i % 5) + 1
		}
		mean := MeanRating(ratings)
		if mean < 1.0 || mean > 5.0 {
			t.Fatalf("mean of %d ratings is %v, outside [1, 5]", count, mean)
		}
	}
}
