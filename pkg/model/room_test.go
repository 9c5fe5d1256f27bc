package model

import "testing"

func TestRecomputeAggregates(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		wantAvg    float64
		wantTotal  int
	}{
		{"no reviews", nil, 0, 0},
		{"single review", []int{4}, 4, 1},
		{"mean of several", []int{5, 3, 4}, 4, 3},
		{"non-integer mean", []int{5, 4}, 4.5, 2},
		{"all minimum", []int{1, 1, 1, 1}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := &Room{}
			for _, r := range tt.ratings {
				room.Reviews = append(room.Reviews, Review{Rating: r})
			}

			room.RecomputeAggregates()

			if room.AverageRating != tt.wantAvg {
				t.Errorf("AverageRating = %v, want %v", room.AverageRating, tt.wantAvg)
			}
			if room.TotalReviews != tt.wantTotal {
				t.Errorf("TotalReviews = %d, want %d", room.TotalReviews, tt.wantTotal)
			}
		})
	}
}

func TestRecomputeAggregatesIsIdempotent(t *testing.T) {
	room := &Room{Reviews: []Review{{Rating: 2}, {Rating: 5}}}

	room.RecomputeAggregates()
	first := room.AverageRating
	room.RecomputeAggregates()

	if room.AverageRating != first {
		t.Errorf("recompute changed result without a review mutation: %v != %v", room.AverageRating, first)
	}
	if room.TotalReviews != 2 {
		t.Errorf("TotalReviews = %d, want 2", room.TotalReviews)
	}
}
