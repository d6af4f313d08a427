package model

import "testing"

func TestViewRepBonus(t *testing.T) {
	tests := []struct {
		newCount int
		want     int
	}{
		{1, 0},
		{9, 0},
		{10, 1},
		{11, 0},
		{19, 0},
		{20, 1},
		{100, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := ViewRepBonus(tt.newCount); got != tt.want {
			t.Errorf("ViewRepBonus(%d) = %d, want %d", tt.newCount, got, tt.want)
		}
	}
}

// Ten sequential views must grant exactly one bonus point, regardless of
// where in the sequence the threshold falls.
func TestViewRepBonus_OncePerThreshold(t *testing.T) {
	total := 0
	for count := 1; count <= 30; count++ {
		total += ViewRepBonus(count)
	}
	if total != 3 {
		t.Errorf("30 views granted %d bonus points, want 3", total)
	}
}

func TestReversalCharge(t *testing.T) {
	tests := []struct {
		name              string
		views, ups, downs int
		want              int
	}{
		{"fresh document", 0, 0, 0, 10},
		{"views below threshold", 9, 0, 0, 10},
		{"one view bonus", 10, 0, 0, 11},
		{"typical document", 25, 4, 1, 15},
		{"downvote heavy", 0, 1, 5, 6},
		{"partial thresholds ignored", 39, 0, 0, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReversalCharge(tt.views, tt.ups, tt.downs); got != tt.want {
				t.Errorf("ReversalCharge(%d, %d, %d) = %d, want %d",
					tt.views, tt.ups, tt.downs, got, tt.want)
			}
		})
	}
}

// Deleting a document must reverse exactly what its lifetime granted: the
// upload bonus, every view-threshold bonus, and the standing vote balance.
func TestReversalCharge_MatchesAccruedReputation(t *testing.T) {
	accrued := UploadRepBonus
	views := 0
	for i := 0; i < 47; i++ {
		views++
		accrued += ViewRepBonus(views)
	}
	ups, downs := 6, 2
	accrued += ups - downs

	if got := ReversalCharge(views, ups, downs); got != accrued {
		t.Errorf("ReversalCharge = %d, accrued = %d", got, accrued)
	}
}
