package model

import "testing"

func TestResolveVote_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		existing  VoteType
		requested VoteType
		wantState VoteType
		wantUp    int
		wantDown  int
		wantRep   int
	}{
		{"new upvote", VoteNone, VoteUp, VoteUp, 1, 0, 1},
		{"new downvote", VoteNone, VoteDown, VoteDown, 0, 1, -1},
		{"toggle off upvote", VoteUp, VoteUp, VoteNone, -1, 0, -1},
		{"toggle off downvote", VoteDown, VoteDown, VoteNone, 0, -1, 1},
		{"flip up to down", VoteUp, VoteDown, VoteDown, -1, 1, -2},
		{"flip down to up", VoteDown, VoteUp, VoteUp, 1, -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveVote(tt.existing, tt.requested)
			if got.NewState != tt.wantState {
				t.Errorf("NewState = %d, want %d", got.NewState, tt.wantState)
			}
			if got.UpDelta != tt.wantUp {
				t.Errorf("UpDelta = %d, want %d", got.UpDelta, tt.wantUp)
			}
			if got.DownDelta != tt.wantDown {
				t.Errorf("DownDelta = %d, want %d", got.DownDelta, tt.wantDown)
			}
			if got.OwnerRepDelta != tt.wantRep {
				t.Errorf("OwnerRepDelta = %d, want %d", got.OwnerRepDelta, tt.wantRep)
			}
		})
	}
}

// Casting the same vote twice must leave every counter where it started.
func TestResolveVote_ToggleRoundTrip(t *testing.T) {
	for _, vt := range []VoteType{VoteUp, VoteDown} {
		cast := ResolveVote(VoteNone, vt)
		retract := ResolveVote(cast.NewState, vt)

		if retract.NewState != VoteNone {
			t.Errorf("retract of %d should end at VoteNone, got %d", vt, retract.NewState)
		}
		if cast.UpDelta+retract.UpDelta != 0 {
			t.Errorf("up deltas for %d don't cancel: %d + %d", vt, cast.UpDelta, retract.UpDelta)
		}
		if cast.DownDelta+retract.DownDelta != 0 {
			t.Errorf("down deltas for %d don't cancel: %d + %d", vt, cast.DownDelta, retract.DownDelta)
		}
		if cast.OwnerRepDelta+retract.OwnerRepDelta != 0 {
			t.Errorf("rep deltas for %d don't cancel: %d + %d", vt, cast.OwnerRepDelta, retract.OwnerRepDelta)
		}
	}
}

// A flip must move reputation by exactly two points toward the new stance.
func TestResolveVote_FlipIsDouble(t *testing.T) {
	if got := ResolveVote(VoteUp, VoteDown).OwnerRepDelta; got != -2 {
		t.Errorf("up->down rep delta = %d, want -2", got)
	}
	if got := ResolveVote(VoteDown, VoteUp).OwnerRepDelta; got != 2 {
		t.Errorf("down->up rep delta = %d, want 2", got)
	}
}

// Replaying any cast sequence through the transitions must keep the counters
// equal to a direct tally of the final stances. Simulates the N-voters
// property: N distinct users upvoting yields exactly N.
func TestResolveVote_SequenceConvergence(t *testing.T) {
	const voters = 25

	stance := make(map[int]VoteType, voters)
	up, down := 0, 0

	apply := func(voter int, requested VoteType) {
		tr := ResolveVote(stance[voter], requested)
		up += tr.UpDelta
		down += tr.DownDelta
		if tr.NewState == VoteNone {
			delete(stance, voter)
		} else {
			stance[voter] = tr.NewState
		}
	}

	// Everyone upvotes once.
	for v := 0; v < voters; v++ {
		apply(v, VoteUp)
	}
	if up != voters || down != 0 {
		t.Fatalf("after %d upvotes: up=%d down=%d", voters, up, down)
	}

	// A third flips to downvote, a third retracts, a third double-taps (net
	// retract), then votes again.
	for v := 0; v < voters; v++ {
		switch v % 3 {
		case 0:
			apply(v, VoteDown)
		case 1:
			apply(v, VoteUp)
		case 2:
			apply(v, VoteUp)
			apply(v, VoteUp)
		}
	}

	wantUp, wantDown := 0, 0
	for _, s := range stance {
		switch s {
		case VoteUp:
			wantUp++
		case VoteDown:
			wantDown++
		}
	}
	if up != wantUp || down != wantDown {
		t.Errorf("counters drifted from stances: up=%d want %d, down=%d want %d", up, wantUp, down, wantDown)
	}
}

func TestVoteType_Valid(t *testing.T) {
	if !VoteUp.Valid() || !VoteDown.Valid() {
		t.Error("up and down must be castable")
	}
	if VoteNone.Valid() {
		t.Error("VoteNone is not a castable request")
	}
	if VoteType(2).Valid() || VoteType(-7).Valid() {
		t.Error("out-of-range values must be invalid")
	}
}
