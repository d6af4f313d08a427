package model

import "time"

// VoteType is a voter's stance on a target: +1 upvote, -1 downvote, 0 no vote.
type VoteType int

const (
	VoteNone VoteType = 0
	VoteUp   VoteType = 1
	VoteDown VoteType = -1
)

// Valid reports whether v is a castable vote type. VoteNone is a state,
// not a request: the only way back to it is casting the same type twice.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote is one row of the vote ledger: a voter's current stance on a document.
// At most one row exists per (user, document), enforced by a unique constraint.
type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DocumentID string    `json:"documentId"`
	VoteType   VoteType  `json:"voteType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentVote is the comment-scoped twin of Vote. It carries no
// reputation effect; only the comment's own counters move.
type CommentVote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CommentID string    `json:"commentId"`
	VoteType  VoteType  `json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteTransition is the full effect of one cast on one target: the voter's
// new stance plus the relative counter deltas the store must apply. Deltas
// are applied as SQL-side increments so concurrent distinct-voter casts
// converge to the exact sum.
type VoteTransition struct {
	// NewState is the voter's stance after the cast. VoteNone means the
	// ledger row is deleted (toggle off).
	NewState VoteType

	UpDelta   int
	DownDelta int

	// OwnerRepDelta is the reputation change for the target's owner.
	// Skipped entirely when the voter owns the target (self-vote) and for
	// comment votes, which never touch reputation.
	OwnerRepDelta int
}

// ResolveVote maps (existing stance, requested stance) to the transition to
// apply. Casting the requested type twice in a row toggles the vote off;
// casting the opposite type flips it. The mapping:
//
//	none      +1 -> upvoted    (+1 up,            owner +1)
//	none      -1 -> downvoted  (+1 down,          owner -1)
//	upvoted   +1 -> none       (-1 up,            owner -1)
//	downvoted -1 -> none       (-1 down,          owner +1)
//	upvoted   -1 -> downvoted  (-1 up, +1 down,   owner -2)
//	downvoted +1 -> upvoted    (+1 up, -1 down,   owner +2)
func ResolveVote(existing, requested VoteType) VoteTransition {
	switch {
	case existing == requested:
		// Toggle off: undo the standing vote.
		return VoteTransition{
			NewState:      VoteNone,
			UpDelta:       boolDelta(requested == VoteUp, -1),
			DownDelta:     boolDelta(requested == VoteDown, -1),
			OwnerRepDelta: -int(requested),
		}
	case existing == VoteNone:
		return VoteTransition{
			NewState:      requested,
			UpDelta:       boolDelta(requested == VoteUp, 1),
			DownDelta:     boolDelta(requested == VoteDown, 1),
			OwnerRepDelta: int(requested),
		}
	default:
		// Flip: remove the old stance and add the new one in one step.
		return VoteTransition{
			NewState:      requested,
			UpDelta:       int(requested),
			DownDelta:     int(existing),
			OwnerRepDelta: 2 * int(requested),
		}
	}
}

func boolDelta(cond bool, delta int) int {
	if cond {
		return delta
	}
	return 0
}

// CastVoteRequest is the API request body for voting on a document or comment.
type CastVoteRequest struct {
	VoteType int `json:"voteType"`
}

// VoteResponse is the API response after a vote cast, carrying the target's
// updated counters and the caller's resulting stance.
type VoteResponse struct {
	Success       bool `json:"success"`
	UpvoteCount   int  `json:"upvoteCount"`
	DownvoteCount int  `json:"downvoteCount"`
	UserVote      int  `json:"userVote"`
}
