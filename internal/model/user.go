package model

import "time"

// Reputation constants. Uploads grant a flat bonus; views grant +1 each time
// the document's view counter crosses a multiple of ViewRepThreshold.
const (
	UploadRepBonus   = 10
	ViewRepThreshold = 10
)

// User holds the identity-provider id plus the derived aggregate counters.
// The aggregates are mutated only by the engine operations, never directly.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        *string   `json:"fullName,omitempty"`
	AvatarURL       *string   `json:"avatarUrl,omitempty"`
	Role            string    `json:"role"`
	ReputationScore int       `json:"reputationScore"`
	TotalViews      int       `json:"totalViews"`
	TotalUpvotes    int       `json:"totalUpvotes"`
	TotalDownvotes  int       `json:"totalDownvotes"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActive      time.Time `json:"-"`
}

// Identity is the profile the external identity provider attaches to a
// request. ID is stable; the rest may change between requests and is
// refreshed on every sync.
type Identity struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
}

// ViewRepBonus returns the reputation bonus earned by the increment that
// produced newViewCount: 1 exactly when the counter just crossed a multiple
// of ViewRepThreshold. The caller must pass the post-increment value read
// back from the same atomic update, not a separate read.
func ViewRepBonus(newViewCount int) int {
	if newViewCount > 0 && newViewCount%ViewRepThreshold == 0 {
		return 1
	}
	return 0
}

// ReversalCharge is the reputation a document accrued for its owner over its
// lifetime, computed from current counters at deletion time: the upload
// bonus, one point per full threshold of views, and the standing vote
// balance. An approximation by design — see the counter audit worker for
// the drift backstop.
func ReversalCharge(viewCount, upvoteCount, downvoteCount int) int {
	return UploadRepBonus + viewCount/ViewRepThreshold + upvoteCount - downvoteCount
}

// LeaderboardEntry is one row of the reputation leaderboard.
type LeaderboardEntry struct {
	UserID          string  `json:"userId"`
	FullName        *string `json:"fullName,omitempty"`
	AvatarURL       *string `json:"avatarUrl,omitempty"`
	ReputationScore int     `json:"reputationScore"`
	TotalUpvotes    int     `json:"totalUpvotes"`
	TotalViews      int     `json:"totalViews"`
}

// StatsResponse is the API response for platform-wide statistics.
type StatsResponse struct {
	TotalDocuments int            `json:"totalDocuments"`
	TotalVotes     int            `json:"totalVotes"`
	TotalUsers     int            `json:"totalUsers"`
	TotalBookmarks int            `json:"totalBookmarks"`
	ActiveUsers24h int            `json:"activeUsers24h"`
	TopSubjects    map[string]int `json:"topSubjects"`
}
