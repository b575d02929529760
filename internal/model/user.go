package model

import "time"

// UserProfile is a user's leaderboard entry: identity plus the latest
// aggregate snapshot. The aggregates are a derived cache of the user's
// ledger events and are only written through the leaderboard snapshot path.
type UserProfile struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	TotalRecycled   int64   `json:"total_recycled"`
	TotalValueCents int64   `json:"total_value_cents"`
	ImpactScore     float64 `json:"impact_score"`
}

// UserStats holds the aggregates computed from a user's ledger events.
type UserStats struct {
	TotalRecycled   int64   `json:"total_recycled"`
	TotalValueCents int64   `json:"total_value_cents"`
	ImpactScore     float64 `json:"impact_score"`
}

// Credential is an account record internal to the account directory.
// One-to-one with a UserProfile, created together at registration.
type Credential struct {
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
