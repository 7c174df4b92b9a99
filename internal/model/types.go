package model

// Session links a canonical session URI to a resolved login identifier.
type Session struct {
	URI           string   `json:"uri"`
	Identifier    string   `json:"identifier"`
	AllowedGroups []string `json:"mu_auth_allowed_groups"`
}

// UserPrincipal is the resolved identity behind an authenticated request.
// It is derived from store data on every request and never persisted.
type UserPrincipal struct {
	URI         string `json:"uri"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountURI  string `json:"-"`
	AccountName string `json:"accountName"`
	Contact     string `json:"email,omitempty"`
}

// Group is an organization users can join.
type Group struct {
	URI    string `json:"uri"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// GroupMember is a user as listed within a group.
type GroupMember struct {
	URI  string `json:"uri"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Membership is the paired relation between a user and a group. The two
// directional edges it stands for are always written and removed together.
type Membership struct {
	UserURI  string `json:"user"`
	GroupURI string `json:"group"`
}

// MemberCount is one user's counter value for a period, in store order.
type MemberCount struct {
	UserURI  string
	UserName string
	Count    int
}

// LeaderboardEntry is a ranked row of a group leaderboard for one period.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserURI  string `json:"userUri"`
	UserName string `json:"userName"`
	Count    int    `json:"count"`
	Period   string `json:"period"`
}
