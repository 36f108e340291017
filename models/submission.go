package models

// Delivery channels form a fixed, closed set
const (
	ChannelLocalSave = "local-save"
	ChannelDiscord   = "discord"
	ChannelDrive     = "drive"
)

// ValidChannel reports whether the given channel identifier is part of
// the closed channel set
func ValidChannel(channel string) bool {
	switch channel {
	case ChannelLocalSave, ChannelDiscord, ChannelDrive:
		return true
	}
	return false
}

// Submission represents one logged download-or-send attempt. Rows are
// append-only and never updated after insertion.
type Submission struct {
	ID              int64            `json:"id"`
	CreatedAt       string           `json:"createdAt"`
	Channel         string           `json:"channel"`
	Scenario        string           `json:"scenario,omitempty"`
	CustomerRef     string           `json:"customerRef,omitempty"`
	TotalItems      int              `json:"totalItems"`
	ItemsWithValues int              `json:"itemsWithValues"`
	Success         bool             `json:"success"`
	Items           []SubmissionItem `json:"items,omitempty"`
}

// SubmissionItem is one item with a count > 0 at record time
type SubmissionItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RecordOptions carries the metadata for a new submission record
type RecordOptions struct {
	Channel     string `json:"channel"`
	Success     bool   `json:"success"`
	CustomerRef string `json:"customerRef,omitempty"`
	Scenario    string `json:"scenario,omitempty"`
}

// ChannelStats holds per-channel aggregate counts and success rate
type ChannelStats struct {
	Channel     string  `json:"channel"`
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}

// ItemFrequency ranks an item by how many submissions included it, then
// by its summed count across those submissions
type ItemFrequency struct {
	Name        string `json:"name"`
	Submissions int    `json:"submissions"`
	TotalCount  int    `json:"totalCount"`
}

// SubmissionSummary is the global summary returned by the stats endpoint
type SubmissionSummary struct {
	TotalSubmissions   int             `json:"totalSubmissions"`
	Succeeded          int             `json:"succeeded"`
	Failed             int             `json:"failed"`
	AvgItemsWithValues float64         `json:"avgItemsWithValues"`
	TopItems           []ItemFrequency `json:"topItems"`
	Recent             []Submission    `json:"recent"`
}
