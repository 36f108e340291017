package models

// UpdateCountRequest represents the request body for adjusting a count by a delta
// Example: {"name": "T-Shirt", "delta": 1}
type UpdateCountRequest struct {
	Name   string `json:"name"`
	Delta  int    `json:"delta"`
	Custom bool   `json:"custom,omitempty"`
}

// SetCountRequest represents the request body for setting a count directly.
// Value is kept untyped so malformed input (strings, nulls) can be coerced
// at the boundary instead of failing the decode.
type SetCountRequest struct {
	Name   string      `json:"name"`
	Value  interface{} `json:"value"`
	Custom bool        `json:"custom,omitempty"`
}

// CustomItemRequest represents the request body for adding or removing a custom item
type CustomItemRequest struct {
	Name string `json:"name"`
}

// ResetRequest represents the request body for the reset action.
// Reset only proceeds when Confirm is true.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// CountsResponse represents the current tally state returned by GET /api/counts
type CountsResponse struct {
	Predefined map[string]int `json:"predefined"`
	Custom     map[string]int `json:"custom"`
	State      string         `json:"state"`
	LastError  string         `json:"lastError,omitempty"`
}
