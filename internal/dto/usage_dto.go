// DTOs for the usage-limit payload the scoring API attaches to HTTP 429.
package dto

// UsageInfo describes which plan limit was hit and where the user stands.
type UsageInfo struct {
	UsageType    string `json:"usage_type"`   // e.g. "searches", "reports"
	DisplayName  string `json:"display_name"` // e.g. "Property Searches"
	CurrentCount int    `json:"current_count"`
	Limit        int    `json:"limit"`
}

// UsageErrorDetail is the `detail` object of a 429 body.
type UsageErrorDetail struct {
	UsageInfo    *UsageInfo `json:"usage_info,omitempty"`
	TrialExpired bool       `json:"trial_expired,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// UpstreamErrorBody is the error envelope the scoring API returns.
type UpstreamErrorBody struct {
	Detail UsageErrorDetail `json:"detail"`
}
