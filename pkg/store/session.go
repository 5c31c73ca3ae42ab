package store

import "time"

// QueryState is the explicit wizard state of an in-flight search.
// Transitions are linear; see pkg/session for the allowed moves.
type QueryState string

const (
	StateIdle             QueryState = "IDLE"
	StateSearching        QueryState = "SEARCHING"
	StateAddressConfirmed QueryState = "ADDRESS_CONFIRMED"
	StateScored           QueryState = "SCORED"
	StateReported         QueryState = "REPORTED"
	StateOutreachDone     QueryState = "OUTREACH_GENERATED"
)

// QueryStep names one stage of the dashboard wizard.
type QueryStep string

const (
	StepAddressSearch    QueryStep = "address_search"
	StepPropertyDetails  QueryStep = "property_details"
	StepScoreAnalysis    QueryStep = "score_analysis"
	StepReportGeneration QueryStep = "report_generation"
	StepAiMessages       QueryStep = "ai_messages"
)

const (
	QueryStatusSearching = "searching"
	QueryStatusCompleted = "completed"
)

// Suggestion is one address autocomplete candidate from the scoring API.
type Suggestion struct {
	PlaceID string  `json:"place_id"`
	Label   string  `json:"label"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// Query represents one multi-step property search inside a session.
type Query struct {
	QueryID   string     `json:"query_id"`
	Address   string     `json:"address"`
	StartedAt time.Time  `json:"started_at"`
	Status    string     `json:"status"` // "searching" | "completed"
	State     QueryState `json:"state"`

	Steps map[QueryStep]bool `json:"steps"`

	// Payloads accumulated as steps complete
	Suggestions      []Suggestion           `json:"suggestions,omitempty"`
	PropertyID       string                 `json:"property_id,omitempty"`
	ConfirmedAddress string                 `json:"confirmed_address,omitempty"`
	PropertyData     map[string]interface{} `json:"property_data,omitempty"`
	ScoreData        map[string]interface{} `json:"score_data,omitempty"`
	ReportURL        string                 `json:"report_url,omitempty"`
	Messages         []string               `json:"messages,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Session is the active per-user workflow state. One CurrentQuery at most.
type Session struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	CurrentQuery *Query    `json:"current_query,omitempty"`
	SearchCount  int       `json:"search_count"`
}

// AddressData is the "current property analysis" shared state. It is kept
// independent from Session on purpose; the two are separate caches with
// separate history caps.
type AddressData struct {
	Address          string                 `json:"address"`
	ConfirmedAddress string                 `json:"confirmed_address"`
	PropertyID       string                 `json:"property_id"`
	PropertyData     map[string]interface{} `json:"property_data,omitempty"`
	ScoreData        map[string]interface{} `json:"score_data,omitempty"`
	QueryID          string                 `json:"query_id"`
}

// AddressHistoryEntry is one confirmed address in the address-context history.
type AddressHistoryEntry struct {
	Address     string    `json:"address"`
	PropertyID  string    `json:"property_id,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
