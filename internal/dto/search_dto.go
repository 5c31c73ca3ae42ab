package dto

import "propscore-webapp-be/pkg/store"

// Search wizard DTOs

type SearchRequest struct {
	Address   string `json:"address" validate:"required,min=3"`
	AllowDemo bool   `json:"allow_demo,omitempty"`
}

type SearchResponse struct {
	QueryID     string             `json:"query_id"`
	Suggestions []store.Suggestion `json:"suggestions"`
	Demo        bool               `json:"demo,omitempty"`
}

type ConfirmPropertyRequest struct {
	QueryID          string `json:"query_id" validate:"required,uuid4"`
	PropertyID       string `json:"property_id" validate:"required"`
	ConfirmedAddress string `json:"confirmed_address" validate:"required"`
	AllowDemo        bool   `json:"allow_demo,omitempty"`
}

type PropertyResponse struct {
	QueryID          string                 `json:"query_id"`
	PropertyID       string                 `json:"property_id"`
	ConfirmedAddress string                 `json:"confirmed_address"`
	Property         map[string]interface{} `json:"property"`
	Demo             bool                   `json:"demo,omitempty"`
}

type ScoreRequest struct {
	QueryID    string `json:"query_id" validate:"required,uuid4"`
	PropertyID string `json:"property_id" validate:"required"`
	AllowDemo  bool   `json:"allow_demo,omitempty"`
}

type ScoreResponse struct {
	QueryID string                 `json:"query_id"`
	Score   map[string]interface{} `json:"score"`
	Demo    bool                   `json:"demo,omitempty"`
}

type CompleteSearchRequest struct {
	QueryID string                 `json:"query_id" validate:"required,uuid4"`
	Final   map[string]interface{} `json:"final,omitempty"`
}

type SessionResponse struct {
	SessionID    string       `json:"session_id"`
	UserID       string       `json:"user_id"`
	SearchCount  int          `json:"search_count"`
	CurrentQuery *store.Query `json:"current_query,omitempty"`
}
