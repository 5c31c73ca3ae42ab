package dto

// Address-context DTOs. This state is intentionally separate from the
// session tracker; see pkg/addressctx.

type AddressPatchRequest struct {
	Address          string                 `json:"address,omitempty"`
	ConfirmedAddress string                 `json:"confirmed_address,omitempty"`
	PropertyID       string                 `json:"property_id,omitempty"`
	PropertyData     map[string]interface{} `json:"property_data,omitempty"`
	ScoreData        map[string]interface{} `json:"score_data,omitempty"`
	QueryID          string                 `json:"query_id,omitempty"`
}
