package dto

// Lead-list upload and ranking DTOs

type RankedLead struct {
	Rank    int                    `json:"rank"`
	Name    string                 `json:"name"`
	Address string                 `json:"address"`
	Phone   string                 `json:"phone,omitempty"`
	Email   string                 `json:"email,omitempty"`
	Score   float64                `json:"score"`
	Signals map[string]interface{} `json:"signals,omitempty"`
}

type LeadsUploadResponse struct {
	Leads      []RankedLead `json:"leads"`
	TotalRows  int          `json:"total_rows"`
	FileURL    string       `json:"file_url,omitempty"` // backend-hosted ranked CSV
	Demo       bool         `json:"demo,omitempty"`
	DemoCSV    string       `json:"demo_csv,omitempty"` // inline CSV for the demo fallback download
	UploadName string       `json:"upload_name,omitempty"`
}
