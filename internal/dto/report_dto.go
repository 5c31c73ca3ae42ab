package dto

// Report and outreach DTOs

type ReportRequest struct {
	QueryID   string `json:"query_id" validate:"required,uuid4"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=pdf html"`
	AllowDemo bool   `json:"allow_demo,omitempty"`
}

type ReportResponse struct {
	QueryID   string `json:"query_id"`
	ReportURL string `json:"report_url"`
	Format    string `json:"format"`
	Demo      bool   `json:"demo,omitempty"`
}

type OutreachRequest struct {
	QueryID   string `json:"query_id" validate:"required,uuid4"`
	Tone      string `json:"tone,omitempty" validate:"omitempty,oneof=professional friendly direct"`
	Channel   string `json:"channel,omitempty" validate:"omitempty,oneof=email sms letter"`
	AllowDemo bool   `json:"allow_demo,omitempty"`
}

type OutreachResponse struct {
	QueryID  string   `json:"query_id"`
	Messages []string `json:"messages"`
	Demo     bool     `json:"demo,omitempty"`
}
