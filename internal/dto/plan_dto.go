package dto

// Pricing-page DTOs. Billing itself lives in the external platform; this is
// the catalog the upgrade prompt links to.

type PlanResponse struct {
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Tagline       string     `json:"tagline"`
	Price         float64    `json:"price"`
	BillingPeriod string     `json:"billing_period"`
	IsMostPopular bool       `json:"is_most_popular"`
	Limits        PlanLimits `json:"limits"`
	Features      []string   `json:"features"`
}

type PlanLimits struct {
	MonthlySearches int `json:"monthly_searches"` // -1 = unlimited
	MonthlyReports  int `json:"monthly_reports"`
	LeadListRows    int `json:"lead_list_rows"`
}
