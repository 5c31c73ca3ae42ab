// Package demo fabricates sample payloads so the dashboard stays
// demonstrable when the scoring API is unreachable. Substitution only
// happens when a caller explicitly allows the fallback.
package demo

import (
	"fmt"
	"strings"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/pkg/store"
)

func Suggestions(address string) []store.Suggestion {
	base := strings.TrimSpace(address)
	if base == "" {
		base = "123 Main St"
	}
	return []store.Suggestion{
		{PlaceID: "demo-1", Label: base + ", Toronto, ON", Lat: 43.6532, Lng: -79.3832},
		{PlaceID: "demo-2", Label: base + ", Mississauga, ON", Lat: 43.589, Lng: -79.6441},
		{PlaceID: "demo-3", Label: base + ", Hamilton, ON", Lat: 43.2557, Lng: -79.8711},
	}
}

func Property(propertyID, confirmedAddress string) map[string]interface{} {
	return map[string]interface{}{
		"property_id":   propertyID,
		"address":       confirmedAddress,
		"property_type": "Detached",
		"bedrooms":      3,
		"bathrooms":     2,
		"year_built":    1987,
		"lot_size_sqft": 4200,
		"last_sale": map[string]interface{}{
			"price": 742000,
			"date":  "2019-06-14",
		},
	}
}

func Score() map[string]interface{} {
	return map[string]interface{}{
		"likelihood_to_sell": 0.78,
		"grade":              "A",
		"factors": []map[string]interface{}{
			{"name": "tenure", "weight": 0.35, "detail": "Owned 7+ years"},
			{"name": "equity", "weight": 0.28, "detail": "High estimated equity"},
			{"name": "market", "weight": 0.21, "detail": "Hot neighbourhood"},
		},
	}
}

func Messages(confirmedAddress string) []string {
	where := confirmedAddress
	if where == "" {
		where = "your property"
	}
	return []string{
		fmt.Sprintf("Hi, I work with homeowners near %s and wanted to share what similar homes have sold for recently. Open to a quick chat?", where),
		fmt.Sprintf("Hello! Market activity around %s has picked up. If selling ever crossed your mind, I can send a free estimate.", where),
	}
}

func RankedLeads() []dto.RankedLead {
	return []dto.RankedLead{
		{Rank: 1, Name: "J. Fernandez", Address: "18 Birchwood Ave, Toronto, ON", Phone: "416-555-0132", Score: 0.91},
		{Rank: 2, Name: "M. Okafor", Address: "402 Lakeshore Rd, Mississauga, ON", Phone: "905-555-0178", Score: 0.84},
		{Rank: 3, Name: "S. Tremblay", Address: "77 King St W, Hamilton, ON", Email: "s.tremblay@example.com", Score: 0.71},
	}
}

// RankedLeadsCSV renders the demo leads as CSV so the client can offer a
// download even without a backend file reference.
func RankedLeadsCSV() string {
	var b strings.Builder
	b.WriteString("rank,name,address,phone,email,score\n")
	for _, l := range RankedLeads() {
		b.WriteString(fmt.Sprintf("%d,%s,\"%s\",%s,%s,%.2f\n", l.Rank, l.Name, l.Address, l.Phone, l.Email, l.Score))
	}
	return b.String()
}
