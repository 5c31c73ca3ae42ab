package service

import "propscore-webapp-be/internal/dto"

type IPlanService interface {
	GetPlans() []dto.PlanResponse
}

type planService struct {
	plans []dto.PlanResponse
}

// NewPlanService builds the static pricing catalog. Checkout happens on the
// external billing platform; the limits here mirror what the scoring API
// enforces so the upgrade prompt can show accurate numbers.
func NewPlanService() IPlanService {
	return &planService{
		plans: []dto.PlanResponse{
			{
				Slug:          "free",
				Name:          "Free",
				Tagline:       "Try PropScore on your next lead",
				Price:         0,
				BillingPeriod: "month",
				Limits: dto.PlanLimits{
					MonthlySearches: 10,
					MonthlyReports:  3,
					LeadListRows:    25,
				},
				Features: []string{
					"10 address searches per month",
					"3 seller reports per month",
					"Lead list ranking up to 25 rows",
				},
			},
			{
				Slug:          "pro",
				Name:          "Pro",
				Tagline:       "For agents working a full pipeline",
				Price:         49,
				BillingPeriod: "month",
				IsMostPopular: true,
				Limits: dto.PlanLimits{
					MonthlySearches: 500,
					MonthlyReports:  100,
					LeadListRows:    2000,
				},
				Features: []string{
					"500 address searches per month",
					"100 seller reports per month",
					"Lead list ranking up to 2,000 rows",
					"AI outreach message generation",
					"Priority support",
				},
			},
			{
				Slug:          "team",
				Name:          "Team",
				Tagline:       "Brokerages and high-volume teams",
				Price:         199,
				BillingPeriod: "month",
				Limits: dto.PlanLimits{
					MonthlySearches: -1,
					MonthlyReports:  -1,
					LeadListRows:    -1,
				},
				Features: []string{
					"Unlimited searches and reports",
					"Unlimited lead list rows",
					"AI outreach message generation",
					"Shared team workspace",
					"Dedicated account manager",
				},
			},
		},
	}
}

func (s *planService) GetPlans() []dto.PlanResponse {
	return s.plans
}
