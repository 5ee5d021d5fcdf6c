package models

// Pricing is the singleton per-unit rate record.
type Pricing struct {
	Employee     float64 `json:"employee"`
	Snacking     float64 `json:"snacking"`
	Teambuilding float64 `json:"teambuilding"`
	WellBeing    float64 `json:"wellBeing"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQInput is the create/update payload.
type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PlanSubscriptions counts subscriptions for one plan.
type PlanSubscriptions struct {
	PlanName string `json:"planName"`
	Count    int    `json:"count"`
}

// Analytics is the dashboard summary.
type Analytics struct {
	TotalCompanies       int                 `json:"totalCompanies"`
	VerifiedCompanies    int                 `json:"verifiedCompanies"`
	UnverifiedCompanies  int                 `json:"unverifiedCompanies"`
	TotalPlans           int                 `json:"totalPlans"`
	SubscriptionsPerPlan []PlanSubscriptions `json:"subscriptionsPerPlan"`
	TotalSubscriptions   int                 `json:"totalSubscriptions"`
	TotalSchedules       int                 `json:"totalSchedules"`
	CompletedSchedules   int                 `json:"completedSchedules"`
	PendingSchedules     int                 `json:"pendingSchedules"`
	CanceledSchedules    int                 `json:"canceledSchedules"`
	TotalActivities      int                 `json:"totalActivities"`
	TotalCreditsConsumed int                 `json:"totalCreditsConsumed"`
}
