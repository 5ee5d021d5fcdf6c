package models

type Company struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Address         string        `json:"address,omitempty"`
	City            string        `json:"city,omitempty"`
	PostalCode      string        `json:"postalCode,omitempty"`
	Country         string        `json:"country,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	EmployeesNumber int           `json:"employeesNumber"`
	IsVerified      bool          `json:"isVerified"`
	Credit          int           `json:"credit"`
	Logo            *Media        `json:"logo,omitempty"`
	Client          *Person       `json:"client,omitempty"`
	Subscription    *Subscription `json:"subscription,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}

// Subscription links a company to its plan.
type Subscription struct {
	ID        string `json:"id"`
	Plan      *Plan  `json:"plan,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// CompanyFilter is the query object of the company list.
type CompanyFilter struct {
	Name       string `json:"name,omitempty"`
	IsVerified *bool  `json:"isVerified,omitempty"`
}

// CompanyUpdate is the editable subset sent on PUT.
type CompanyUpdate struct {
	Name            string `json:"name,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Phone           string `json:"phone,omitempty"`
	EmployeesNumber *int   `json:"employeesNumber,omitempty"`
	Credit          *int   `json:"credit,omitempty"`
	IsVerified      *bool  `json:"isVerified,omitempty"`
}
