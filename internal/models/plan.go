package models

type Plan struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Credit     int        `json:"credit"`
	Price      float64    `json:"price"`
	Benefits   []string   `json:"benifits"`
	Activities []Activity `json:"activities,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
}

// PlanInput is the create/update payload; activities are sent as ids.
type PlanInput struct {
	Name       string   `json:"name"`
	Credit     int      `json:"credit"`
	Price      float64  `json:"price"`
	Benefits   []string `json:"benifits"`
	Activities []string `json:"activities"`
}

// Input converts a plan to its save payload.
func (p Plan) Input() PlanInput {
	ids := make([]string, 0, len(p.Activities))
	for _, a := range p.Activities {
		ids = append(ids, a.ID)
	}
	benefits := p.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	return PlanInput{Name: p.Name, Credit: p.Credit, Price: p.Price, Benefits: benefits, Activities: ids}
}
