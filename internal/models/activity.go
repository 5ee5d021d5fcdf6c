package models

// ActivityType tags an activity with its family.
type ActivityType string

const (
	ActivityWellBeing    ActivityType = "BIEN_ETRE"
	ActivityTeamBuilding ActivityType = "TEAM_BUILDING"
	ActivityFood         ActivityType = "NOURRITURE"
)

// ActivityTypes lists every valid type in display order.
var ActivityTypes = []ActivityType{ActivityWellBeing, ActivityTeamBuilding, ActivityFood}

// Valid reports whether t is a known type.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ActivityImage is a persisted activity image.
type ActivityImage struct {
	ID      string `json:"id"`
	FullURL string `json:"fullUrl"`
	IsMain  bool   `json:"isMain"`
}

type Activity struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Address         string          `json:"address,omitempty"`
	PostalCode      string          `json:"postalCode,omitempty"`
	City            string          `json:"city,omitempty"`
	LocationURL     string          `json:"locationUrl,omitempty"`
	Duration        float64         `json:"duration"`
	Participants    int             `json:"participants"`
	IsInsideCompany bool            `json:"isInsideCompany"`
	CreditCost      int             `json:"creditCost"`
	MainImageIndex  int             `json:"mainImageIndex"`
	IsAvailable     bool            `json:"isAvailable"`
	Types           []ActivityType  `json:"types"`
	KeyWords        []string        `json:"keyWords"`
	Images          []ActivityImage `json:"images"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// ActivityFilter is the query object of the activity list.
type ActivityFilter struct {
	Search      string       `json:"search,omitempty"`
	Type        ActivityType `json:"type,omitempty"`
	DurationMin *float64     `json:"durationMin,omitempty"`
	DurationMax *float64     `json:"durationMax,omitempty"`
	IsAvailable *bool        `json:"isAvailable,omitempty"`
}

// UpdateMainImageRequest selects a persisted image as main.
type UpdateMainImageRequest struct {
	ImageID string `json:"imageId"`
}

// ActivityInput is the JSON update payload. Address fields are null for
// activities hosted inside the client company.
type ActivityInput struct {
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Address         *string        `json:"address"`
	PostalCode      *string        `json:"postalCode"`
	City            *string        `json:"city"`
	LocationURL     string         `json:"locationUrl,omitempty"`
	Duration        float64        `json:"duration"`
	Participants    int            `json:"participants"`
	IsInsideCompany bool           `json:"isInsideCompany"`
	CreditCost      int            `json:"creditCost"`
	IsAvailable     bool           `json:"isAvailable"`
	Types           []ActivityType `json:"types"`
	KeyWords        []string       `json:"keyWords"`
}

// Input drops the server managed fields of a.
func (a Activity) Input() ActivityInput {
	in := ActivityInput{
		Name:            a.Name,
		Description:     a.Description,
		LocationURL:     a.LocationURL,
		Duration:        a.Duration,
		Participants:    a.Participants,
		IsInsideCompany: a.IsInsideCompany,
		CreditCost:      a.CreditCost,
		IsAvailable:     a.IsAvailable,
		Types:           a.Types,
		KeyWords:        a.KeyWords,
	}
	if !a.IsInsideCompany {
		in.Address, in.PostalCode, in.City = &a.Address, &a.PostalCode, &a.City
	}
	if in.Types == nil {
		in.Types = []ActivityType{}
	}
	if in.KeyWords == nil {
		in.KeyWords = []string{}
	}
	return in
}
