package pages

import (
	"context"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resources/companies"
	"backoffice-console/internal/resources/plans"
	"backoffice-console/internal/resources/support"
)

// PlanEditor edits one plan. The plan list is only refreshed through cache
// invalidation after the backend confirmed the save.
type PlanEditor struct {
	ID          string
	Name        string
	Credit      int
	Price       float64
	Benefits    []string
	ActivityIDs []string

	api *plans.Client
}

func NewPlanEditor(rt *resource.Runtime) *PlanEditor {
	return &PlanEditor{api: plans.New(rt)}
}

func (e *PlanEditor) IsNew() bool {
	return e.ID == ""
}

// Load fills the editor from a plan; an empty id starts a new plan.
func (e *PlanEditor) Load(ctx context.Context, id string) error {
	if id == "" {
		e.fill(models.Plan{})
		return nil
	}
	p, err := e.api.Get(ctx, id)
	if err != nil {
		return err
	}
	e.fill(p)
	return nil
}

func (e *PlanEditor) fill(p models.Plan) {
	in := p.Input()
	e.ID = p.ID
	e.Name = in.Name
	e.Credit = in.Credit
	e.Price = in.Price
	e.Benefits = in.Benefits
	e.ActivityIDs = in.Activities
}

func (e *PlanEditor) Input() models.PlanInput {
	benefits := e.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	ids := e.ActivityIDs
	if ids == nil {
		ids = []string{}
	}
	return models.PlanInput{Name: e.Name, Credit: e.Credit, Price: e.Price, Benefits: benefits, Activities: ids}
}

func (e *PlanEditor) Submit(ctx context.Context) (models.Plan, error) {
	var (
		saved models.Plan
		err   error
	)
	if e.IsNew() {
		saved, err = e.api.Create(ctx, e.Input())
	} else {
		saved, err = e.api.Update(ctx, e.ID, e.Input())
	}
	if err != nil {
		return models.Plan{}, err
	}
	if saved.ID != "" {
		e.ID = saved.ID
	}
	return saved, nil
}

func (e *PlanEditor) Delete(ctx context.Context) error {
	if e.IsNew() {
		return nil
	}
	return e.api.Delete(ctx, e.ID)
}

// SupportAnswer is the answer form of a support ticket.
type SupportAnswer struct {
	TicketID    string
	Answer      string
	Attachments []forms.File

	api *support.Client
}

func NewSupportAnswer(rt *resource.Runtime, ticketID string) *SupportAnswer {
	return &SupportAnswer{TicketID: ticketID, api: support.New(rt)}
}

func (s *SupportAnswer) Attach(f forms.File) {
	s.Attachments = append(s.Attachments, f)
}

// Submit sends the answer and clears the draft once it is accepted.
func (s *SupportAnswer) Submit(ctx context.Context) (models.SupportTicket, error) {
	ticket, err := s.api.Answer(ctx, s.TicketID, s.Answer, s.Attachments)
	if err != nil {
		return models.SupportTicket{}, err
	}
	s.Answer = ""
	s.Attachments = nil
	return ticket, nil
}

func (s *SupportAnswer) Download(ctx context.Context, set models.AttachmentSet) (*apiclient.Blob, error) {
	return s.api.DownloadAttachments(ctx, s.TicketID, set)
}

// CompanyEditor edits a company and sends only the changed fields.
type CompanyEditor struct {
	Draft models.Company

	api      *companies.Client
	original models.Company
}

func NewCompanyEditor(rt *resource.Runtime) *CompanyEditor {
	return &CompanyEditor{api: companies.New(rt)}
}

func (e *CompanyEditor) Load(ctx context.Context, id string) error {
	c, err := e.api.Get(ctx, id)
	if err != nil {
		return err
	}
	e.original = c
	e.Draft = c
	return nil
}

// Diff returns the fields of Draft that differ from the loaded company.
func (e *CompanyEditor) Diff() (models.CompanyUpdate, bool) {
	var u models.CompanyUpdate
	changed := false
	str := func(dst *string, draft, orig string) {
		if draft != orig {
			*dst = draft
			changed = true
		}
	}
	str(&u.Name, e.Draft.Name, e.original.Name)
	str(&u.Address, e.Draft.Address, e.original.Address)
	str(&u.City, e.Draft.City, e.original.City)
	str(&u.PostalCode, e.Draft.PostalCode, e.original.PostalCode)
	str(&u.Phone, e.Draft.Phone, e.original.Phone)
	if e.Draft.EmployeesNumber != e.original.EmployeesNumber {
		n := e.Draft.EmployeesNumber
		u.EmployeesNumber = &n
		changed = true
	}
	if e.Draft.Credit != e.original.Credit {
		n := e.Draft.Credit
		u.Credit = &n
		changed = true
	}
	if e.Draft.IsVerified != e.original.IsVerified {
		v := e.Draft.IsVerified
		u.IsVerified = &v
		changed = true
	}
	return u, changed
}

// Save sends the diff. Nothing is sent when nothing changed.
func (e *CompanyEditor) Save(ctx context.Context) (models.Company, error) {
	diff, changed := e.Diff()
	if !changed {
		return e.original, nil
	}
	saved, err := e.api.Update(ctx, e.original.ID, diff)
	if err != nil {
		return models.Company{}, err
	}
	e.original = e.Draft
	return saved, nil
}

// Verify marks the company verified.
func (e *CompanyEditor) Verify(ctx context.Context) error {
	if err := e.api.Verify(ctx, e.original.ID); err != nil {
		return err
	}
	e.original.IsVerified = true
	e.Draft.IsVerified = true
	return nil
}
